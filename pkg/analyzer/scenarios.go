package analyzer

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/apr"
	"github.com/tellor-io/layerprof/pkg/render"
	"github.com/tellor-io/layerprof/pkg/spec"
	"github.com/tellor-io/layerprof/pkg/utils"
)

// offlineScenarioValidators sizes the simulated sets when the run never
// touched the chain and has no real validator count to mirror.
const offlineScenarioValidators = 100

// runScenarios answers "what if the network grew to stake X" for the fixed
// checkpoint levels. The baseline observables come from a live snapshot, or
// from the config overrides when all of them are supplied.
func (a *ProfitabilityAnalyzer) runScenarios(w io.Writer) error {
	var (
		state         spec.NetworkState
		numValidators int
		overview      []render.KV
	)

	if stakeTRB, mint, fee, blockTime, ok := a.cfg.ScenarioState(); ok {
		state = spec.NetworkState{
			TotalActiveStake: stakeTRB * spec.LoyaPerTRB,
			AvgMintPerBlock:  mint,
			AvgFeePerBlock:   fee,
			AvgBlockTime:     blockTime,
		}
		if err := state.Validate(); err != nil {
			return errors.Wrap(err, "supplied scenario observables are unusable")
		}
		numValidators = offlineScenarioValidators
		overview = []render.KV{
			{Key: "Baseline", Value: "manual observables, node not queried"},
			{Key: "Total Stake", Value: utils.FormatTRB(stakeTRB)},
			{Key: "Mint Per Block", Value: fmt.Sprintf("%.0f loya", mint)},
			{Key: "Fee Per Report", Value: fmt.Sprintf("%.1f loya", fee)},
			{Key: "Block Time", Value: fmt.Sprintf("%.2fs", blockTime)},
		}
		log.Info("running scenarios against manually supplied observables")
	} else {
		snap, err := a.buildSnapshot()
		if err != nil {
			return err
		}
		state = snap.State
		numValidators = snap.Validators.ActiveCount
		if numValidators <= 0 {
			numValidators = 1
		}
		overview = []render.KV{
			{Key: "Chain ID", Value: snap.ChainID},
			{Key: "Current Total Stake", Value: utils.FormatTRB(utils.LoyaToTRB(state.TotalActiveStake))},
			{Key: "Active Validators", Value: utils.FormatCount(snap.Validators.ActiveCount)},
			{Key: "Mint Per Block", Value: fmt.Sprintf("%d loya", snap.MintPerBlock)},
			{Key: "Fee Per Report", Value: fmt.Sprintf("%.1f loya", snap.feePerReport())},
		}
	}

	fmt.Fprint(w, render.SectionHeader("STAKE GROWTH SCENARIOS"))
	fmt.Fprint(w, render.InfoBox(overview))

	rows := make([][]string, 0, len(apr.TargetStakeLevelsTRB))
	for _, levelTRB := range apr.TargetStakeLevelsTRB {
		scaled := state
		scaled.TotalActiveStake = levelTRB * spec.LoyaPerTRB

		stakes, err := apr.SimulateValidatorSet(scaled.TotalActiveStake, numValidators)
		if err != nil {
			return errors.Wrapf(err, "unable to simulate validator set at %s", utils.FormatStakeLevel(levelTRB))
		}
		weighted, err := apr.WeightedScenarioAPR(stakes, scaled)
		if err != nil {
			return errors.Wrapf(err, "unable to compute scenario apr at %s", utils.FormatStakeLevel(levelTRB))
		}

		rows = append(rows, []string{
			utils.FormatStakeLevel(levelTRB),
			utils.FormatCount(len(stakes)),
			utils.FormatTRB(levelTRB / float64(len(stakes))),
			fmt.Sprintf("%.2f%%", weighted),
		})
	}
	fmt.Fprint(w, render.Table([]string{"Total Stake", "Validators", "Stake Each", "Weighted APR"}, rows))

	chart := apr.TotalStakeChart(state)
	markers := make([]render.ChartPoint, 0, len(chart.Markers))
	for _, m := range chart.Markers {
		markers = append(markers, render.ChartPoint{X: m.StakeTRB, Y: m.APR, Label: m.Label})
	}
	fmt.Fprint(w, render.LineChart("APR BY TOTAL STAKE", chart.Curve.StakesTRB, chart.Curve.APRs, markers))

	targets := apr.FindTargetStakes(state)
	if len(targets) > 0 {
		targetRows := make([][]string, 0, len(targets))
		for _, levelTRB := range apr.TargetStakeLevelsTRB {
			for label, target := range targets {
				if target.StakeTRB == levelTRB {
					targetRows = append(targetRows, []string{utils.FormatStakeLevel(levelTRB), label})
					break
				}
			}
		}
		fmt.Fprint(w, render.Table([]string{"Total Stake", "Realized APR"}, targetRows))
	}
	return nil
}
