package analyzer

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/apr"
	"github.com/tellor-io/layerprof/pkg/db"
	"github.com/tellor-io/layerprof/pkg/export"
	"github.com/tellor-io/layerprof/pkg/render"
	"github.com/tellor-io/layerprof/pkg/spec"
	"github.com/tellor-io/layerprof/pkg/utils"
)

const maxReporterRows = 15

// runReport executes the full profitability report against the live chain.
func (a *ProfitabilityAnalyzer) runReport(w io.Writer) error {
	snap, err := a.buildSnapshot()
	if err != nil {
		return err
	}
	state := snap.State

	reporterAPRs, err := apr.ComputeReporterAPRs(snap.Reporters.Active, state)
	if err != nil {
		return errors.Wrap(err, "unable to compute reporter aprs")
	}
	weighted, median := apr.Aggregate(reporterAPRs)
	a.storeResults(weighted, median, len(reporterAPRs))

	curve := apr.ProjectCurve(state)
	targets := apr.FindTargetStakes(state)
	currentStakeTRB := utils.LoyaToTRB(state.TotalActiveStake)
	currentAPR := curve.At(currentStakeTRB)

	costs := buildCostSummary(snap)
	rewards := buildRewardSample(snap)

	a.printNetworkOverview(w, snap)
	a.printValidatorDistribution(w, snap)
	a.printReporterAPRs(w, reporterAPRs, weighted, median)
	a.printProfitProjections(w, snap)
	a.printBreakEven(w, snap)
	a.printRewardsAndCosts(w, rewards, costs)
	a.printTotalStakeProjection(w, state, targets, currentAPR)

	if a.exporter != nil {
		if err := a.exportCSVs(reporterAPRs, weighted, median, curve, currentStakeTRB, currentAPR, rewards, costs); err != nil {
			return errors.Wrap(err, "unable to export csv data")
		}
		log.Infof("csv data exported to %s", a.cfg.CSVDir)
	}

	if a.dbClient != nil {
		if err := a.persistRun(snap, reporterAPRs, weighted, median, targets); err != nil {
			return errors.Wrap(err, "unable to persist report run")
		}
		log.Infof("report run %s persisted", a.runID)
	}
	return nil
}

func buildCostSummary(snap *NetworkSnapshot) export.CostSummary {
	blocksPerDay := float64(spec.MillisPerDay) / 1000 / snap.State.AvgBlockTime
	reportsPerDay := blocksPerDay * spec.ReportsPerBlock
	feePerReport := snap.feePerReport()
	dailyFeeTRB := utils.LoyaToTRB(reportsPerDay * feePerReport)

	return export.CostSummary{
		AvgGasWanted:  snap.Fees.AvgGasWanted,
		AvgGasUsed:    snap.Fees.AvgGasUsed,
		MinGasPrice:   snap.MinGasPrice,
		AvgGasCost:    snap.Fees.AvgMinCost,
		AvgFeePaid:    snap.Fees.AvgFeeLoya,
		BlocksPerDay:  blocksPerDay,
		ReportsPerDay: reportsPerDay,
		DailyFeeTRB:   dailyFeeTRB,
		MonthlyFeeTRB: dailyFeeTRB * 30,
		YearlyFeeTRB:  dailyFeeTRB * 365,
	}
}

func buildRewardSample(snap *NetworkSnapshot) export.RewardSample {
	blocksPerDay := float64(spec.MillisPerDay) / 1000 / snap.State.AvgBlockTime
	dailyTRB := utils.LoyaToTRB(float64(snap.MintPerBlock) * blocksPerDay)

	return export.RewardSample{
		Source:              "event-based",
		TotalSampleTRB:      utils.LoyaToTRB(snap.Mint.TotalLoya),
		BlocksSampled:       snap.Mint.BlocksSampled,
		AvgInflationaryLoya: safeDiv(snap.Mint.InflationaryLoya, float64(snap.Mint.BlocksSampled)),
		AvgExtraLoya:        safeDiv(snap.Mint.ExtraLoya, float64(snap.Mint.BlocksSampled)),
		ProjectedDailyTRB:   dailyTRB,
		ProjectedAnnualTRB:  dailyTRB * 365,
	}
}

func (a *ProfitabilityAnalyzer) printNetworkOverview(w io.Writer, snap *NetworkSnapshot) {
	fmt.Fprint(w, render.SectionHeader("NETWORK OVERVIEW"))
	fmt.Fprint(w, render.InfoBox([]render.KV{
		{Key: "Chain ID", Value: snap.ChainID},
		{Key: "Block Height", Value: utils.FormatCount(int(snap.BlockHeight))},
		{Key: "Average Block Time", Value: fmt.Sprintf("%.2fs (%d blocks over %.0fs)", snap.State.AvgBlockTime, snap.BlockTime.BlockDiff, snap.BlockTime.ElapsedSeconds)},
		{Key: "Total Active Stake", Value: utils.FormatTRB(utils.LoyaToTRB(snap.State.TotalActiveStake))},
		{Key: "Active Validators", Value: utils.FormatCount(snap.Validators.ActiveCount)},
		{Key: "Jailed Validators", Value: utils.FormatCount(snap.Validators.JailedCount)},
		{Key: "Active Reporters", Value: utils.FormatCount(len(snap.Reporters.Active))},
		{Key: "Inactive Reporters", Value: utils.FormatCount(len(snap.Reporters.Inactive))},
		{Key: "Jailed Reporters", Value: utils.FormatCount(len(snap.Reporters.Jailed))},
	}, 3))
}

func (a *ProfitabilityAnalyzer) printValidatorDistribution(w io.Writer, snap *NetworkSnapshot) {
	if len(snap.Validators.ActiveStakes) == 0 {
		return
	}
	stakesTRB := make([]float64, len(snap.Validators.ActiveStakes))
	for i, s := range snap.Validators.ActiveStakes {
		stakesTRB[i] = utils.LoyaToTRB(s)
	}

	fmt.Fprint(w, render.SectionHeader("VALIDATOR DISTRIBUTION"))
	fmt.Fprint(w, render.BoxPlot(stakesTRB))
	fmt.Fprint(w, render.StarHistogram("VALIDATOR COUNTS BY POWER", stakesTRB))
}

func (a *ProfitabilityAnalyzer) printReporterAPRs(w io.Writer, reporterAPRs []spec.ReporterAPR, weighted, median float64) {
	fmt.Fprint(w, render.SectionHeader("REPORTER PROFITABILITY"))

	rows := make([][]string, 0, maxReporterRows)
	for i, r := range reporterAPRs {
		if i >= maxReporterRows {
			break
		}
		rows = append(rows, []string{
			r.Moniker,
			utils.FormatTRB(utils.LoyaToTRB(float64(r.Power))),
			fmt.Sprintf("%.1f%%", r.CommissionRatePercent),
			fmt.Sprintf("%.2f%%", r.APRPercent),
		})
	}
	fmt.Fprint(w, render.Table([]string{"Reporter", "Power", "Commission", "APR"}, rows))

	fmt.Fprint(w, render.InfoBox([]render.KV{
		{Key: "Reporters Ranked", Value: utils.FormatCount(len(reporterAPRs))},
		{Key: "Weighted Average APR", Value: fmt.Sprintf("%.2f%%", weighted)},
		{Key: "Median APR", Value: fmt.Sprintf("%.2f%%", median)},
	}))
}

func (a *ProfitabilityAnalyzer) printProfitProjections(w io.Writer, snap *NetworkSnapshot) {
	avgStake := snap.Validators.AvgActiveStake()
	medianStake := snap.Validators.MedianActiveStake()
	if avgStake <= 0 || medianStake <= 0 {
		return
	}
	blocksPerMonth := 30 * float64(spec.MillisPerDay) / 1000 / snap.State.AvgBlockTime

	projection := func(stake float64) string {
		perBlock := apr.ProfitPerBlock(stake, snap.State)
		return fmt.Sprintf("%s / month", utils.FormatTRB(utils.LoyaToTRB(perBlock*blocksPerMonth)))
	}

	fmt.Fprint(w, render.SectionHeader("PROFIT PROJECTIONS"))
	fmt.Fprint(w, render.InfoBox([]render.KV{
		{Key: "Average Stake", Value: fmt.Sprintf("%s earns %s", utils.FormatTRB(utils.LoyaToTRB(avgStake)), projection(avgStake))},
		{Key: "Median Stake", Value: fmt.Sprintf("%s earns %s", utils.FormatTRB(utils.LoyaToTRB(medianStake)), projection(medianStake))},
	}))

	chart := apr.IndividualChart(snap.State, snap.Validators.ActiveStakes, medianStake)
	markers := make([]render.ChartPoint, 0, len(chart.Markers))
	for _, m := range chart.Markers {
		markers = append(markers, render.ChartPoint{X: m.StakeTRB, Y: m.APR, Label: m.Label})
	}
	fmt.Fprint(w, render.LineChart("APR BY INDIVIDUAL STAKE", chart.Curve.StakesTRB, chart.Curve.APRs, markers))
}

func (a *ProfitabilityAnalyzer) printBreakEven(w io.Writer, snap *NetworkSnapshot) {
	medianStake := snap.Validators.MedianActiveStake()

	items := []render.KV{}
	if be, ok := apr.BreakEvenStake(snap.State, medianStake); ok {
		items = append(items, render.KV{
			Key:   "Break-even Stake",
			Value: fmt.Sprintf("%s (%.2fx the median stake)", utils.FormatTRB(utils.LoyaToTRB(be.Stake)), be.Multiplier),
		})
	} else {
		items = append(items, render.KV{Key: "Break-even Stake", Value: "undefined, no rewards are being minted"})
	}
	if be, ok := apr.SearchBreakEven(snap.State, medianStake); ok {
		items = append(items, render.KV{
			Key:   "Grid Search",
			Value: fmt.Sprintf("%s (%.2fx)", utils.FormatTRB(utils.LoyaToTRB(be.Stake)), be.Multiplier),
		})
	} else {
		items = append(items, render.KV{Key: "Grid Search", Value: "no break-even inside the searched range"})
	}

	fmt.Fprint(w, render.SectionHeader("BREAK-EVEN ANALYSIS"))
	fmt.Fprint(w, render.InfoBox(items))
}

func (a *ProfitabilityAnalyzer) printRewardsAndCosts(w io.Writer, rewards export.RewardSample, costs export.CostSummary) {
	fmt.Fprint(w, render.SectionHeader("REWARDS AND COSTS"))
	fmt.Fprint(w, render.InfoBox([]render.KV{
		{Key: "Mint Per Block", Value: fmt.Sprintf("%.1f loya", rewards.AvgInflationaryLoya+rewards.AvgExtraLoya)},
		{Key: "Projected Daily Rewards", Value: utils.FormatTRB(rewards.ProjectedDailyTRB)},
		{Key: "Projected Annual Rewards", Value: utils.FormatTRB(rewards.ProjectedAnnualTRB)},
		{Key: "Avg Gas Used", Value: fmt.Sprintf("%.0f", costs.AvgGasUsed)},
		{Key: "Avg Fee Paid", Value: fmt.Sprintf("%.1f loya", costs.AvgFeePaid)},
		{Key: "Reports Per Day", Value: fmt.Sprintf("%.0f", costs.ReportsPerDay)},
		{Key: "Daily Fee Cost", Value: utils.FormatTRB(costs.DailyFeeTRB)},
		{Key: "Yearly Fee Cost", Value: utils.FormatTRB(costs.YearlyFeeTRB)},
	}, 3))
}

func (a *ProfitabilityAnalyzer) printTotalStakeProjection(w io.Writer, state spec.NetworkState, targets map[string]apr.Target, currentAPR float64) {
	fmt.Fprint(w, render.SectionHeader("APR BY TOTAL NETWORK STAKE"))

	chart := apr.TotalStakeChart(state)
	markers := make([]render.ChartPoint, 0, len(chart.Markers))
	for _, m := range chart.Markers {
		markers = append(markers, render.ChartPoint{X: m.StakeTRB, Y: m.APR, Label: m.Label})
	}
	fmt.Fprint(w, render.LineChart("APR BY TOTAL STAKE", chart.Curve.StakesTRB, chart.Curve.APRs, markers))

	rows := make([][]string, 0, len(apr.TargetStakeLevelsTRB))
	for _, level := range apr.TargetStakeLevelsTRB {
		label := utils.FormatStakeLevel(level)
		value := "out of range"
		for name, target := range targets {
			if target.StakeTRB == level {
				value = name
				break
			}
		}
		rows = append(rows, []string{label, value})
	}
	fmt.Fprint(w, render.Table([]string{"Total Stake", "Realized APR"}, rows))
	fmt.Fprint(w, render.InfoBox([]render.KV{
		{Key: "Current Total Stake", Value: utils.FormatTRB(utils.LoyaToTRB(state.TotalActiveStake))},
		{Key: "Current APR", Value: fmt.Sprintf("%.2f%%", currentAPR)},
	}))
}

func (a *ProfitabilityAnalyzer) exportCSVs(
	reporterAPRs []spec.ReporterAPR,
	weighted, median float64,
	curve apr.Curve,
	currentStakeTRB, currentAPR float64,
	rewards export.RewardSample,
	costs export.CostSummary) error {

	if err := a.exporter.WriteRewardSample(rewards); err != nil {
		return err
	}
	if err := a.exporter.WriteReportingCosts(costs); err != nil {
		return err
	}
	if err := a.exporter.WriteReporterAPRs(a.runID, reporterAPRs); err != nil {
		return err
	}
	if err := a.exporter.WriteAPRAggregates(weighted, median); err != nil {
		return err
	}
	if err := a.exporter.WriteAPRByTotalStake(currentStakeTRB, currentAPR, curve); err != nil {
		return err
	}
	return a.exporter.WriteProfitabilitySummary(export.ProfitabilitySummary{
		NetworkStakeTRB:    currentStakeTRB,
		CurrentAPR:         currentAPR,
		WeightedAvgAPR:     weighted,
		MedianAPR:          median,
		ProjectedAnnualTRB: rewards.ProjectedAnnualTRB,
		YearlyFeeTRB:       costs.YearlyFeeTRB,
	})
}

func (a *ProfitabilityAnalyzer) persistRun(
	snap *NetworkSnapshot,
	reporterAPRs []spec.ReporterAPR,
	weighted, median float64,
	targets map[string]apr.Target) error {

	run := db.ReportRun{
		RunID:            a.runID,
		Timestamp:        snap.Taken,
		ChainID:          snap.ChainID,
		BlockHeight:      snap.BlockHeight,
		TotalStakeTRB:    utils.LoyaToTRB(snap.State.TotalActiveStake),
		AvgBlockTime:     snap.State.AvgBlockTime,
		MintPerBlockLoya: snap.State.AvgMintPerBlock,
		FeePerBlockLoya:  snap.State.AvgFeePerBlock,
		WeightedAvgAPR:   weighted,
		MedianAPR:        median,
		ActiveReporters:  uint64(len(reporterAPRs)),
	}
	if err := a.dbClient.PersistReportRuns([]db.ReportRun{run}); err != nil {
		return err
	}
	if err := a.dbClient.PersistReporterAPRs(a.runID, snap.Taken, reporterAPRs); err != nil {
		return err
	}
	if err := a.dbClient.PersistAPRTargets(a.runID, snap.Taken, targets); err != nil {
		return err
	}

	if a.cfg.DBRetentionDays > 0 {
		cutoff := snap.Taken.AddDate(0, 0, -a.cfg.DBRetentionDays)
		if err := a.dbClient.PruneBefore(cutoff); err != nil {
			return errors.Wrap(err, "unable to prune old detail rows")
		}
	}
	return nil
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
