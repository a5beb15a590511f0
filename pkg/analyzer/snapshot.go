package analyzer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/clientapi"
	"github.com/tellor-io/layerprof/pkg/spec"
)

// NetworkSnapshot bundles everything a single analysis run observed about
// the chain, plus the NetworkState derived from it.
type NetworkSnapshot struct {
	ChainID     string
	BlockHeight int64
	Taken       time.Time

	BlockTime  clientapi.BlockTimeSample
	Validators spec.ValidatorSetSummary
	Reporters  spec.ReporterSet

	MinGasPrice float64
	Fees        clientapi.FeeSample
	Mint        clientapi.MintSample

	// MintPerBlock is the minter's deterministic provision for the observed
	// block time, in loya. Mint holds the event-observed counterpart.
	MintPerBlock int64

	State spec.NetworkState
}

// buildSnapshot queries the node for everything the profitability model
// needs. Any failing query aborts the run; a partial snapshot would produce
// numbers that look right and are not.
func (a *ProfitabilityAnalyzer) buildSnapshot() (*NetworkSnapshot, error) {
	snap := &NetworkSnapshot{Taken: time.Now()}

	chainID, err := a.cli.ChainID()
	if err != nil {
		return nil, errors.Wrap(err, "unable to query chain id")
	}
	snap.ChainID = chainID
	log.Infof("connected to %s, sampling block time over %ds", chainID, a.cfg.BlockSampleSeconds)

	snap.BlockTime, err = a.cli.SampleBlockTime(time.Duration(a.cfg.BlockSampleSeconds) * time.Second)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sample block time")
	}

	snap.BlockHeight, _, err = a.cli.BlockHeightAndTime()
	if err != nil {
		return nil, errors.Wrap(err, "unable to query chain head")
	}

	snap.Validators, err = a.cli.Validators()
	if err != nil {
		return nil, errors.Wrap(err, "unable to query validator set")
	}

	snap.Reporters, err = a.cli.Reporters()
	if err != nil {
		return nil, errors.Wrap(err, "unable to query reporter registry")
	}

	snap.MinGasPrice = a.cfg.MinGasPrice
	if snap.MinGasPrice <= 0 {
		snap.MinGasPrice, err = a.cli.MinimumGasPrice()
		if err != nil {
			log.Warnf("unable to query minimum gas price, fee floor unavailable: %s", err.Error())
			snap.MinGasPrice = 0
		}
	}

	snap.Fees, err = a.cli.SampleRecentFees(snap.BlockHeight, a.cfg.FeeSampleBlocks, snap.MinGasPrice)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sample transaction fees")
	}

	snap.Mint, err = a.cli.SampleMintedRewards(snap.BlockHeight, a.cfg.MintSampleBlocks)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sample mint events")
	}

	snap.MintPerBlock, err = spec.NewMinter().BlockProvision(snap.BlockTime.AvgBlockTime)
	if err != nil {
		return nil, errors.Wrap(err, "unable to derive block provision")
	}
	if observed := snap.Mint.AvgPerBlock(); observed > 0 {
		log.Infof("mint provision %d loya/block, observed %0.f loya/block over %d blocks",
			snap.MintPerBlock, observed, snap.Mint.BlocksSampled)
	}

	snap.State = spec.NetworkState{
		TotalActiveStake: snap.Validators.TotalActiveTokens,
		AvgMintPerBlock:  float64(snap.MintPerBlock),
		AvgFeePerBlock:   snap.feePerReport(),
		AvgBlockTime:     snap.BlockTime.AvgBlockTime,
	}
	if err := snap.State.Validate(); err != nil {
		return nil, errors.Wrap(err, "snapshot produced an unusable network state")
	}
	return snap, nil
}

// feePerReport picks the best available estimate for the cost of a single
// report: observed fees first, then the gas floor.
func (s *NetworkSnapshot) feePerReport() float64 {
	if s.Fees.AvgFeeLoya > 0 {
		return s.Fees.AvgFeeLoya
	}
	return s.Fees.AvgMinCost
}
