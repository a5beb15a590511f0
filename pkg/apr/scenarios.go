package apr

import (
	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/spec"
)

// MaxSimulatedValidators caps simulated sets at the chain's validator limit.
const MaxSimulatedValidators = 100

// SimulateValidatorSet splits totalStake across a hypothetical validator set
// with uniform stakes. The set size is capped at the chain limit.
func SimulateValidatorSet(totalStake float64, numValidators int) ([]float64, error) {
	if totalStake <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "total stake %f must be positive", totalStake)
	}
	if numValidators <= 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "validator count %d must be positive", numValidators)
	}
	if numValidators > MaxSimulatedValidators {
		numValidators = MaxSimulatedValidators
	}

	perValidator := totalStake / float64(numValidators)
	stakes := make([]float64, numValidators)
	for i := range stakes {
		stakes[i] = perValidator
	}
	return stakes, nil
}

// WeightedScenarioAPR computes the power-weighted average individual-share
// APR across a (usually simulated) validator set. Zero stakes are skipped;
// an all-zero set yields 0.
func WeightedScenarioAPR(stakes []float64, state spec.NetworkState) (float64, error) {
	var totalWeighted, totalPower float64
	for _, stake := range stakes {
		if stake <= 0 {
			continue
		}
		apr, err := ByStake(stake, state)
		if err != nil {
			return 0, err
		}
		totalWeighted += apr * stake
		totalPower += stake
	}
	if totalPower == 0 {
		return 0, nil
	}
	return totalWeighted / totalPower, nil
}
