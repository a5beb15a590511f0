package apr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tellor-io/layerprof/pkg/spec"
)

func TestSimulateValidatorSetUniform(t *testing.T) {
	stakes, err := SimulateValidatorSet(10_000_000_000, 10)
	require.NoError(t, err)
	require.Len(t, stakes, 10)

	var sum float64
	for _, s := range stakes {
		require.Equal(t, 1_000_000_000.0, s)
		sum += s
	}
	require.Equal(t, 10_000_000_000.0, sum)
}

func TestSimulateValidatorSetCapped(t *testing.T) {
	stakes, err := SimulateValidatorSet(10_000_000_000, 150)
	require.NoError(t, err)
	require.Len(t, stakes, MaxSimulatedValidators)
}

func TestSimulateValidatorSetInvalid(t *testing.T) {
	_, err := SimulateValidatorSet(0, 10)
	require.Error(t, err)

	_, err = SimulateValidatorSet(10_000_000_000, 0)
	require.Error(t, err)
}

func TestWeightedScenarioAPR(t *testing.T) {
	state := spec.NetworkState{
		TotalActiveStake: 10_000_000_000,
		AvgMintPerBlock:  1_000_000,
		AvgFeePerBlock:   5,
		AvgBlockTime:     6.0,
	}

	stakes, err := SimulateValidatorSet(state.TotalActiveStake, 100)
	require.NoError(t, err)

	weighted, err := WeightedScenarioAPR(stakes, state)
	require.NoError(t, err)

	// uniform stakes: the weighted average equals any individual APR
	individual, err := ByStake(stakes[0], state)
	require.NoError(t, err)
	require.InDelta(t, individual, weighted, 1e-9)
}

func TestWeightedScenarioAPRSkipsZeroStakes(t *testing.T) {
	state := spec.NetworkState{
		TotalActiveStake: 10_000_000_000,
		AvgMintPerBlock:  1_000_000,
		AvgFeePerBlock:   5,
		AvgBlockTime:     6.0,
	}

	weighted, err := WeightedScenarioAPR([]float64{0, 0}, state)
	require.NoError(t, err)
	require.Equal(t, 0.0, weighted)
}
