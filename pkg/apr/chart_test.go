package apr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tellor-io/layerprof/pkg/spec"
)

func TestIndividualChart(t *testing.T) {
	state := spec.NetworkState{
		TotalActiveStake: 10_000_000_000,
		AvgMintPerBlock:  1_000_000,
		AvgFeePerBlock:   100_000,
		AvgBlockTime:     2.0,
	}
	activeStakes := []float64{500_000_000, 1_000_000_000, 2_000_000_000}

	series := IndividualChart(state, activeStakes, 1_000_000_000)
	require.Len(t, series.Curve.StakesTRB, individualCurveSamples)
	require.Len(t, series.Curve.APRs, individualCurveSamples)

	// curve covers up to 10% above the largest stake (in TRB)
	require.InDelta(t, 2_200.0, series.Curve.StakesTRB[individualCurveSamples-1], 1e-6)

	labels := make(map[string]bool)
	for _, m := range series.Markers {
		labels[m.Label] = true
	}
	require.True(t, labels["Median Stake"])
	require.True(t, labels["Break-even"])
}

func TestTotalStakeChartMarksCurrentStake(t *testing.T) {
	state := spec.NetworkState{
		TotalActiveStake: 20_000_000_000, // 20k TRB: inside the projection domain
		AvgMintPerBlock:  1_000,
		AvgFeePerBlock:   10,
		AvgBlockTime:     2.0,
	}

	series := TotalStakeChart(state)
	require.Len(t, series.Markers, 1)
	require.Equal(t, "Current Stake", series.Markers[0].Label)
	require.InDelta(t, 20_000.0, series.Markers[0].StakeTRB, 1e-9)
	require.InDelta(t, series.Curve.At(20_000), series.Markers[0].APR, 1e-9)
}
