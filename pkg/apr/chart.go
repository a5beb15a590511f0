package apr

import "github.com/tellor-io/layerprof/pkg/spec"

// Number of samples of the individual-share curve. The chart is terminal
// bound, a denser grid buys nothing.
const individualCurveSamples = 100

// Marker is a labelled point highlighted on a chart.
type Marker struct {
	Label    string
	StakeTRB float64
	APR      float64
}

// ChartSeries carries everything the rendering layer needs for one chart:
// the sampled curve and the points worth calling out on it.
type ChartSeries struct {
	Curve   Curve
	Markers []Marker
}

// IndividualChart samples the individual-share APR over the range of actual
// validator stakes (up to 10% above the largest) and attaches the median and
// break-even markers. This is the per-holder view; TotalStakeChart below is
// the network-level one.
func IndividualChart(state spec.NetworkState, activeStakes []float64, medianStake float64) ChartSeries {
	maxStake := medianStake * 2
	for _, s := range activeStakes {
		if s > maxStake {
			maxStake = s
		}
	}
	maxStake *= 1.1
	minStake := maxStake * 0.001 // keep away from the division by zero at 0

	stakes := make([]float64, individualCurveSamples)
	aprs := make([]float64, individualCurveSamples)
	step := (maxStake - minStake) / float64(individualCurveSamples-1)
	for i := 0; i < individualCurveSamples; i++ {
		stake := minStake + float64(i)*step
		stakes[i] = stake / spec.LoyaPerTRB
		if apr, err := ByStake(stake, state); err == nil {
			aprs[i] = apr
		}
	}

	series := ChartSeries{Curve: Curve{StakesTRB: stakes, APRs: aprs}}

	if medianStake > 0 {
		if apr, err := ByStake(medianStake, state); err == nil {
			series.Markers = append(series.Markers, Marker{
				Label:    "Median Stake",
				StakeTRB: medianStake / spec.LoyaPerTRB,
				APR:      apr,
			})
		}
	}
	if be, ok := BreakEvenStake(state, medianStake); ok && be.Stake <= maxStake {
		if apr, err := ByStake(be.Stake, state); err == nil {
			series.Markers = append(series.Markers, Marker{
				Label:    "Break-even",
				StakeTRB: be.Stake / spec.LoyaPerTRB,
				APR:      apr,
			})
		}
	}
	return series
}

// TotalStakeChart projects the full-network curve and marks the current
// total stake on it.
func TotalStakeChart(state spec.NetworkState) ChartSeries {
	curve := ProjectCurve(state)
	currentTRB := state.TotalActiveStake / spec.LoyaPerTRB

	series := ChartSeries{Curve: curve}
	if currentTRB >= CurveMinStakeTRB && currentTRB <= CurveMaxStakeTRB {
		series.Markers = append(series.Markers, Marker{
			Label:    "Current Stake",
			StakeTRB: currentTRB,
			APR:      curve.At(currentTRB),
		})
	}
	return series
}
