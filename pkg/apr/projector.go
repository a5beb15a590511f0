package apr

import (
	"fmt"

	"github.com/tellor-io/layerprof/pkg/spec"
)

// Projection domain, in TRB. The lower bound stays away from zero because
// the APR diverges there.
const (
	CurveMinStakeTRB = 100
	CurveMaxStakeTRB = 2_000_000
	CurveSamples     = 1000
)

// TargetStakeLevelsTRB are the total-stake checkpoints the report maps to
// realized APRs.
var TargetStakeLevelsTRB = []float64{
	50_000,
	100_000,
	200_000,
	500_000,
	1_000_000,
	2_000_000,
	5_000_000,
	10_000_000,
}

// Curve is an APR-vs-total-network-stake projection: parallel sample arrays,
// stakes ascending, APRs therefore descending.
type Curve struct {
	StakesTRB []float64
	APRs      []float64
}

// netRewardsPerYear is the full-network accounting: everything minted in a
// year minus every report fee paid in a year, in the unit of the state
// amounts (loya).
func netRewardsPerYear(state spec.NetworkState) float64 {
	blocksPerYear := state.BlocksPerYear()
	reportsPerYear := blocksPerYear * spec.ReportsPerBlock
	return state.AvgMintPerBlock*blocksPerYear - state.AvgFeePerBlock*reportsPerYear
}

// ProjectCurve samples the APR any validator would earn if the network's
// total bonded stake were X, for X across the projection domain.
//
// This is the full-network model: the proportional term of ByStake is gone
// because the curve treats each X as the whole network's stake (the limit of
// the individual-share formula as the holder's share approaches the total).
// The two models answer different questions and are kept separate on purpose.
func ProjectCurve(state spec.NetworkState) Curve {
	net := netRewardsPerYear(state)

	stakes := make([]float64, CurveSamples)
	aprs := make([]float64, CurveSamples)
	span := float64(CurveMaxStakeTRB - CurveMinStakeTRB)
	for i := 0; i < CurveSamples; i++ {
		// fraction form keeps the first and last samples exactly on the
		// domain bounds
		stakeTRB := CurveMinStakeTRB + span*float64(i)/float64(CurveSamples-1)
		stakes[i] = stakeTRB
		aprs[i] = net / (stakeTRB * spec.LoyaPerTRB) * 100
	}
	return Curve{StakesTRB: stakes, APRs: aprs}
}

// At returns the APR at the given total stake via linear interpolation
// between the two bracketing samples. Queries outside the sampled domain
// clamp to the boundary values; queries exactly on a knot return the stored
// value with no interpolation error.
func (c Curve) At(stakeTRB float64) float64 {
	n := len(c.StakesTRB)
	if n == 0 {
		return 0
	}
	if stakeTRB <= c.StakesTRB[0] {
		return c.APRs[0]
	}
	if stakeTRB >= c.StakesTRB[n-1] {
		return c.APRs[n-1]
	}
	// binary search for the left bracket
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c.StakesTRB[mid] <= stakeTRB {
			lo = mid
		} else {
			hi = mid
		}
	}
	if c.StakesTRB[lo] == stakeTRB {
		return c.APRs[lo]
	}
	frac := (stakeTRB - c.StakesTRB[lo]) / (c.StakesTRB[hi] - c.StakesTRB[lo])
	return c.APRs[lo] + frac*(c.APRs[hi]-c.APRs[lo])
}

// Target is the realized APR at one of the fixed total-stake checkpoints.
type Target struct {
	StakeTRB  float64
	ActualAPR float64
}

// FindTargetStakes evaluates the full-network APR at each checkpoint stake
// level. Degenerate entries (apr <= 0 or apr >= 1000) are left out of the
// map rather than reported.
func FindTargetStakes(state spec.NetworkState) map[string]Target {
	net := netRewardsPerYear(state)

	targets := make(map[string]Target)
	for _, stakeTRB := range TargetStakeLevelsTRB {
		apr := net / (stakeTRB * spec.LoyaPerTRB) * 100
		if apr <= 0 || apr >= 1000 {
			continue
		}
		targets[fmt.Sprintf("%.1f%% APR", apr)] = Target{
			StakeTRB:  stakeTRB,
			ActualAPR: apr,
		}
	}
	return targets
}
