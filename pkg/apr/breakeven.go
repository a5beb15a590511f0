package apr

import "github.com/tellor-io/layerprof/pkg/spec"

// Grid-search contract: the multiplier sweep and the acceptance tolerance
// are part of the reproducibility guarantees of the report.
const (
	SearchMinMultiplier = 0.05
	SearchMaxMultiplier = 0.25
	SearchGridPoints    = 2000
	SearchToleranceAPR  = 1.0 // percentage points around zero
)

// BreakEven is the stake level at which the APR crosses zero, plus its
// multiple of the reference stake the search was anchored on.
type BreakEven struct {
	Stake      float64
	Multiplier float64
}

// BreakEvenStake solves the break-even point in closed form. At break-even
// the proportional reward equals the fee cost:
//
//	(stake/total) * mint = fee/2  =>  stake = (fee/2) * total / mint
//
// Undefined (ok=false) when no reward is being minted. The multiplier is 0
// when no positive reference stake is supplied.
func BreakEvenStake(state spec.NetworkState, referenceStake float64) (BreakEven, bool) {
	if state.AvgMintPerBlock <= 0 {
		return BreakEven{}, false
	}
	stake := (state.AvgFeePerBlock / 2) * state.TotalActiveStake / state.AvgMintPerBlock
	mult := 0.0
	if referenceStake > 0 {
		mult = stake / referenceStake
	}
	return BreakEven{Stake: stake, Multiplier: mult}, true
}

// SearchBreakEven scans stake multiples of the reference stake over a dense
// grid and accepts the first one whose APR lands within the tolerance. It is
// a best-effort search, not a root finder: ok=false means no grid point
// qualified, never a sentinel value.
func SearchBreakEven(state spec.NetworkState, referenceStake float64) (BreakEven, bool) {
	if referenceStake <= 0 {
		return BreakEven{}, false
	}
	step := (SearchMaxMultiplier - SearchMinMultiplier) / float64(SearchGridPoints-1)
	for i := 0; i < SearchGridPoints; i++ {
		mult := SearchMinMultiplier + float64(i)*step
		stake := referenceStake * mult
		apr, err := ByStake(stake, state)
		if err != nil {
			return BreakEven{}, false
		}
		if apr < SearchToleranceAPR && apr > -SearchToleranceAPR {
			return BreakEven{Stake: stake, Multiplier: mult}, true
		}
	}
	return BreakEven{}, false
}
