// Package apr implements the profitability model of the reporter: the
// per-stake APR formula, break-even solvers, population aggregation and
// total-stake scenario projections. Everything here is pure arithmetic over
// the NetworkState snapshot and is safe for concurrent use.
package apr

import (
	"github.com/pkg/errors"

	"github.com/tellor-io/layerprof/pkg/spec"
)

// ErrInvalidInput marks zero or negative inputs that would make the formula
// divide by zero. Callers get it wrapped with the offending value.
var ErrInvalidInput = errors.New("invalid input")

// ByStake returns the projected APR (in percent) a reporter holding `stake`
// would earn against the given network snapshot.
//
// The model is the individual-share one: the reporter receives the minted
// reward proportionally to its share of the total bonded stake and pays the
// report fee every other block. A negative result is valid output, it means
// the fee cost exceeds the proportional reward at that stake level.
func ByStake(stake float64, state spec.NetworkState) (float64, error) {
	if stake <= 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "stake %f must be positive", stake)
	}
	if state.TotalActiveStake <= 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "total active stake %f must be positive", state.TotalActiveStake)
	}
	if state.AvgBlockTime <= 0 {
		return 0, errors.Wrapf(ErrInvalidInput, "average block time %f must be positive", state.AvgBlockTime)
	}

	proportion := stake / state.TotalActiveStake
	profitPerBlock := proportion*state.AvgMintPerBlock - state.AvgFeePerBlock/2

	annualProfit := profitPerBlock * state.BlocksPerYear()
	return annualProfit / stake * 100, nil
}

// ProfitPerBlock returns the expected net reward per block for a reporter
// holding `stake`, in the same unit as the state amounts. Used by the
// time-horizon profit projections of the report.
func ProfitPerBlock(stake float64, state spec.NetworkState) float64 {
	if state.TotalActiveStake <= 0 {
		return 0
	}
	proportion := stake / state.TotalActiveStake
	return proportion*state.AvgMintPerBlock - state.AvgFeePerBlock/2
}
