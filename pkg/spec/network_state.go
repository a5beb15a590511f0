package spec

import (
	"sort"

	"github.com/pkg/errors"
)

// NetworkState is the snapshot of observed chain conditions every APR
// computation runs against. All amounts are in loya.
type NetworkState struct {
	TotalActiveStake float64 // total bonded tokens of the active set
	AvgMintPerBlock  float64 // time based rewards minted per block
	AvgFeePerBlock   float64 // fee paid per report submission
	AvgBlockTime     float64 // seconds
}

// Validate rejects states no APR can be computed against. A zero mint is a
// valid observation, a zero stake or block time is not.
func (s NetworkState) Validate() error {
	if s.TotalActiveStake <= 0 {
		return errors.Errorf("total active stake %f must be positive", s.TotalActiveStake)
	}
	if s.AvgBlockTime <= 0 {
		return errors.Errorf("average block time %f must be positive", s.AvgBlockTime)
	}
	if s.AvgFeePerBlock < 0 {
		return errors.Errorf("average fee %f cannot be negative", s.AvgFeePerBlock)
	}
	return nil
}

func (s NetworkState) BlocksPerYear() float64 {
	return SecondsPerYear / s.AvgBlockTime
}

// Median returns the middle value of the input, or the mean of the two
// middle values for an even count. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
