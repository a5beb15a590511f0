package spec

// ValidatorSetSummary folds the staking module's validator set into the
// per-status token totals of the report. Token amounts are in loya.
type ValidatorSetSummary struct {
	TotalActiveTokens    float64
	TotalJailedTokens    float64
	TotalUnbondingTokens float64
	TotalUnbondedTokens  float64

	ActiveCount    int
	JailedCount    int
	UnbondingCount int
	UnbondedCount  int

	ActiveStakes []float64
}

func (v ValidatorSetSummary) MedianActiveStake() float64 {
	return Median(v.ActiveStakes)
}

func (v ValidatorSetSummary) AvgActiveStake() float64 {
	if len(v.ActiveStakes) == 0 {
		return 0
	}
	var total float64
	for _, stake := range v.ActiveStakes {
		total += stake
	}
	return total / float64(len(v.ActiveStakes))
}
