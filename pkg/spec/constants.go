package spec

const (
	// LoyaPerTRB is the scale between the chain base denom (loya) and TRB.
	LoyaPerTRB = 1_000_000

	// DailyMintRate is the fixed time-based-rewards issuance of the mint
	// module, in loya per day.
	DailyMintRate = 146_940_000

	MillisPerDay   = 24 * 60 * 60 * 1000
	SecondsPerYear = 365 * 24 * 3600

	// ReportsPerBlock reflects that reporters submit a value roughly every
	// other block, so the fee term is paid at half the block rate.
	ReportsPerBlock = 0.5

	BondDenom = "loya"
)

// Cosmos SDK bond status strings as returned by the staking REST endpoint.
const (
	BondStatusBonded    = "BOND_STATUS_BONDED"
	BondStatusUnbonding = "BOND_STATUS_UNBONDING"
	BondStatusUnbonded  = "BOND_STATUS_UNBONDED"
)
