package spec

import (
	"github.com/pkg/errors"
)

// Minter mirrors the chain's mint module: a fixed daily issuance paid out
// per block in proportion to the elapsed time.
type Minter struct {
	BondDenom string
}

func NewMinter() Minter {
	return Minter{BondDenom: BondDenom}
}

// BlockProvision returns the loya minted for a block after elapsedSeconds.
// The chain computes this in integer milliseconds, so the result truncates
// the same way the module does.
func (m Minter) BlockProvision(elapsedSeconds float64) (int64, error) {
	if elapsedSeconds <= 0 {
		return 0, errors.Errorf("elapsed time %f must be positive", elapsedSeconds)
	}
	elapsedMillis := int64(elapsedSeconds * 1000)
	return DailyMintRate * elapsedMillis / MillisPerDay, nil
}
