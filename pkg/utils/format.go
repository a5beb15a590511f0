package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/tellor-io/layerprof/pkg/spec"
)

// LoyaToTRB converts a base-denom amount to TRB.
func LoyaToTRB(loya float64) float64 {
	return loya / spec.LoyaPerTRB
}

// FormatTRB renders a TRB amount with thousand separators and one decimal.
func FormatTRB(trb float64) string {
	return humanize.CommafWithDigits(trb, 1) + " TRB"
}

// FormatStakeLevel renders a TRB stake level compactly: 17k TRB, 1.3M TRB.
func FormatStakeLevel(trb float64) string {
	switch {
	case trb >= 1_000_000:
		return fmt.Sprintf("%.1fM TRB", trb/1_000_000)
	case trb >= 1_000:
		return fmt.Sprintf("%.0fk TRB", trb/1_000)
	default:
		return humanize.CommafWithDigits(trb, 0) + " TRB"
	}
}

// FormatCount renders an integer with thousand separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
