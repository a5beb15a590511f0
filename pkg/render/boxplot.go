package render

import (
	"fmt"
	"sort"
	"strings"
)

const plotWidth = 70

// BoxPlot renders an ASCII box-and-whisker chart of the given stakes, in
// TRB. Quartiles are taken at the n/4, n/2 and 3n/4 ranks.
func BoxPlot(stakesTRB []float64) string {
	if len(stakesTRB) == 0 {
		return ""
	}

	sorted := make([]float64, len(stakesTRB))
	copy(sorted, stakesTRB)
	sort.Float64s(sorted)

	n := len(sorted)
	min := sorted[0]
	q1 := sorted[n/4]
	q2 := sorted[n/2]
	q3 := sorted[3*n/4]
	max := sorted[n-1]

	span := max - min
	if span == 0 {
		span = 1
	}
	pos := func(v float64) int {
		p := int((v - min) / span * plotWidth)
		if p < 0 {
			p = 0
		}
		if p > plotWidth-1 {
			p = plotWidth - 1
		}
		return p
	}

	visual := make([]rune, plotWidth)
	for i := range visual {
		visual[i] = ' '
	}
	for i := pos(min); i < pos(q1); i++ {
		visual[i] = '─'
	}
	for i := pos(q3) + 1; i <= pos(max) && i < plotWidth; i++ {
		visual[i] = '─'
	}
	for i := pos(q1); i <= pos(q3); i++ {
		visual[i] = '█'
	}
	visual[pos(q2)] = '│'
	visual[pos(min)] = '├'
	visual[pos(max)] = '┤'

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", innerWidth) + "┐\n")
	b.WriteString(boxLine(" " + string(visual)))
	b.WriteString(boxLine(""))
	b.WriteString(boxLine(" " + scaleRow(min, span)))
	b.WriteString(boxLine(""))

	stats := []struct {
		label string
		value float64
	}{
		{"Min:", min},
		{"Q1:", q1},
		{"Median:", q2},
		{"Q3:", q3},
		{"Max:", max},
	}
	for _, s := range stats {
		b.WriteString(boxLine(fmt.Sprintf(" %-16s%.1f TRB", s.label, s.value)))
	}
	b.WriteString("└" + strings.Repeat("─", innerWidth) + "┘\n")
	return b.String()
}

// scaleRow lays out evenly spaced axis values under the plot, skipping any
// number that would overlap an already placed one.
func scaleRow(min, span float64) string {
	const intervals = 7

	scale := make([]rune, plotWidth)
	for i := range scale {
		scale[i] = ' '
	}

	for i := 0; i <= intervals; i++ {
		value := min + float64(i)/intervals*span
		str := fmt.Sprintf("%.0f", value)
		if value < 10 {
			str = fmt.Sprintf("%.1f", value)
		}

		var start int
		if i == intervals {
			start = plotWidth - len(str)
		} else {
			start = i*(plotWidth-1)/intervals - len(str)/2
			if start < 0 {
				start = 0
			}
			if start+len(str) > plotWidth {
				start = plotWidth - len(str)
			}
		}

		overlap := false
		for j := start; j < start+len(str); j++ {
			if scale[j] != ' ' {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		for j, r := range str {
			scale[start+j] = r
		}
	}
	return string(scale)
}
