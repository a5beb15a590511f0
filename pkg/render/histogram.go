package render

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// StarHistogram renders a one-star-per-entry histogram of stakes bucketed
// into rounded power ranges, in TRB.
func StarHistogram(title string, stakesTRB []float64) string {
	if len(stakesTRB) == 0 {
		return ""
	}

	sorted := make([]float64, len(stakesTRB))
	copy(sorted, stakesTRB)
	sort.Float64s(sorted)

	bins := niceBins(sorted[0], sorted[len(sorted)-1])

	counts := make([]int, len(bins)-1)
	labels := make([]string, len(bins)-1)
	maxLabel := 0
	for i := 0; i < len(bins)-1; i++ {
		for _, stake := range sorted {
			if stake >= bins[i] && stake < bins[i+1] {
				counts[i]++
			}
		}
		labels[i] = binLabel(bins[i], bins[i+1])
		if len(labels[i]) > maxLabel {
			maxLabel = len(labels[i])
		}
	}
	starWidth := innerWidth - maxLabel - 8

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", innerWidth) + "┐\n")
	pad := (innerWidth - len([]rune(title))) / 2
	b.WriteString(boxLine(strings.Repeat(" ", pad) + title))
	b.WriteString("├" + strings.Repeat("─", innerWidth) + "┤\n")

	for i, count := range counts {
		stars := count
		if stars > starWidth {
			stars = starWidth
		}
		fmt.Fprintf(&b, "│ %*s │%s%s│ %2d │\n",
			maxLabel, labels[i],
			strings.Repeat("★", stars),
			strings.Repeat(" ", starWidth-stars),
			count)
	}
	b.WriteString("└" + strings.Repeat("─", innerWidth) + "┘\n")
	return b.String()
}

// niceBins builds 4 to 6 strictly increasing bucket edges rounded to 1, 2
// or 5 times a power of ten. The last edge sits just above the maximum so
// the top entry always lands in a bucket.
func niceBins(min, max float64) []float64 {
	if min == max {
		return []float64{0, min * 0.5, min, min * 1.5, min * 2}
	}

	span := max - min
	numBins := 6
	switch {
	case span < 10:
		numBins = 4
	case span < 100:
		numBins = 5
	}

	var bins []float64
	for i := 0; i <= numBins; i++ {
		edge := roundToNice(min + float64(i)/float64(numBins)*span)
		if len(bins) == 0 || edge > bins[len(bins)-1] {
			bins = append(bins, edge)
		}
	}
	if len(bins) < 2 {
		return []float64{0, max + 1}
	}
	bins[len(bins)-1] = max + 0.1
	return bins
}

func roundToNice(x float64) float64 {
	if x <= 0 {
		return 0
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(x)))
	switch normalized := x / magnitude; {
	case normalized <= 1:
		return magnitude
	case normalized <= 2:
		return 2 * magnitude
	case normalized <= 5:
		return 5 * magnitude
	default:
		return 10 * magnitude
	}
}

func binLabel(start, end float64) string {
	switch {
	case end >= 1000 && start >= 1000:
		return fmt.Sprintf("%.0fk-%.0fk TRB", start/1000, end/1000)
	case end >= 1000:
		return fmt.Sprintf("%.0f-%.1fk TRB", start, end/1000)
	case end >= 10:
		return fmt.Sprintf("%.0f-%.0f TRB", start, end)
	default:
		return fmt.Sprintf("%.1f-%.1f TRB", start, end)
	}
}
