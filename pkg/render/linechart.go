package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	chartRows     = 12
	chartCols     = 66
	chartAxisArea = 10 // y-axis label plus the axis rune
)

// ChartPoint is a highlighted coordinate with a legend label.
type ChartPoint struct {
	X     float64
	Y     float64
	Label string
}

// LineChart plots ys over xs as an ASCII chart with a y-axis, an x-axis
// scale row and a legend line per marker. Inputs must be equal length and
// ordered by x.
func LineChart(title string, xs, ys []float64, markers []ChartPoint) string {
	if len(xs) == 0 || len(xs) != len(ys) {
		return ""
	}

	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	for _, m := range markers {
		minY = math.Min(minY, m.Y)
		maxY = math.Max(maxY, m.Y)
	}
	if maxY == minY {
		maxY = minY + 1
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	if maxX == minX {
		maxX = minX + 1
	}

	grid := make([][]rune, chartRows)
	for r := range grid {
		grid[r] = make([]rune, chartCols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}

	col := func(x float64) int {
		c := int((x - minX) / (maxX - minX) * float64(chartCols-1))
		if c < 0 {
			c = 0
		}
		if c > chartCols-1 {
			c = chartCols - 1
		}
		return c
	}
	row := func(y float64) int {
		// row 0 is the top of the chart
		r := int((maxY - y) / (maxY - minY) * float64(chartRows-1))
		if r < 0 {
			r = 0
		}
		if r > chartRows-1 {
			r = chartRows - 1
		}
		return r
	}

	for i := range xs {
		grid[row(ys[i])][col(xs[i])] = '·'
	}
	for _, m := range markers {
		grid[row(m.Y)][col(m.X)] = '◆'
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", innerWidth) + "┐\n")
	pad := (innerWidth - len([]rune(title))) / 2
	b.WriteString(boxLine(strings.Repeat(" ", pad) + title))
	b.WriteString("├" + strings.Repeat("─", innerWidth) + "┤\n")

	for r := 0; r < chartRows; r++ {
		yValue := maxY - float64(r)/(chartRows-1)*(maxY-minY)
		b.WriteString(boxLine(fmt.Sprintf(" %7.1f │%s", yValue, string(grid[r]))))
	}
	b.WriteString(boxLine(" " + strings.Repeat(" ", chartAxisArea-2) + "└" + strings.Repeat("─", chartCols)))
	b.WriteString(boxLine(strings.Repeat(" ", chartAxisArea) + xScaleRow(minX, maxX)))

	if len(markers) > 0 {
		b.WriteString(boxLine(""))
		for _, m := range markers {
			b.WriteString(boxLine(fmt.Sprintf(" ◆ %s (%.0f TRB, %.1f%% APR)", m.Label, m.X, m.Y)))
		}
	}
	b.WriteString("└" + strings.Repeat("─", innerWidth) + "┘\n")
	return b.String()
}

// xScaleRow mirrors the box plot scale but over the chart column width.
func xScaleRow(min, max float64) string {
	const intervals = 5

	scale := make([]rune, chartCols)
	for i := range scale {
		scale[i] = ' '
	}

	for i := 0; i <= intervals; i++ {
		value := min + float64(i)/intervals*(max-min)
		str := compactNumber(value)

		var start int
		if i == intervals {
			start = chartCols - len(str)
		} else {
			start = i*(chartCols-1)/intervals - len(str)/2
			if start < 0 {
				start = 0
			}
			if start+len(str) > chartCols {
				start = chartCols - len(str)
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

func compactNumber(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 10_000:
		return fmt.Sprintf("%.0fk", v/1_000)
	case v >= 100:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
