package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boxLines asserts that every bordered line of a box spans exactly 80 runes.
func assertAligned(t *testing.T, box string) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimRight(box, "\n"), "\n") {
		assert.Equal(t, 80, len([]rune(line)), "misaligned line: %q", line)
	}
}

func TestSectionHeader(t *testing.T) {
	header := SectionHeader("NETWORK OVERVIEW")
	assert.Contains(t, header, strings.Repeat("═", 80))
	assert.Contains(t, header, "  NETWORK OVERVIEW")
}

func TestInfoBox(t *testing.T) {
	box := InfoBox([]KV{
		{Key: "Chain ID", Value: "layertest-4"},
		{Key: "Block Height", Value: "1,234,567"},
		{Key: "Average Block Time", Value: "1.98s"},
	}, 2)

	assertAligned(t, box)
	assert.Contains(t, box, "Chain ID")
	assert.Contains(t, box, "layertest-4")
	assert.Equal(t, 1, strings.Count(box, "├"), "one separator after line 2")

	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[5], "└"))
}

func TestInfoBoxEmpty(t *testing.T) {
	assert.Empty(t, InfoBox(nil))
}

func TestTable(t *testing.T) {
	table := Table(
		[]string{"Moniker", "Power", "APR"},
		[][]string{
			{"alpha", "150.0 TRB", "12.5%"},
			{"a-reporter-with-a-long-moniker", "3.0 TRB", "-1.2%"},
		},
	)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	require.Len(t, lines, 5)
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)), "ragged line: %q", line)
	}
	assert.Contains(t, table, "Moniker")
	assert.Contains(t, table, "a-reporter-with-a-long-moniker")
	assert.Contains(t, lines[2], "┼")
}

func TestTableShortRow(t *testing.T) {
	table := Table([]string{"A", "B"}, [][]string{{"only"}})
	assert.Contains(t, table, "only")
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	width := len([]rune(lines[0]))
	for _, line := range lines {
		assert.Equal(t, width, len([]rune(line)))
	}
}

func TestBoxPlot(t *testing.T) {
	stakes := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	box := BoxPlot(stakes)

	assertAligned(t, box)
	assert.Contains(t, box, "Min:")
	assert.Contains(t, box, "10.0 TRB")
	assert.Contains(t, box, "Median:")
	assert.Contains(t, box, "100.0 TRB")
	assert.Contains(t, box, "├")
	assert.Contains(t, box, "┤")
	assert.Contains(t, box, "█")
}

func TestBoxPlotSingleStake(t *testing.T) {
	box := BoxPlot([]float64{42})
	assertAligned(t, box)
	assert.Contains(t, box, "42.0 TRB")
}

func TestBoxPlotEmpty(t *testing.T) {
	assert.Empty(t, BoxPlot(nil))
}

func TestStarHistogram(t *testing.T) {
	stakes := []float64{5, 12, 18, 25, 33, 47, 52, 68, 75, 91, 120, 250}
	hist := StarHistogram("REPORTER COUNTS BY POWER", stakes)

	assertAligned(t, hist)
	assert.Contains(t, hist, "REPORTER COUNTS BY POWER")
	assert.Equal(t, len(stakes), strings.Count(hist, "★"), "one star per entry")
}

func TestStarHistogramEmpty(t *testing.T) {
	assert.Empty(t, StarHistogram("EMPTY", nil))
}

func TestLineChart(t *testing.T) {
	xs := make([]float64, 50)
	ys := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i+1) * 1000
		ys[i] = 100 / float64(i+1)
	}
	chart := LineChart("APR BY TOTAL STAKE", xs, ys, []ChartPoint{
		{X: 25_000, Y: 4.0, Label: "Current Stake"},
	})

	assertAligned(t, chart)
	assert.Contains(t, chart, "APR BY TOTAL STAKE")
	assert.Contains(t, chart, "·")
	assert.Contains(t, chart, "◆ Current Stake (25000 TRB, 4.0% APR)")
	assert.Contains(t, chart, "100.0")
}

func TestLineChartEmpty(t *testing.T) {
	assert.Empty(t, LineChart("EMPTY", nil, nil, nil))
	assert.Empty(t, LineChart("MISMATCH", []float64{1}, []float64{1, 2}, nil))
}

func TestNiceBins(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
	}{
		{name: "small range", min: 1, max: 8},
		{name: "medium range", min: 10, max: 95},
		{name: "wide range", min: 5, max: 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bins := niceBins(tt.min, tt.max)
			require.GreaterOrEqual(t, len(bins), 2)
			for i := 1; i < len(bins); i++ {
				assert.Greater(t, bins[i], bins[i-1], "edges must be strictly increasing")
			}
			assert.Greater(t, bins[len(bins)-1], tt.max, "last edge captures the maximum")
		})
	}
}

func TestRoundToNice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 0.7, want: 1},
		{in: 13, want: 20},
		{in: 42, want: 50},
		{in: 77, want: 100},
		{in: 1500, want: 2000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundToNice(tt.in), "roundToNice(%v)", tt.in)
	}
}
