package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellor-io/layerprof/pkg/apr"
	"github.com/tellor-io/layerprof/pkg/spec"
)

func newTestExporter(t *testing.T) *CSVExporter {
	t.Helper()
	exporter, err := NewCSVExporter(t.TempDir())
	require.NoError(t, err)
	exporter.now = func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	}
	return exporter
}

func readCSV(t *testing.T, dir, name string) [][]string {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestNewCSVExporter(t *testing.T) {
	_, err := NewCSVExporter("")
	assert.Error(t, err)

	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err = NewCSVExporter(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAppendRowWritesHeaderOnce(t *testing.T) {
	exporter := newTestExporter(t)

	require.NoError(t, exporter.WriteAPRAggregates(16.67, 15.0))
	require.NoError(t, exporter.WriteAPRAggregates(17.00, 15.5))

	records := readCSV(t, exporter.dir, "current_reporter_aprs.csv")
	require.Len(t, records, 3)
	assert.Equal(t, []string{"timestamp", "weighted_avg_apr", "median_apr"}, records[0])
	assert.Equal(t, []string{"2026-08-24T12:00:00Z", "16.67", "15.00"}, records[1])
	assert.Equal(t, []string{"2026-08-24T12:00:00Z", "17.00", "15.50"}, records[2])
}

func TestWriteRewardSample(t *testing.T) {
	exporter := newTestExporter(t)

	require.NoError(t, exporter.WriteRewardSample(RewardSample{
		Source:              "event-based",
		TotalSampleTRB:      1.25,
		BlocksSampled:       10,
		AvgInflationaryLoya: 3401.5,
		AvgExtraLoya:        0,
		ProjectedDailyTRB:   146.94,
		ProjectedAnnualTRB:  53633.1,
	}))

	records := readCSV(t, exporter.dir, "time_based_rewards.csv")
	require.Len(t, records, 2)
	assert.Equal(t, "event-based", records[1][1])
	assert.Equal(t, "1.25", records[1][2])
	assert.Equal(t, "10", records[1][3])
	assert.Equal(t, "3401.5", records[1][4])
	assert.Equal(t, "147", records[1][6])
	assert.Equal(t, "53633", records[1][7])
}

func TestWriteReporterAPRs(t *testing.T) {
	exporter := newTestExporter(t)

	reporters := []spec.ReporterAPR{
		{Address: "tellor1aaa", Moniker: "alpha", Power: 150 * spec.LoyaPerTRB, APRPercent: 12.5, CommissionRatePercent: 25},
		{Address: "tellor1bbb", Moniker: "beta", Power: 3 * spec.LoyaPerTRB, APRPercent: -1.25, CommissionRatePercent: 10},
	}
	require.NoError(t, exporter.WriteReporterAPRs("run-1", reporters))

	records := readCSV(t, exporter.dir, "reporter_aprs.csv")
	require.Len(t, records, 3)
	assert.Equal(t, "run-1", records[1][1])
	assert.Equal(t, "tellor1aaa", records[1][2])
	assert.Equal(t, "150.0", records[1][4])
	assert.Equal(t, "12.50", records[1][5])
	assert.Equal(t, "-1.25", records[2][5])
}

func TestWriteAPRByTotalStake(t *testing.T) {
	exporter := newTestExporter(t)

	state := spec.NetworkState{
		TotalActiveStake: 200_000 * spec.LoyaPerTRB,
		AvgMintPerBlock:  1000,
		AvgFeePerBlock:   0,
		AvgBlockTime:     2.0,
	}
	curve := apr.ProjectCurve(state)

	require.NoError(t, exporter.WriteAPRByTotalStake(200_000, 7.88, curve))

	records := readCSV(t, exporter.dir, "apr_by_total_stake.csv")
	require.Len(t, records, 2)
	require.Len(t, records[0], 3+len(apr.TargetStakeLevelsTRB))
	assert.Equal(t, "apr_at_50k_trb", records[0][3])
	assert.Equal(t, "apr_at_1.0M_trb", records[0][7])
	assert.Equal(t, "200000", records[1][1])
}

func TestWriteProfitabilitySummary(t *testing.T) {
	exporter := newTestExporter(t)

	require.NoError(t, exporter.WriteProfitabilitySummary(ProfitabilitySummary{
		NetworkStakeTRB:    200_000,
		CurrentAPR:         7.9,
		WeightedAvgAPR:     16.67,
		MedianAPR:          15.0,
		ProjectedAnnualTRB: 53633,
		YearlyFeeTRB:       120.5,
	}))

	records := readCSV(t, exporter.dir, "network_profitability_summary.csv")
	require.Len(t, records, 2)
	assert.Equal(t, "53633", records[1][5])
	assert.Equal(t, "120.5", records[1][6])
	assert.Equal(t, "53512", records[1][7], "net profitability is rewards minus fees")
}

func TestStakeLabel(t *testing.T) {
	tests := []struct {
		stake float64
		want  string
	}{
		{stake: 50_000, want: "50k"},
		{stake: 500_000, want: "500k"},
		{stake: 1_000_000, want: "1.0M"},
		{stake: 10_000_000, want: "10.0M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stakeLabel(tt.stake))
	}
}
