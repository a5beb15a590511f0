package analyzer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellor-io/layerprof/pkg/clientapi"
	"github.com/tellor-io/layerprof/pkg/config"
	"github.com/tellor-io/layerprof/pkg/spec"
)

func TestNewAnalyzerRejectsUnknownMode(t *testing.T) {
	cfg := config.NewReporterConfig()
	_, err := NewProfitabilityAnalyzer(context.Background(), "replay", *cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown run mode")
}

func TestFeePerReport(t *testing.T) {
	tests := []struct {
		name     string
		avgFee   float64
		avgMin   float64
		expected float64
	}{
		{
			name:     "observed fees win",
			avgFee:   12_500,
			avgMin:   2_500,
			expected: 12_500,
		},
		{
			name:     "gas floor fallback",
			avgFee:   0,
			avgMin:   2_500,
			expected: 2_500,
		},
		{
			name:     "nothing observed",
			avgFee:   0,
			avgMin:   0,
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &NetworkSnapshot{
				Fees: clientapi.FeeSample{
					AvgFeeLoya: tt.avgFee,
					AvgMinCost: tt.avgMin,
				},
			}
			assert.Equal(t, tt.expected, snap.feePerReport())
		})
	}
}

func TestBuildCostSummary(t *testing.T) {
	snap := &NetworkSnapshot{
		MinGasPrice: 0.000025,
		Fees: clientapi.FeeSample{
			AvgGasWanted: 200_000,
			AvgGasUsed:   150_000,
			AvgFeeLoya:   10_000,
			AvgMinCost:   5,
		},
		State: spec.NetworkState{AvgBlockTime: 2.0},
	}

	costs := buildCostSummary(snap)

	// 43,200 blocks per day at 2s, half of them carry a report
	assert.InDelta(t, 43_200, costs.BlocksPerDay, 1e-9)
	assert.InDelta(t, 21_600, costs.ReportsPerDay, 1e-9)

	// 21,600 reports * 10,000 loya = 216 TRB per day
	assert.InDelta(t, 216, costs.DailyFeeTRB, 1e-9)
	assert.InDelta(t, 216*30, costs.MonthlyFeeTRB, 1e-9)
	assert.InDelta(t, 216*365, costs.YearlyFeeTRB, 1e-6)
}

func TestBuildRewardSample(t *testing.T) {
	snap := &NetworkSnapshot{
		MintPerBlock: 3_400,
		Mint: clientapi.MintSample{
			TotalLoya:        34_000,
			InflationaryLoya: 30_000,
			ExtraLoya:        4_000,
			BlocksSampled:    10,
		},
		State: spec.NetworkState{AvgBlockTime: 2.0},
	}

	rewards := buildRewardSample(snap)

	assert.Equal(t, "event-based", rewards.Source)
	assert.Equal(t, int64(10), rewards.BlocksSampled)
	assert.InDelta(t, 3_000, rewards.AvgInflationaryLoya, 1e-9)
	assert.InDelta(t, 400, rewards.AvgExtraLoya, 1e-9)

	// 3,400 loya * 43,200 blocks = 146.88 TRB per day
	assert.InDelta(t, 146.88, rewards.ProjectedDailyTRB, 1e-9)
	assert.InDelta(t, 146.88*365, rewards.ProjectedAnnualTRB, 1e-6)
}

func TestRunScenariosOffline(t *testing.T) {
	cfg := config.NewReporterConfig()
	cfg.ScenarioTotalStakeTRB = 25_000
	cfg.ScenarioMintPerBlock = 3_400
	cfg.ScenarioFeePerReport = 10_000
	cfg.ScenarioBlockTime = 2.0

	a, err := NewProfitabilityAnalyzer(context.Background(), ModeScenarios, *cfg)
	require.NoError(t, err)
	defer a.cancel()

	var buf bytes.Buffer
	require.NoError(t, a.runScenarios(&buf))

	out := buf.String()
	assert.Contains(t, out, "STAKE GROWTH SCENARIOS")
	assert.Contains(t, out, "manual observables, node not queried")
	assert.Contains(t, out, "25,000 TRB")
	assert.Contains(t, out, "Weighted APR")
	assert.Contains(t, out, "APR BY TOTAL STAKE")
	// every checkpoint level shows up in the scenario table
	for _, label := range []string{"50k TRB", "100k TRB", "1.0M TRB", "10.0M TRB"} {
		assert.True(t, strings.Contains(out, label), "missing checkpoint %s", label)
	}
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 0.0, safeDiv(10, 0))
	assert.Equal(t, 2.5, safeDiv(5, 2))
}
