package export

import (
	"fmt"

	"github.com/tellor-io/layerprof/pkg/apr"
	"github.com/tellor-io/layerprof/pkg/spec"
)

// RewardSample summarizes the observed mint events of a report run.
// Per-block averages stay in loya, projections are in TRB.
type RewardSample struct {
	Source              string
	TotalSampleTRB      float64
	BlocksSampled       int64
	AvgInflationaryLoya float64
	AvgExtraLoya        float64
	ProjectedDailyTRB   float64
	ProjectedAnnualTRB  float64
}

// CostSummary summarizes the observed reporting costs of a report run.
type CostSummary struct {
	AvgGasWanted  float64
	AvgGasUsed    float64
	MinGasPrice   float64
	AvgGasCost    float64
	AvgFeePaid    float64
	BlocksPerDay  float64
	ReportsPerDay float64
	DailyFeeTRB   float64
	MonthlyFeeTRB float64
	YearlyFeeTRB  float64
}

// ProfitabilitySummary holds the headline metrics tracked across runs.
type ProfitabilitySummary struct {
	NetworkStakeTRB    float64
	CurrentAPR         float64
	WeightedAvgAPR     float64
	MedianAPR          float64
	ProjectedAnnualTRB float64
	YearlyFeeTRB       float64
}

func (e *CSVExporter) WriteRewardSample(sample RewardSample) error {
	return e.appendRow("time_based_rewards.csv",
		[]string{
			"timestamp",
			"data_source",
			"total_tbr_sample_window_trb",
			"num_blocks_sampled",
			"inflationary_rewards_per_block_loya",
			"extra_rewards_per_block_loya",
			"projected_daily_tbr_trb",
			"projected_annual_tbr_trb",
		},
		[]string{
			e.timestamp(),
			sample.Source,
			fmt.Sprintf("%.2f", sample.TotalSampleTRB),
			fmt.Sprintf("%d", sample.BlocksSampled),
			fmt.Sprintf("%.1f", sample.AvgInflationaryLoya),
			fmt.Sprintf("%.1f", sample.AvgExtraLoya),
			fmt.Sprintf("%.0f", sample.ProjectedDailyTRB),
			fmt.Sprintf("%.0f", sample.ProjectedAnnualTRB),
		})
}

func (e *CSVExporter) WriteReportingCosts(costs CostSummary) error {
	return e.appendRow("reporting_costs.csv",
		[]string{
			"timestamp",
			"avg_gas_wanted",
			"avg_gas_used",
			"min_gas_price_loya",
			"avg_gas_cost_loya",
			"avg_fee_paid_loya",
			"blocks_per_day",
			"reports_per_day",
			"daily_fee_cost_trb",
			"monthly_fee_cost_trb",
			"yearly_fee_cost_trb",
		},
		[]string{
			e.timestamp(),
			fmt.Sprintf("%.0f", costs.AvgGasWanted),
			fmt.Sprintf("%.0f", costs.AvgGasUsed),
			fmt.Sprintf("%.6f", costs.MinGasPrice),
			fmt.Sprintf("%.4f", costs.AvgGasCost),
			fmt.Sprintf("%.1f", costs.AvgFeePaid),
			fmt.Sprintf("%.0f", costs.BlocksPerDay),
			fmt.Sprintf("%.0f", costs.ReportsPerDay),
			fmt.Sprintf("%.4f", costs.DailyFeeTRB),
			fmt.Sprintf("%.1f", costs.MonthlyFeeTRB),
			fmt.Sprintf("%.1f", costs.YearlyFeeTRB),
		})
}

// WriteReporterAPRs appends one row per reporter, tagged with the run id
// so rows from the same snapshot can be grouped.
func (e *CSVExporter) WriteReporterAPRs(runID string, reporters []spec.ReporterAPR) error {
	for _, r := range reporters {
		err := e.appendRow("reporter_aprs.csv",
			[]string{
				"timestamp",
				"run_id",
				"address",
				"moniker",
				"power_trb",
				"apr_percent",
				"commission_rate_percent",
			},
			[]string{
				e.timestamp(),
				runID,
				r.Address,
				r.Moniker,
				fmt.Sprintf("%.1f", float64(r.Power)/spec.LoyaPerTRB),
				fmt.Sprintf("%.2f", r.APRPercent),
				fmt.Sprintf("%.2f", r.CommissionRatePercent),
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *CSVExporter) WriteAPRAggregates(weightedAvg, median float64) error {
	return e.appendRow("current_reporter_aprs.csv",
		[]string{"timestamp", "weighted_avg_apr", "median_apr"},
		[]string{
			e.timestamp(),
			fmt.Sprintf("%.2f", weightedAvg),
			fmt.Sprintf("%.2f", median),
		})
}

// WriteAPRByTotalStake records the interpolated APR at the tracked stake
// levels alongside the current network point.
func (e *CSVExporter) WriteAPRByTotalStake(networkStakeTRB, currentAPR float64, curve apr.Curve) error {
	header := []string{"timestamp", "current_network_stake", "current_apr"}
	row := []string{
		e.timestamp(),
		fmt.Sprintf("%.0f", networkStakeTRB),
		fmt.Sprintf("%.1f", currentAPR),
	}
	for _, level := range apr.TargetStakeLevelsTRB {
		header = append(header, fmt.Sprintf("apr_at_%s_trb", stakeLabel(level)))
		row = append(row, fmt.Sprintf("%.1f", curve.At(level)))
	}
	return e.appendRow("apr_by_total_stake.csv", header, row)
}

func (e *CSVExporter) WriteProfitabilitySummary(summary ProfitabilitySummary) error {
	netAnnual := summary.ProjectedAnnualTRB - summary.YearlyFeeTRB
	return e.appendRow("network_profitability_summary.csv",
		[]string{
			"timestamp",
			"current_network_stake_trb",
			"current_apr_percent",
			"weighted_avg_apr_percent",
			"median_apr_percent",
			"projected_annual_tbr",
			"yearly_fee_cost_trb",
			"net_annual_profitability_trb",
		},
		[]string{
			e.timestamp(),
			fmt.Sprintf("%.0f", summary.NetworkStakeTRB),
			fmt.Sprintf("%.1f", summary.CurrentAPR),
			fmt.Sprintf("%.2f", summary.WeightedAvgAPR),
			fmt.Sprintf("%.2f", summary.MedianAPR),
			fmt.Sprintf("%.0f", summary.ProjectedAnnualTRB),
			fmt.Sprintf("%.1f", summary.YearlyFeeTRB),
			fmt.Sprintf("%.0f", netAnnual),
		})
}

func stakeLabel(stakeTRB float64) string {
	if stakeTRB >= 1_000_000 {
		return fmt.Sprintf("%.1fM", stakeTRB/1_000_000)
	}
	return fmt.Sprintf("%.0fk", stakeTRB/1_000)
}
