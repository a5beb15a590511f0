package db

import (
	"fmt"
	"time"

	"github.com/ClickHouse/ch-go/proto"
)

var (
	reportRunsTable       = "t_report_runs"
	insertReportRunsQuery = `
	INSERT INTO %s (
		f_run_id,
		f_timestamp,
		f_chain_id,
		f_block_height,
		f_total_stake_trb,
		f_avg_block_time,
		f_mint_per_block_loya,
		f_fee_per_block_loya,
		f_weighted_avg_apr,
		f_median_apr,
		f_active_reporters)
		VALUES`

	selectLastRunQuery = `
	SELECT max(f_timestamp) as f_timestamp
	FROM %s`
)

// ReportRun is the headline row of one report execution.
type ReportRun struct {
	RunID            string
	Timestamp        time.Time
	ChainID          string
	BlockHeight      int64
	TotalStakeTRB    float64
	AvgBlockTime     float64
	MintPerBlockLoya float64
	FeePerBlockLoya  float64
	WeightedAvgAPR   float64
	MedianAPR        float64
	ActiveReporters  uint64
}

func reportRunsInput(runs []ReportRun) proto.Input {
	// one object per column
	var (
		f_run_id              proto.ColStr
		f_timestamp           proto.ColDateTime
		f_chain_id            proto.ColStr
		f_block_height        proto.ColInt64
		f_total_stake_trb     proto.ColFloat64
		f_avg_block_time      proto.ColFloat64
		f_mint_per_block_loya proto.ColFloat64
		f_fee_per_block_loya  proto.ColFloat64
		f_weighted_avg_apr    proto.ColFloat64
		f_median_apr          proto.ColFloat64
		f_active_reporters    proto.ColUInt64
	)

	for _, run := range runs {
		f_run_id.Append(run.RunID)
		f_timestamp.Append(run.Timestamp)
		f_chain_id.Append(run.ChainID)
		f_block_height.Append(run.BlockHeight)
		f_total_stake_trb.Append(run.TotalStakeTRB)
		f_avg_block_time.Append(run.AvgBlockTime)
		f_mint_per_block_loya.Append(run.MintPerBlockLoya)
		f_fee_per_block_loya.Append(run.FeePerBlockLoya)
		f_weighted_avg_apr.Append(run.WeightedAvgAPR)
		f_median_apr.Append(run.MedianAPR)
		f_active_reporters.Append(run.ActiveReporters)
	}

	return proto.Input{
		{Name: "f_run_id", Data: f_run_id},
		{Name: "f_timestamp", Data: f_timestamp},
		{Name: "f_chain_id", Data: f_chain_id},
		{Name: "f_block_height", Data: f_block_height},
		{Name: "f_total_stake_trb", Data: f_total_stake_trb},
		{Name: "f_avg_block_time", Data: f_avg_block_time},
		{Name: "f_mint_per_block_loya", Data: f_mint_per_block_loya},
		{Name: "f_fee_per_block_loya", Data: f_fee_per_block_loya},
		{Name: "f_weighted_avg_apr", Data: f_weighted_avg_apr},
		{Name: "f_median_apr", Data: f_median_apr},
		{Name: "f_active_reporters", Data: f_active_reporters},
	}
}

func (s *DBService) PersistReportRuns(data []ReportRun) error {
	persistObj := PersistableObject[ReportRun]{
		input: reportRunsInput,
		table: reportRunsTable,
		query: insertReportRunsQuery,
	}

	for _, item := range data {
		persistObj.Append(item)
	}

	err := s.Persist(persistObj.ExportPersist())
	if err != nil {
		log.Errorf("error persisting report runs: %s", err.Error())
	}
	return err
}

// RetrieveLastRunTime returns the timestamp of the most recent report run.
func (s *DBService) RetrieveLastRunTime() (time.Time, error) {
	var dest []struct {
		F_timestamp time.Time `ch:"f_timestamp"`
	}

	err := s.highSelect(
		fmt.Sprintf(selectLastRunQuery, reportRunsTable),
		&dest)

	if len(dest) > 0 {
		return dest[0].F_timestamp, err
	}
	return time.Time{}, err
}
