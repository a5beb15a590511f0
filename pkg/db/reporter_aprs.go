package db

import (
	"time"

	"github.com/ClickHouse/ch-go/proto"

	"github.com/tellor-io/layerprof/pkg/spec"
)

var (
	reporterAPRsTable       = "t_reporter_aprs"
	insertReporterAPRsQuery = `
	INSERT INTO %s (
		f_run_id,
		f_timestamp,
		f_address,
		f_moniker,
		f_power_trb,
		f_apr_percent,
		f_commission_rate_percent)
		VALUES`

	deleteReporterAPRsBeforeQuery = `
	DELETE FROM %s
	WHERE f_timestamp < ?`
)

type reporterAPRRow struct {
	runID     string
	timestamp time.Time
	apr       spec.ReporterAPR
}

func reporterAPRsInput(rows []reporterAPRRow) proto.Input {
	// one object per column
	var (
		f_run_id                  proto.ColStr
		f_timestamp               proto.ColDateTime
		f_address                 proto.ColStr
		f_moniker                 proto.ColStr
		f_power_trb               proto.ColFloat64
		f_apr_percent             proto.ColFloat64
		f_commission_rate_percent proto.ColFloat64
	)

	for _, row := range rows {
		f_run_id.Append(row.runID)
		f_timestamp.Append(row.timestamp)
		f_address.Append(row.apr.Address)
		f_moniker.Append(row.apr.Moniker)
		f_power_trb.Append(float64(row.apr.Power) / spec.LoyaPerTRB)
		f_apr_percent.Append(row.apr.APRPercent)
		f_commission_rate_percent.Append(row.apr.CommissionRatePercent)
	}

	return proto.Input{
		{Name: "f_run_id", Data: f_run_id},
		{Name: "f_timestamp", Data: f_timestamp},
		{Name: "f_address", Data: f_address},
		{Name: "f_moniker", Data: f_moniker},
		{Name: "f_power_trb", Data: f_power_trb},
		{Name: "f_apr_percent", Data: f_apr_percent},
		{Name: "f_commission_rate_percent", Data: f_commission_rate_percent},
	}
}

func (s *DBService) PersistReporterAPRs(runID string, timestamp time.Time, data []spec.ReporterAPR) error {
	persistObj := PersistableObject[reporterAPRRow]{
		input: reporterAPRsInput,
		table: reporterAPRsTable,
		query: insertReporterAPRsQuery,
	}

	for _, item := range data {
		persistObj.Append(reporterAPRRow{
			runID:     runID,
			timestamp: timestamp,
			apr:       item,
		})
	}

	err := s.Persist(persistObj.ExportPersist())
	if err != nil {
		log.Errorf("error persisting reporter aprs: %s", err.Error())
	}
	return err
}
