package db

import (
	"sort"
	"time"

	"github.com/ClickHouse/ch-go/proto"

	"github.com/tellor-io/layerprof/pkg/apr"
)

var (
	aprTargetsTable       = "t_apr_targets"
	insertAPRTargetsQuery = `
	INSERT INTO %s (
		f_run_id,
		f_timestamp,
		f_label,
		f_stake_trb,
		f_apr_percent)
		VALUES`

	deleteAPRTargetsBeforeQuery = `
	DELETE FROM %s
	WHERE f_timestamp < ?`
)

type aprTargetRow struct {
	runID     string
	timestamp time.Time
	label     string
	target    apr.Target
}

func aprTargetsInput(rows []aprTargetRow) proto.Input {
	// one object per column
	var (
		f_run_id      proto.ColStr
		f_timestamp   proto.ColDateTime
		f_label       proto.ColStr
		f_stake_trb   proto.ColFloat64
		f_apr_percent proto.ColFloat64
	)

	for _, row := range rows {
		f_run_id.Append(row.runID)
		f_timestamp.Append(row.timestamp)
		f_label.Append(row.label)
		f_stake_trb.Append(row.target.StakeTRB)
		f_apr_percent.Append(row.target.ActualAPR)
	}

	return proto.Input{
		{Name: "f_run_id", Data: f_run_id},
		{Name: "f_timestamp", Data: f_timestamp},
		{Name: "f_label", Data: f_label},
		{Name: "f_stake_trb", Data: f_stake_trb},
		{Name: "f_apr_percent", Data: f_apr_percent},
	}
}

func (s *DBService) PersistAPRTargets(runID string, timestamp time.Time, targets map[string]apr.Target) error {
	persistObj := PersistableObject[aprTargetRow]{
		input: aprTargetsInput,
		table: aprTargetsTable,
		query: insertAPRTargetsQuery,
	}

	// map iteration order is random, keep rows stable across runs
	labels := make([]string, 0, len(targets))
	for label := range targets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		persistObj.Append(aprTargetRow{
			runID:     runID,
			timestamp: timestamp,
			label:     label,
			target:    targets[label],
		})
	}

	err := s.Persist(persistObj.ExportPersist())
	if err != nil {
		log.Errorf("error persisting apr targets: %s", err.Error())
	}
	return err
}

// PruneBefore drops detail rows older than the cutoff. The run index table
// is kept as a full history.
func (s *DBService) PruneBefore(cutoff time.Time) error {
	err := s.Delete(DeletableObject{
		query: deleteReporterAPRsBeforeQuery,
		table: reporterAPRsTable,
		args:  []any{cutoff},
	})
	if err != nil {
		return err
	}

	return s.Delete(DeletableObject{
		query: deleteAPRTargetsBeforeQuery,
		table: aprTargetsTable,
		args:  []any{cutoff},
	})
}
