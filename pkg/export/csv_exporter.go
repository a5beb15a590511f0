// Package export appends report snapshots to CSV files so repeated runs
// build a time series of network profitability.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(
	"module", "csv-export",
)

// CSVExporter writes one row per report run into per-metric CSV files
// under its data directory. Files are created with a header on first use
// and appended to afterwards.
type CSVExporter struct {
	dir string
	now func() time.Time
}

func NewCSVExporter(dir string) (*CSVExporter, error) {
	if dir == "" {
		return nil, errors.New("csv export directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "unable to create csv directory %s", dir)
	}
	return &CSVExporter{
		dir: dir,
		now: time.Now,
	}, nil
}

func (e *CSVExporter) timestamp() string {
	return e.now().Format(time.RFC3339)
}

// appendRow appends a single record to the named file, writing the header
// first if the file does not exist yet.
func (e *CSVExporter) appendRow(name string, header, row []string) error {
	path := filepath.Join(e.dir, name)

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return errors.Wrapf(err, "unable to write header to %s", path)
		}
	}
	if err := w.Write(row); err != nil {
		return errors.Wrapf(err, "unable to write row to %s", path)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "unable to flush %s", path)
	}

	log.Debugf("appended row to %s", path)
	return nil
}
