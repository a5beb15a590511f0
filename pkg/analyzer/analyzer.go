package analyzer

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tellor-io/layerprof/pkg/clientapi"
	"github.com/tellor-io/layerprof/pkg/config"
	"github.com/tellor-io/layerprof/pkg/db"
	"github.com/tellor-io/layerprof/pkg/export"
	prom_metrics "github.com/tellor-io/layerprof/pkg/metrics"
)

var log = logrus.WithField(
	"module", "analyzer",
)

// Run modes.
const (
	ModeReport    = "report"
	ModeScenarios = "scenarios"
)

// ProfitabilityAnalyzer orchestrates one analysis run: snapshot the chain,
// compute the profitability model, render the report and hand the results
// to the export and persistence layers.
type ProfitabilityAnalyzer struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg  config.ReporterConfig
	mode string

	// Connections
	cli      *clientapi.APIClient
	dbClient *db.DBService       // nil when persistence is disabled
	exporter *export.CSVExporter // nil when csv export is disabled

	runID    string
	initTime time.Time

	// Control Variables
	stop          bool
	routineClosed chan struct{}
	runErr        error

	// last computed results, read by the prometheus module
	resultsMu     sync.RWMutex
	lastWeighted  float64
	lastMedian    float64
	lastReporters int
	lastRunSecs   float64

	PromMetrics *prom_metrics.PrometheusMetrics
}

func NewProfitabilityAnalyzer(
	pCtx context.Context,
	mode string,
	iConfig config.ReporterConfig) (*ProfitabilityAnalyzer, error) {

	// generate new ctx from parent
	ctx, cancel := context.WithCancel(pCtx)

	if mode != ModeReport && mode != ModeScenarios {
		cancel()
		return nil, errors.Errorf("unknown run mode %q", mode)
	}

	// generate the central exporting service
	promethMetrics := prom_metrics.NewPrometheusMetrics(ctx, "0.0.0.0", iConfig.PrometheusPort)

	var dbClient *db.DBService
	if iConfig.DBUrl != "" {
		var err error
		dbClient, err = db.New(ctx, iConfig.DBUrl)
		if err != nil {
			cancel()
			return nil, errors.Wrap(err, "unable to generate DB client")
		}
	}

	var exporter *export.CSVExporter
	if iConfig.CSVDir != "" {
		var err error
		exporter, err = export.NewCSVExporter(iConfig.CSVDir)
		if err != nil {
			cancel()
			return nil, errors.Wrap(err, "unable to generate CSV exporter")
		}
	}

	// generate the httpAPI client
	cliOpts := []clientapi.APIClientOption{
		clientapi.WithPromMetrics(promethMetrics),
	}
	if iConfig.RESTEndpoint != "" {
		cliOpts = append(cliOpts, clientapi.WithRESTEndpoint(iConfig.RESTEndpoint))
	}
	cli, err := clientapi.NewAPIClient(ctx, iConfig.RPCEndpoint, cliOpts...)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "unable to generate API client")
	}

	analyzer := &ProfitabilityAnalyzer{
		ctx:           ctx,
		cancel:        cancel,
		cfg:           iConfig,
		mode:          mode,
		cli:           cli,
		dbClient:      dbClient,
		exporter:      exporter,
		runID:         uuid.NewString(),
		routineClosed: make(chan struct{}, 1),
		PromMetrics:   promethMetrics,
	}

	promethMetrics.AddMetricsModule(analyzer.GetPrometheusMetrics())
	if dbClient != nil {
		promethMetrics.AddMetricsModule(dbClient.GetPrometheusMetrics())
	}

	return analyzer, nil
}

// Run executes the configured analysis once and releases all resources.
func (a *ProfitabilityAnalyzer) Run() {
	defer a.cancel()
	a.initTime = time.Now()
	log.Infof("profitability analyzer initialized at %s (run %s)", a.initTime.Format(time.RFC3339), a.runID)

	a.PromMetrics.Start()

	var err error
	switch a.mode {
	case ModeScenarios:
		err = a.runScenarios(os.Stdout)
	default:
		err = a.runReport(os.Stdout)
	}
	if err != nil {
		if a.stop {
			log.Info("analysis interrupted")
		} else {
			log.Errorf("analysis failed: %s", err.Error())
		}
		a.runErr = err
	}

	a.resultsMu.Lock()
	a.lastRunSecs = time.Since(a.initTime).Seconds()
	a.resultsMu.Unlock()

	if a.dbClient != nil {
		a.dbClient.Close()
	}
	a.PromMetrics.Close()

	log.Infof("analyzer finished in %.1fs", time.Since(a.initTime).Seconds())
	a.routineClosed <- struct{}{}
}

// Close interrupts a running analysis and waits for Run to wind down.
func (a *ProfitabilityAnalyzer) Close() {
	log.Info("sudden close detected, closing analyzer")
	a.stop = true
	a.cancel()
	<-a.routineClosed
}

// Err returns the failure of the last Run, if any.
func (a *ProfitabilityAnalyzer) Err() error {
	return a.runErr
}

func (a *ProfitabilityAnalyzer) storeResults(weighted, median float64, reporters int) {
	a.resultsMu.Lock()
	defer a.resultsMu.Unlock()
	a.lastWeighted = weighted
	a.lastMedian = median
	a.lastReporters = reporters
}
