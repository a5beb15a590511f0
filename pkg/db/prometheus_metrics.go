package db

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tellor-io/layerprof/pkg/metrics"
	"github.com/tellor-io/layerprof/pkg/utils"
)

var modName = "db"

var (

	// List of metrics that we are going to export
	LastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "last_run_timestamp",
		Help:      "Unix timestamp of the last persisted report run",
	})

	RowsPersisted = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: modName,
			Name:      "rows_persisted",
			Help:      "Rows persisted on the last insert",
		},
		[]string{
			"table",
		},
	)
	TimePersisted = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: modName,
			Name:      "time_persisted",
			Help:      "Duration (seconds) of last insert",
		},
		[]string{
			"table",
		},
	)
	RatePersisted = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: modName,
			Name:      "rows_s_persisted",
			Help:      "Rows per second persisted in the last insert",
		},
		[]string{
			"table",
		},
	)
)

func (s *DBService) initMonitorMetrics() {

	tablesArr := []string{
		reportRunsTable,
		reporterAPRsTable,
		aprTargetsTable}

	for _, tableName := range tablesArr {
		s.monitorMetrics[tableName] = &DBMonitorMetrics{}
	}
}

func (s *DBService) GetPrometheusMetrics() *metrics.MetricsModule {
	metricsMod := metrics.NewMetricsModule(
		modName,
		"metrics about the database",
	)
	// compose all the metrics
	metricsMod.AddIndvMetric(s.getPersistMetrics())
	metricsMod.AddIndvMetric(s.lastRunMetric())
	return metricsMod
}

func (s *DBService) getPersistMetrics() *metrics.IndvMetrics {
	initFn := func() error {
		prometheus.MustRegister(RowsPersisted)
		prometheus.MustRegister(TimePersisted)
		prometheus.MustRegister(RatePersisted)
		return nil
	}
	updateFn := func() (interface{}, error) {
		ratePersisted := make(map[string]float64)

		copyMonitorMetrics := s.getMonitorMetrics()

		for k, v := range copyMonitorMetrics {
			var rate float64
			secondsTime := v.PersistTime.Seconds()

			if secondsTime != 0 {
				rate = float64(v.Rows) / secondsTime
			}

			ratePersisted[k] = rate

			RowsPersisted.WithLabelValues(k).Set(float64(v.Rows))
			TimePersisted.WithLabelValues(k).Set(secondsTime)
			RatePersisted.WithLabelValues(k).Set(rate)
		}

		return ratePersisted, nil
	}
	persistingMetrics, err := metrics.NewIndvMetrics(
		"persisting_metrics",
		initFn,
		updateFn,
	)
	if err != nil {
		return nil
	}
	return persistingMetrics
}

func (s *DBService) lastRunMetric() *metrics.IndvMetrics {
	initFn := func() error {
		prometheus.MustRegister(LastRunTimestamp)
		return nil
	}
	updateFn := func() (interface{}, error) {
		lastRun, err := s.RetrieveLastRunTime()
		if err != nil {
			return nil, err
		}
		LastRunTimestamp.Set(float64(lastRun.Unix()))
		return lastRun, nil
	}
	lastRunMetric, err := metrics.NewIndvMetrics(
		"last_run_timestamp",
		initFn,
		updateFn,
	)
	if err != nil {
		return nil
	}
	return lastRunMetric
}

func (s *DBService) getMonitorMetrics() map[string]DBMonitorMetrics {
	s.metricsMu.RLock()
	defer s.metricsMu.RUnlock()

	copyMonitorMetrics := make(map[string]DBMonitorMetrics, len(s.monitorMetrics))

	for table, tableMetrics := range s.monitorMetrics {
		copyMonitorMetrics[table] = *tableMetrics
	}

	return copyMonitorMetrics
}
