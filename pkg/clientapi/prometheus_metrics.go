package clientapi

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tellor-io/layerprof/pkg/metrics"
	"github.com/tellor-io/layerprof/pkg/utils"
)

const (
	clientAPIMetricsName    = "clientapi"
	clientAPIMetricsDetails = "metrics about node query interactions"
)

var (
	registerQueryMetricsOnce sync.Once

	nodeQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: clientAPIMetricsName,
			Name:      "node_queries_total",
			Help:      "Total number of queries issued against the node, by outcome.",
		},
		[]string{"outcome"},
	)

	nodeQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: strings.ToLower(utils.CliName),
			Subsystem: clientAPIMetricsName,
			Name:      "node_query_duration_seconds",
			Help:      "Duration of individual node queries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

type queryMetrics struct {
	mu        sync.Mutex
	succeeded int64
	failed    int64
}

func newQueryMetrics() *queryMetrics {
	return &queryMetrics{}
}

func (m *queryMetrics) record(duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	nodeQueries.WithLabelValues(outcome).Inc()
	nodeQueryDuration.Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
	} else {
		m.succeeded++
	}
}

func (m *queryMetrics) snapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int64{
		"ok":    m.succeeded,
		"error": m.failed,
	}
}

func (m *queryMetrics) getPrometheusMetrics() *metrics.MetricsModule {
	if m == nil {
		return nil
	}

	mod := metrics.NewMetricsModule(
		clientAPIMetricsName,
		clientAPIMetricsDetails,
	)

	initFn := func() error {
		registerQueryMetricsOnce.Do(func() {
			prometheus.MustRegister(nodeQueries)
			prometheus.MustRegister(nodeQueryDuration)
			nodeQueries.WithLabelValues("ok").Add(0)
			nodeQueries.WithLabelValues("error").Add(0)
		})
		return nil
	}

	updateFn := func() (interface{}, error) {
		return m.snapshot(), nil
	}

	indvMetrics, err := metrics.NewIndvMetrics(
		"node_queries",
		initFn,
		updateFn,
	)
	if err != nil {
		log.Error(errors.Wrap(err, "unable to init node_queries metrics"))
		return nil
	}

	mod.AddIndvMetric(indvMetrics)
	return mod
}
