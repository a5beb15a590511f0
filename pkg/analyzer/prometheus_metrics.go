package analyzer

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tellor-io/layerprof/pkg/metrics"
	"github.com/tellor-io/layerprof/pkg/utils"
)

var modName = "analyzer"

var (

	// List of metrics that we are going to export
	ActiveReporters = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "active_reporters",
		Help:      "Reporters ranked in the last analysis",
	})
	WeightedAvgAPR = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "weighted_avg_apr",
		Help:      "Power-weighted average reporter APR of the last analysis",
	})
	MedianAPR = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "median_apr",
		Help:      "Median reporter APR of the last analysis",
	})
	RunDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: strings.ToLower(utils.CliName),
		Subsystem: modName,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last analysis run",
	})
)

func (a *ProfitabilityAnalyzer) GetPrometheusMetrics() *metrics.MetricsModule {
	metricsMod := metrics.NewMetricsModule(
		modName,
		"metrics about the profitability analysis",
	)
	// compose all the metrics
	metricsMod.AddIndvMetric(a.aprMetrics())
	metricsMod.AddIndvMetric(a.runMetrics())
	return metricsMod
}

func (a *ProfitabilityAnalyzer) aprMetrics() *metrics.IndvMetrics {
	initFn := func() error {
		prometheus.MustRegister(ActiveReporters)
		prometheus.MustRegister(WeightedAvgAPR)
		prometheus.MustRegister(MedianAPR)
		return nil
	}
	updateFn := func() (interface{}, error) {
		a.resultsMu.RLock()
		defer a.resultsMu.RUnlock()

		ActiveReporters.Set(float64(a.lastReporters))
		WeightedAvgAPR.Set(a.lastWeighted)
		MedianAPR.Set(a.lastMedian)
		return a.lastWeighted, nil
	}
	aprMetrics, err := metrics.NewIndvMetrics(
		"apr_results",
		initFn,
		updateFn,
	)
	if err != nil {
		return nil
	}
	return aprMetrics
}

func (a *ProfitabilityAnalyzer) runMetrics() *metrics.IndvMetrics {
	initFn := func() error {
		prometheus.MustRegister(RunDuration)
		return nil
	}
	updateFn := func() (interface{}, error) {
		a.resultsMu.RLock()
		defer a.resultsMu.RUnlock()

		RunDuration.Set(a.lastRunSecs)
		return a.lastRunSecs, nil
	}
	runMetric, err := metrics.NewIndvMetrics(
		"run_duration",
		initFn,
		updateFn,
	)
	if err != nil {
		return nil
	}
	return runMetric
}
