package metrics

import "github.com/pkg/errors"

// IndvMetrics is a single prometheus-backed metric: an init function that
// registers the collector and an update function that refreshes its value
// and reports it back for logging.
type IndvMetrics struct {
	name     string
	initFn   func() error
	updateFn func() (interface{}, error)
}

func NewIndvMetrics(name string, initFn func() error, updateFn func() (interface{}, error)) (*IndvMetrics, error) {
	if name == "" {
		return nil, errors.New("metric needs a name")
	}
	if initFn == nil || updateFn == nil {
		return nil, errors.Errorf("metric %s needs both init and update functions", name)
	}
	return &IndvMetrics{
		name:     name,
		initFn:   initFn,
		updateFn: updateFn,
	}, nil
}

func (m *IndvMetrics) Name() string {
	return m.name
}

// MetricsModule groups the metrics of one component of the tool.
type MetricsModule struct {
	name    string
	details string
	metrics []*IndvMetrics
}

func NewMetricsModule(name string, details string) *MetricsModule {
	return &MetricsModule{
		name:    name,
		details: details,
		metrics: make([]*IndvMetrics, 0),
	}
}

func (m *MetricsModule) AddIndvMetric(metric *IndvMetrics) {
	if metric == nil {
		return
	}
	m.metrics = append(m.metrics, metric)
}

func (m *MetricsModule) Name() string {
	return m.name
}

func (m *MetricsModule) init() error {
	for _, metric := range m.metrics {
		if err := metric.initFn(); err != nil {
			return errors.Wrapf(err, "unable to init metric %s", metric.name)
		}
	}
	return nil
}

func (m *MetricsModule) update() {
	for _, metric := range m.metrics {
		value, err := metric.updateFn()
		if err != nil {
			log.Errorf("unable to update metric %s: %s", metric.name, err.Error())
			continue
		}
		log.Tracef("metric %s/%s updated to %v", m.name, metric.name, value)
	}
}
