package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField(
		"module", "prometheus",
	)
	UpdateInterval = 15 * time.Second
)

// PrometheusMetrics is the central exporting service: modules register their
// metrics here and Start exposes them over the standard /metrics endpoint,
// refreshing every UpdateInterval.
type PrometheusMetrics struct {
	ctx     context.Context
	ip      string
	port    int
	modules []*MetricsModule
	server  *http.Server
}

func NewPrometheusMetrics(ctx context.Context, ip string, port int) *PrometheusMetrics {
	return &PrometheusMetrics{
		ctx:     ctx,
		ip:      ip,
		port:    port,
		modules: make([]*MetricsModule, 0),
	}
}

func (p *PrometheusMetrics) AddMetricsModule(mod *MetricsModule) {
	if mod == nil {
		return
	}
	p.modules = append(p.modules, mod)
}

func (p *PrometheusMetrics) Start() {
	log.Infof("starting prometheus exporter at %s:%d", p.ip, p.port)

	for _, mod := range p.modules {
		if err := mod.init(); err != nil {
			log.Errorf("unable to init metrics module %s: %s", mod.Name(), err.Error())
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	p.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", p.ip, p.port),
		Handler: mux,
	}

	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("prometheus exporter stopped: %s", err.Error())
		}
	}()

	go p.updateLoop()
}

func (p *PrometheusMetrics) updateLoop() {
	ticker := time.NewTicker(UpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			for _, mod := range p.modules {
				mod.update()
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *PrometheusMetrics) Close() {
	if p.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.server.Shutdown(shutdownCtx)
	}
}
