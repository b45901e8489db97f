package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the collectors exposed on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	pipelineRuns     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	ingestedRows     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fup_pipeline_runs_total",
			Help: "Pipeline runs by view.",
		}, []string{"view"}),
		pipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fup_pipeline_duration_seconds",
			Help:    "Pipeline run duration by view.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"view"}),
		ingestedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fup_ingested_rows_total",
			Help: "Shipment rows read from uploads by file format.",
		}, []string{"format"}),
	}
	m.Registry.MustRegister(
		m.pipelineRuns,
		m.pipelineDuration,
		m.ingestedRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObservePipeline(view string, d time.Duration) {
	m.pipelineRuns.WithLabelValues(view).Inc()
	m.pipelineDuration.WithLabelValues(view).Observe(d.Seconds())
}

func (m *Metrics) AddIngestedRows(format string, n int) {
	m.ingestedRows.WithLabelValues(format).Add(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
