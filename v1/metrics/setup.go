package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry and the metric vectors the node records.
type Metrics struct {
	// Server exposes /metrics. Nil when Config.Address is empty.
	Server *http.Server

	// Registry holds every metric registered through this instance.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	resultSize        *prometheus.HistogramVec
}

var _ MetricsCollector = (*Metrics)(nil)

// NewMetrics creates the registry, registers the node metrics and, when an
// address is configured, prepares the scrape server. The server is started by
// the fx lifecycle.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)
	}

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: registerer,
	}

	m.operationsTotal = m.createCounterVec("operations_total",
		"Operations performed, by component, operation and status", []string{"component", "operation", "status"})
	m.operationDuration = m.createHistogramVec("operation_duration_seconds",
		"Operation latency in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.resultSize = m.createHistogramVec("query_results",
		"Hits returned per query, by query mode", []string{"mode"}, []float64{0, 1, 2, 5, 10, 20, 50, 100})

	registerer.MustRegister(m.operationsTotal, m.operationDuration, m.resultSize)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	if cfg.Address != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		m.Server = &http.Server{
			Addr:    cfg.Address,
			Handler: mux,
		}
	}

	return m
}
