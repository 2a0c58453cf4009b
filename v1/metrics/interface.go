package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector is the contract for recording node metrics.
type MetricsCollector interface {
	// RecordOperation counts one operation of a component and observes its duration.
	RecordOperation(component, operation string, duration time.Duration, err error)

	// ObserveResultSize records how many hits a query returned, by query mode.
	ObserveResultSize(mode string, size int)

	CreateCounter(name, help string, labels []string) *prometheus.CounterVec
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
