// Package metrics provides Prometheus metrics for the search node.
//
// Metrics owns a private registry with three node level series:
//   - <ns>_operations_total{component,operation,status}
//   - <ns>_operation_duration_seconds{component,operation}
//   - <ns>_query_results{mode}
//
// Instrumented packages never talk to Prometheus directly. They report to an
// observability.Observer, and NewObserver adapts a MetricsCollector to that
// interface. FXModule wires all of it and serves /metrics on Config.Address
// for the lifetime of the fx app.
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	obs := metrics.NewObserver(m)
//	client.WithObserver(obs)
package metrics
