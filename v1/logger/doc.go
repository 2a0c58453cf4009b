// Package logger provides structured logging for the search node.
//
// It wraps zap behind a small Logger interface so that packages never import
// zap directly:
//   - Logger interface: the contract consumed by other packages
//   - LoggerClient struct: the zap backed implementation
//   - FXModule: provides both for dependency injection
//
// Every entry is JSON with an ISO8601 "timestamp", the process id and the
// configured service name. The *WithContext variants add trace_id and span_id
// when tracing is enabled and the context carries a valid OpenTelemetry span.
//
// Direct usage:
//
//	log := logger.NewLoggerClient(logger.DefaultConfig())
//	log.Info("collection ready", nil, map[string]interface{}{
//		"collection": "multimodal_index",
//	})
//
// With fx:
//
//	app := fx.New(
//		fx.Supply(logger.DefaultConfig()),
//		logger.FXModule,
//	)
package logger
