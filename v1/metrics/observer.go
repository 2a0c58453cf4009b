package metrics

import "github.com/Aleph-Alpha/multimodal-search/v1/observability"

// Observer turns operation notifications into Prometheus samples.
type Observer struct {
	collector MetricsCollector
}

var _ observability.Observer = (*Observer)(nil)

// NewObserver returns an observability.Observer recording into collector.
func NewObserver(collector MetricsCollector) *Observer {
	return &Observer{collector: collector}
}

// ObserveOperation implements observability.Observer. Query operations that
// carry a "mode" metadata entry also record their result size.
func (o *Observer) ObserveOperation(ctx observability.OperationContext) {
	if o == nil || o.collector == nil {
		return
	}
	o.collector.RecordOperation(ctx.Component, ctx.Operation, ctx.Duration, ctx.Error)

	if ctx.Error != nil {
		return
	}
	if mode, ok := ctx.Metadata["mode"].(string); ok {
		o.collector.ObserveResultSize(mode, int(ctx.Size))
	}
}
