// Package observability defines the contract between instrumented packages and
// whatever collects their telemetry.
//
// Packages such as qdrant and multimodal report every operation they perform to
// an Observer. The metrics package ships an Observer backed by Prometheus; tests
// typically use a small recording implementation.
package observability

import "time"

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the package reporting the operation, e.g. "qdrant" or "multimodal".
	Component string

	// Operation is the verb, e.g. "search", "insert", "create_collection".
	Operation string

	// Resource is the primary object operated on, usually a collection name.
	Resource string

	// SubResource narrows the resource, e.g. the vector field searched.
	SubResource string

	Duration time.Duration

	// Error is nil for successful operations.
	Error error

	// Size is an operation specific count (hits returned, bytes written).
	Size int64

	Metadata map[string]interface{}
}

// Observer receives operation notifications. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans a notification out to every non-nil observer.
func Multi(observers ...Observer) Observer {
	var out []Observer
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return ObserverFunc(func(ctx OperationContext) {
		for _, o := range out {
			o.ObserveOperation(ctx)
		}
	})
}
