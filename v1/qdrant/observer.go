package qdrant

import (
	"time"

	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: the collection name
//   - subResource: the vector field for searches and index builds
func (c *QdrantClient) observeOperation(operation, resource, subResource string, start time.Time, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "qdrant",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
