package qdrant

import (
	"fmt"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

func validateSearchInput(req vectordb.SearchRequest) error {
	if req.Collection == "" {
		return fmt.Errorf("[Qdrant] collection name cannot be empty")
	}
	if req.Field == "" {
		return fmt.Errorf("[Qdrant] vector field cannot be empty")
	}
	if len(req.Vector) == 0 {
		return fmt.Errorf("[Qdrant] vector cannot be empty")
	}
	if req.TopK <= 0 {
		return fmt.Errorf("[Qdrant] topK must be greater than 0")
	}
	return nil
}

// checkVectors verifies every vector matches a known field and its dimension.
func checkVectors(shapes map[string]vectordb.VectorInfo, vectors map[string][]float32) error {
	for name, v := range vectors {
		shape, ok := shapes[name]
		if !ok {
			return fmt.Errorf("[Qdrant] vector %q: %w", name, vectordb.ErrUnknownField)
		}
		if len(v) != shape.Dim {
			return fmt.Errorf("[Qdrant] vector %q expects %d values, got %d: %w",
				name, shape.Dim, len(v), vectordb.ErrDimensionMismatch)
		}
	}
	return nil
}
