package multimodal

import (
	"fmt"
	"time"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

const testDim = 4

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Dimension = testDim
	cfg.Retry = RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
	}
	return cfg
}

func vec(values ...float32) []float32 { return values }

func unit(i int) []float32 {
	v := make([]float32, testDim)
	v[i%testDim] = 1
	return v
}

// fieldRequest matches a SearchRequest on one field with the given vector.
type fieldRequest struct {
	field  string
	vector []float32
}

func searchOn(field string, vector []float32) fieldRequest {
	return fieldRequest{field: field, vector: vector}
}

func (m fieldRequest) Matches(x any) bool {
	req, ok := x.(vectordb.SearchRequest)
	if !ok || req.Field != m.field || len(req.Vector) != len(m.vector) {
		return false
	}
	for i := range req.Vector {
		if req.Vector[i] != m.vector[i] {
			return false
		}
	}
	return true
}

func (m fieldRequest) String() string {
	return fmt.Sprintf("search on %s with %v", m.field, m.vector)
}

func hit(id uint64, score float32) vectordb.Hit {
	return vectordb.Hit{
		ID:    id,
		Score: score,
		Payload: map[string]any{
			FieldDescription: fmt.Sprintf("item %d", id),
			FieldImageURL:    fmt.Sprintf("s3://images/%d.png", id),
		},
	}
}
