package node

import (
	"context"
	"fmt"
	"math"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

const NameVectorQuery = "vector-query"

type queryInputs struct {
	TextVector  []float32 `json:"text_vector"`
	ImageVector []float32 `json:"image_vector"`
	TopK        *float64  `json:"top_k"`
}

// QueryNode searches the index.
//
// Inputs: {text_vector?, image_vector?, top_k?}. Output: {results}.
// An omitted top_k uses the configured default; an explicit value must be a
// positive whole number.
type QueryNode struct {
	base
	index Index
}

func NewQueryNode(idx Index, log logger.Logger, obs observability.Observer) *QueryNode {
	return &QueryNode{base: newBase(NameVectorQuery, log, obs), index: idx}
}

func (n *QueryNode) Handle(ctx context.Context, inputs map[string]any) Response {
	return n.run(ctx, func(ctx context.Context) (map[string]any, error) {
		var in queryInputs
		if err := decode(n.name, inputs, &in); err != nil {
			return nil, err
		}

		q := multimodal.Query{TextVector: in.TextVector, ImageVector: in.ImageVector}
		if in.TopK != nil {
			k, err := topK(*in.TopK)
			if err != nil {
				return nil, multimodal.ValidationError(n.name, "top_k", err)
			}
			q.TopK = k
		}

		results, err := n.index.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		return map[string]any{"results": results}, nil
	})
}

// JSON numbers arrive as float64; anything that is not an exact int in
// 1..MaxInt32 is rejected rather than truncated.
func topK(v float64) (int, error) {
	if math.IsNaN(v) || v < 1 || v > math.MaxInt32 || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w, got %v", multimodal.ErrInvalidTopK, v)
	}
	return int(v), nil
}
