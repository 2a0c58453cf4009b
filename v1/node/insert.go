package node

import (
	"context"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

const NameVectorInsert = "vector-insert"

type insertInputs struct {
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	TextVector  []float32 `json:"text_vector"`
	ImageVector []float32 `json:"image_vector"`
}

// InsertNode stores one record.
//
// Inputs: {description, image_url, text_vector, image_vector}.
// Output: {inserted, id}.
type InsertNode struct {
	base
	index Index
}

func NewInsertNode(idx Index, log logger.Logger, obs observability.Observer) *InsertNode {
	return &InsertNode{base: newBase(NameVectorInsert, log, obs), index: idx}
}

func (n *InsertNode) Handle(ctx context.Context, inputs map[string]any) Response {
	return n.run(ctx, func(ctx context.Context) (map[string]any, error) {
		var in insertInputs
		if err := decode(n.name, inputs, &in); err != nil {
			return nil, err
		}

		res, err := n.index.Insert(ctx, multimodal.InsertInput{
			Description: in.Description,
			ImageURL:    in.ImageURL,
			TextVector:  in.TextVector,
			ImageVector: in.ImageVector,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"inserted": res.Inserted, "id": res.ID}, nil
	})
}
