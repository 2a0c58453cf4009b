package node

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

// FXModule provides a *Registry holding every node whose dependencies are
// present in the container.
//
// Optional dependencies:
//   - Embedder, Captioner (embed, image-description)
//   - Index (vector-insert, vector-query)
//   - all of the above plus ImageStore (index-image)
var FXModule = fx.Module("node",
	fx.Provide(NewRegistryWithParams),
)

// Params groups the dependencies of NewRegistryWithParams.
type Params struct {
	fx.In

	Embedder  Embedder               `optional:"true"`
	Captioner Captioner              `optional:"true"`
	Index     Index                  `optional:"true"`
	Store     ImageStore             `optional:"true"`
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewRegistryWithParams registers the nodes p can serve.
func NewRegistryWithParams(p Params) *Registry {
	var nodes []Node
	if p.Embedder != nil {
		nodes = append(nodes, NewEmbedNode(p.Embedder, p.Logger, p.Observer))
	}
	if p.Captioner != nil {
		nodes = append(nodes, NewDescribeNode(p.Captioner, p.Logger, p.Observer))
	}
	if p.Index != nil {
		nodes = append(nodes,
			NewInsertNode(p.Index, p.Logger, p.Observer),
			NewQueryNode(p.Index, p.Logger, p.Observer),
		)
	}
	if p.Embedder != nil && p.Captioner != nil && p.Store != nil && p.Index != nil {
		nodes = append(nodes, NewIndexImageNode(p.Embedder, p.Captioner, p.Store, p.Index, p.Logger, p.Observer))
	}
	return NewRegistry(nodes...)
}
