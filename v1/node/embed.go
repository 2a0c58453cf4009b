package node

import (
	"context"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

const NameEmbed = "embed"

type embedInputs struct {
	Description string `json:"description"`
	ImageBase64 string `json:"image_base64"`
}

// EmbedNode embeds a description and, when given, an image.
//
// Inputs: {description?, image_base64?}. Output: {text_vector, image_vector?}.
// The text vector is always produced, for an empty description too.
type EmbedNode struct {
	base
	embedder Embedder
}

func NewEmbedNode(e Embedder, log logger.Logger, obs observability.Observer) *EmbedNode {
	return &EmbedNode{base: newBase(NameEmbed, log, obs), embedder: e}
}

func (n *EmbedNode) Handle(ctx context.Context, inputs map[string]any) Response {
	return n.run(ctx, func(ctx context.Context) (map[string]any, error) {
		var in embedInputs
		if err := decode(n.name, inputs, &in); err != nil {
			return nil, err
		}

		var img []byte
		if in.ImageBase64 != "" {
			var err error
			if img, err = decodeImage(n.name, in.ImageBase64); err != nil {
				return nil, err
			}
		}

		textVector, err := n.embedder.EmbedText(ctx, in.Description)
		if err != nil {
			return nil, multimodal.UpstreamError("embed_text", err)
		}
		out := map[string]any{"text_vector": textVector}

		if img != nil {
			imageVector, err := n.embedder.EmbedImage(ctx, img)
			if err != nil {
				return nil, multimodal.UpstreamError("embed_image", err)
			}
			out["image_vector"] = imageVector
		}
		return out, nil
	})
}
