package node

import (
	"context"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

const NameImageDescription = "image-description"

type describeInputs struct {
	ImageBase64 string `json:"image_base64"`
}

// DescribeNode captions an image. Inputs: {image_base64}. Output: {description}.
type DescribeNode struct {
	base
	captioner Captioner
}

func NewDescribeNode(c Captioner, log logger.Logger, obs observability.Observer) *DescribeNode {
	return &DescribeNode{base: newBase(NameImageDescription, log, obs), captioner: c}
}

func (n *DescribeNode) Handle(ctx context.Context, inputs map[string]any) Response {
	return n.run(ctx, func(ctx context.Context) (map[string]any, error) {
		var in describeInputs
		if err := decode(n.name, inputs, &in); err != nil {
			return nil, err
		}
		if in.ImageBase64 == "" {
			return nil, multimodal.ValidationError(n.name, fieldImage, multimodal.ErrMissingField)
		}
		img, err := decodeImage(n.name, in.ImageBase64)
		if err != nil {
			return nil, err
		}

		caption, err := n.captioner.Caption(ctx, img)
		if err != nil {
			return nil, multimodal.UpstreamError("caption", err)
		}
		return map[string]any{"description": caption}, nil
	})
}
