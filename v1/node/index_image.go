package node

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

const NameIndexImage = "index-image"

type indexImageInputs struct {
	ImageBase64 string `json:"image_base64"`
	Description string `json:"description"`
}

// IndexImageNode runs the whole ingestion path for one image: caption when no
// description is given, embed both modalities, store the image and insert.
//
// Inputs: {image_base64, description?}.
// Output: {inserted, id, description, image_url}.
type IndexImageNode struct {
	base
	embedder  Embedder
	captioner Captioner
	store     ImageStore
	index     Index
}

func NewIndexImageNode(e Embedder, c Captioner, s ImageStore, idx Index, log logger.Logger, obs observability.Observer) *IndexImageNode {
	return &IndexImageNode{
		base:      newBase(NameIndexImage, log, obs),
		embedder:  e,
		captioner: c,
		store:     s,
		index:     idx,
	}
}

func (n *IndexImageNode) Handle(ctx context.Context, inputs map[string]any) Response {
	return n.run(ctx, func(ctx context.Context) (map[string]any, error) {
		var in indexImageInputs
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

		description := in.Description
		if description == "" {
			if description, err = n.captioner.Caption(ctx, img); err != nil {
				return nil, multimodal.UpstreamError("caption", err)
			}
		}

		var (
			textVector, imageVector []float32
			imageURL                string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			textVector, err = n.embedder.EmbedText(gctx, description)
			return multimodal.UpstreamError("embed_text", err)
		})
		g.Go(func() (err error) {
			imageVector, err = n.embedder.EmbedImage(gctx, img)
			return multimodal.UpstreamError("embed_image", err)
		})
		g.Go(func() (err error) {
			imageURL, err = n.store.Put(gctx, img)
			return multimodal.InfrastructureError("store_image", err)
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		res, err := n.index.Insert(ctx, multimodal.InsertInput{
			Description: description,
			ImageURL:    imageURL,
			TextVector:  textVector,
			ImageVector: imageVector,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"inserted":    res.Inserted,
			"id":          res.ID,
			"description": description,
			"image_url":   imageURL,
		}, nil
	})
}
