package embedding

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when the service answers with a vector
	// of unexpected length.
	ErrDimensionMismatch = errors.New("embedding: unexpected vector dimension")
	// ErrEmptyImage is returned when no image bytes are supplied.
	ErrEmptyImage = errors.New("embedding: empty image")
)

// Client is the public entrypoint for computing embeddings and captions.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer.
type Client struct {
	provider Provider
	cfg      Config
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p, cfg: *cfg}, nil
}

// NewWithProvider builds a Client over a custom Provider.
func NewWithProvider(cfg Config, p Provider) *Client {
	return &Client{provider: p, cfg: cfg}
}

// Dimensions returns the vector length every call guarantees.
func (c *Client) Dimensions() int { return c.cfg.Dimensions }

// EmbedText embeds one text into the shared space.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.provider.Embed(ctx, c.cfg.TextModel, text)
	if err != nil {
		return nil, fmt.Errorf("embedding: text: %w", err)
	}
	return c.single(vecs)
}

// EmbedImage embeds raw image bytes into the shared space.
func (c *Client) EmbedImage(ctx context.Context, img []byte) ([]float32, error) {
	if len(img) == 0 {
		return nil, ErrEmptyImage
	}
	in := imageInput{Type: "image_url", ImageURL: imageURL{URL: DataURL(img)}}
	vecs, err := c.provider.Embed(ctx, c.cfg.ImageModel, in)
	if err != nil {
		return nil, fmt.Errorf("embedding: image: %w", err)
	}
	return c.single(vecs)
}

// Caption describes raw image bytes in natural language.
func (c *Client) Caption(ctx context.Context, img []byte) (string, error) {
	if len(img) == 0 {
		return "", ErrEmptyImage
	}
	caption, err := c.provider.Caption(ctx, c.cfg.CaptionModel, DataURL(img))
	if err != nil {
		return "", fmt.Errorf("embedding: caption: %w", err)
	}
	return caption, nil
}

// Close allows the client to release any internal resources used by the provider.
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) single(vecs [][]float64) ([]float32, error) {
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedding: expected 1 vector, got %d", len(vecs))
	}
	if len(vecs[0]) != c.cfg.Dimensions {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vecs[0]), c.cfg.Dimensions)
	}
	return toFloat32(vecs[0]), nil
}
