package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Provider is the backend contract behind Client.
type Provider interface {
	// Embed returns one vector per input. Inputs are text or image data URLs.
	Embed(ctx context.Context, model string, inputs ...any) ([][]float64, error)
	// Caption returns a one-sentence description of the image data URL.
	Caption(ctx context.Context, model, image string) (string, error)
}

type InferenceProvider struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func newInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	// Remove trailing slash if user added it.
	base := strings.TrimRight(cfg.Endpoint, "/")

	return &InferenceProvider{
		baseURL:      base,
		serviceToken: cfg.ServiceToken,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second},
	}, nil
}

// imageInput is the OpenAI-compatible multimodal input item.
type imageInput struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type imageURL struct {
	URL string `json:"url"`
}

// Embed generates embeddings using the OpenAI-compatible /embeddings endpoint.
func (p *InferenceProvider) Embed(ctx context.Context, model string, inputs ...any) ([][]float64, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("inference: no inputs provided")
	}
	if model == "" {
		return nil, fmt.Errorf("inference: model is required")
	}

	reqBody := map[string]any{
		"model": model,
		"input": inputs,
	}

	var parsed struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.postJSON(ctx, p.baseURL+"/embeddings", reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) != len(inputs) {
		return nil, fmt.Errorf("inference: expected %d embeddings, got %d", len(inputs), len(parsed.Data))
	}

	out := make([][]float64, len(parsed.Data))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("inference: embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}

	return out, nil
}

// Caption asks the /captions endpoint to describe an image.
func (p *InferenceProvider) Caption(ctx context.Context, model, image string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("inference: caption model is required")
	}

	reqBody := map[string]any{
		"model": model,
		"image": image,
	}

	var parsed struct {
		Caption string `json:"caption"`
	}

	if err := p.postJSON(ctx, p.baseURL+"/captions", reqBody, &parsed); err != nil {
		return "", err
	}
	if parsed.Caption == "" {
		return "", fmt.Errorf("inference: empty caption")
	}
	return parsed.Caption, nil
}

// Close releases idle connections.
func (p *InferenceProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
