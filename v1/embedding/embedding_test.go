package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func testConfig(endpoint string) *Config {
	return &Config{
		Endpoint:     endpoint,
		ServiceToken: "secret",
		HTTPTimeoutS: 5,
		TextModel:    "text-model",
		ImageModel:   "image-model",
		CaptionModel: "caption-model",
		Dimensions:   3,
	}
}

type recordedRequest struct {
	mu    sync.Mutex
	Path  string
	Auth  string
	Model string
	Input []json.RawMessage
	Image string
}

func newServer(t *testing.T, dims int, got *recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string            `json:"model"`
			Input []json.RawMessage `json:"input"`
			Image string            `json:"image"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got.mu.Lock()
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")
		got.Model = body.Model
		got.Input = body.Input
		got.Image = body.Image
		got.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/embeddings":
			vec := make([]float64, dims)
			for i := range vec {
				vec[i] = float64(i) / 10
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{{"index": 0, "embedding": vec}},
			})
		case "/captions":
			_ = json.NewEncoder(w).Encode(map[string]any{"caption": "a tiny transparent square"})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestEmbedText(t *testing.T) {
	var got recordedRequest
	srv := newServer(t, 3, &got)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL + "/"))
	require.NoError(t, err)
	defer client.Close()

	vec, err := client.EmbedText(context.Background(), "a red bicycle")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0.1, 0.2}, vec)

	got.mu.Lock()
	defer got.mu.Unlock()
	assert.Equal(t, "/embeddings", got.Path)
	assert.Equal(t, "Bearer secret", got.Auth)
	assert.Equal(t, "text-model", got.Model)
	require.Len(t, got.Input, 1)
	assert.JSONEq(t, `"a red bicycle"`, string(got.Input[0]))
}

func TestEmbedImageSendsDataURL(t *testing.T) {
	var got recordedRequest
	srv := newServer(t, 3, &got)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	vec, err := client.EmbedImage(context.Background(), tinyPNG)
	require.NoError(t, err)
	assert.Len(t, vec, 3)

	got.mu.Lock()
	defer got.mu.Unlock()
	assert.Equal(t, "image-model", got.Model)
	require.Len(t, got.Input, 1)
	var item imageInput
	require.NoError(t, json.Unmarshal(got.Input[0], &item))
	assert.Equal(t, "image_url", item.Type)
	assert.True(t, strings.HasPrefix(item.ImageURL.URL, "data:image/png;base64,"))
}

func TestCaption(t *testing.T) {
	var got recordedRequest
	srv := newServer(t, 3, &got)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	caption, err := client.Caption(context.Background(), tinyPNG)
	require.NoError(t, err)
	assert.Equal(t, "a tiny transparent square", caption)
	got.mu.Lock()
	defer got.mu.Unlock()
	assert.Equal(t, "/captions", got.Path)
	assert.Equal(t, "caption-model", got.Model)
	assert.True(t, strings.HasPrefix(got.Image, "data:image/png;base64,"))
}

func TestDimensionMismatch(t *testing.T) {
	var got recordedRequest
	srv := newServer(t, 5, &got)
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.EmbedText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEmptyImage(t *testing.T) {
	client := NewWithProvider(*testConfig("http://unused"), nil)

	_, err := client.EmbedImage(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
	_, err = client.Caption(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.EmbedText(context.Background(), "x")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig("http://localhost")
	assert.NoError(t, cfg.Validate())

	cfg.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig("http://localhost")
	cfg.ServiceToken = ""
	assert.Error(t, cfg.Validate())

	cfg = testConfig("http://localhost")
	cfg.Dimensions = 0
	assert.Error(t, cfg.Validate())
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("EMBEDDING_ENDPOINT", "http://inference:8080")
	t.Setenv("EMBEDDING_SERVICE_TOKEN", "tok")
	t.Setenv("EMBEDDING_HTTP_TIMEOUT_SECONDS", "7")
	t.Setenv("EMBEDDING_DIMENSIONS", "768")

	cfg := NewConfig()
	assert.Equal(t, "http://inference:8080", cfg.Endpoint)
	assert.Equal(t, 7, cfg.HTTPTimeoutS)
	assert.Equal(t, 768, cfg.Dimensions)
	assert.NotEmpty(t, cfg.TextModel)
	assert.NoError(t, cfg.Validate())
}
