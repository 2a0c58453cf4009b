package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible inference
// service (no /embeddings appended). The provider appends paths
// automatically, so callers only need to supply the host base URL.

type Config struct {
	// Inference endpoint and auth
	Endpoint     string `yaml:"endpoint" env:"EMBEDDING_ENDPOINT"`
	ServiceToken string `yaml:"service_token" env:"EMBEDDING_SERVICE_TOKEN"`
	HTTPTimeoutS int    `yaml:"http_timeout_seconds" env:"EMBEDDING_HTTP_TIMEOUT_SECONDS"`

	// Models. Text and image models must share one embedding space.
	TextModel    string `yaml:"text_model" env:"EMBEDDING_TEXT_MODEL"`
	ImageModel   string `yaml:"image_model" env:"EMBEDDING_IMAGE_MODEL"`
	CaptionModel string `yaml:"caption_model" env:"EMBEDDING_CAPTION_MODEL"`

	// Dimensions every returned vector must have.
	Dimensions int `yaml:"dimensions" env:"EMBEDDING_DIMENSIONS"`
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	cfg := &Config{
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		ServiceToken: os.Getenv("EMBEDDING_SERVICE_TOKEN"),
		HTTPTimeoutS: 30,
		TextModel:    envOr("EMBEDDING_TEXT_MODEL", "clip-vit-b-32"),
		ImageModel:   envOr("EMBEDDING_IMAGE_MODEL", "clip-vit-b-32"),
		CaptionModel: envOr("EMBEDDING_CAPTION_MODEL", "blip-image-captioning-base"),
		Dimensions:   512,
	}
	if n := envInt("EMBEDDING_HTTP_TIMEOUT_SECONDS"); n > 0 {
		cfg.HTTPTimeoutS = n
	}
	if n := envInt("EMBEDDING_DIMENSIONS"); n > 0 {
		cfg.Dimensions = n
	}
	return cfg
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT")
	}
	if c.ServiceToken == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_SERVICE_TOKEN")
	}
	if c.TextModel == "" || c.ImageModel == "" {
		return fmt.Errorf("embedding: text and image models are required")
	}
	if c.Dimensions <= 0 {
		return fmt.Errorf("embedding: dimensions must be positive, got %d", c.Dimensions)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
