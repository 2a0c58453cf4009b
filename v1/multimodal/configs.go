package multimodal

import (
	"fmt"
	"time"
)

// Config controls the search node core.
type Config struct {
	// CollectionName is the singleton collection the node reads and writes.
	CollectionName string `yaml:"collection_name" env:"MMSEARCH_SEARCH_COLLECTION_NAME"`

	// Dimension is the length of both embedding fields.
	Dimension int `yaml:"dimension" env:"MMSEARCH_SEARCH_DIMENSION"`

	// MaxTextLength bounds description and image_url, in UTF-8 bytes.
	MaxTextLength int `yaml:"max_text_length" env:"MMSEARCH_SEARCH_MAX_TEXT_LENGTH"`

	// DefaultTopK is used when a query does not set TopK.
	DefaultTopK int `yaml:"default_top_k" env:"MMSEARCH_SEARCH_DEFAULT_TOP_K"`

	// IndexM and IndexEfConstruct are the HNSW build parameters.
	IndexM           int `yaml:"index_m" env:"MMSEARCH_SEARCH_INDEX_M"`
	IndexEfConstruct int `yaml:"index_ef_construct" env:"MMSEARCH_SEARCH_INDEX_EF_CONSTRUCT"`

	// SearchEf is the HNSW candidate list size per search. Larger is slower
	// and more accurate.
	SearchEf int `yaml:"search_ef" env:"MMSEARCH_SEARCH_SEARCH_EF"`

	// ConcurrentFieldSearch runs the two field searches of a cross-modal
	// query in parallel.
	ConcurrentFieldSearch bool `yaml:"concurrent_field_search" env:"MMSEARCH_SEARCH_CONCURRENT_FIELD_SEARCH"`

	// Retry applies to startup provisioning only.
	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig is the exponential backoff used for retryable infrastructure errors.
type RetryConfig struct {
	MaxRetries      int           `yaml:"max_retries" env:"MMSEARCH_SEARCH_RETRY_MAX_RETRIES"`
	InitialInterval time.Duration `yaml:"initial_interval" env:"MMSEARCH_SEARCH_RETRY_INITIAL_INTERVAL"`
	MaxInterval     time.Duration `yaml:"max_interval" env:"MMSEARCH_SEARCH_RETRY_MAX_INTERVAL"`
	MaxElapsedTime  time.Duration `yaml:"max_elapsed_time" env:"MMSEARCH_SEARCH_RETRY_MAX_ELAPSED_TIME"`
}

// DefaultConfig returns the settings of a standard deployment.
func DefaultConfig() Config {
	return Config{
		CollectionName:        "multimodal_index",
		Dimension:             512,
		MaxTextLength:         512,
		DefaultTopK:           5,
		IndexM:                16,
		IndexEfConstruct:      128,
		SearchEf:              64,
		ConcurrentFieldSearch: true,
		Retry: RetryConfig{
			MaxRetries:      5,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			MaxElapsedTime:  30 * time.Second,
		},
	}
}

// Validate rejects configurations the node cannot run with.
func (c Config) Validate() error {
	if c.CollectionName == "" {
		return fmt.Errorf("multimodal: collection name is required")
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("multimodal: dimension must be positive, got %d", c.Dimension)
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("multimodal: max text length must be positive, got %d", c.MaxTextLength)
	}
	if c.DefaultTopK <= 0 {
		return fmt.Errorf("multimodal: default top_k must be positive, got %d", c.DefaultTopK)
	}
	if c.SearchEf < 0 {
		return fmt.Errorf("multimodal: search ef must not be negative, got %d", c.SearchEf)
	}
	return nil
}
