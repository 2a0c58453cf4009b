package imagestore

import (
	"errors"
	"strings"
	"time"
)

// Config defines the object store connection and layout.
type Config struct {
	// Endpoint is host:port of the S3-compatible server, without scheme.
	Endpoint string `yaml:"endpoint" env:"MMSEARCH_IMAGE_STORE_ENDPOINT"`

	AccessKeyID     string `yaml:"access_key_id" env:"MMSEARCH_IMAGE_STORE_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"MMSEARCH_IMAGE_STORE_SECRET_ACCESS_KEY"`

	UseSSL bool   `yaml:"use_ssl" env:"MMSEARCH_IMAGE_STORE_USE_SSL"`
	Region string `yaml:"region" env:"MMSEARCH_IMAGE_STORE_REGION"`

	BucketName string `yaml:"bucket_name" env:"MMSEARCH_IMAGE_STORE_BUCKET_NAME"`

	// AccessBucketCreation allows the store to create a missing bucket.
	AccessBucketCreation bool `yaml:"access_bucket_creation" env:"MMSEARCH_IMAGE_STORE_ACCESS_BUCKET_CREATION"`

	// KeyPrefix is prepended to every object key, e.g. "images/".
	KeyPrefix string `yaml:"key_prefix" env:"MMSEARCH_IMAGE_STORE_KEY_PREFIX"`

	// PublicBaseURL, when set, is used to build http locators
	// ({PublicBaseURL}/{key}). Otherwise locators are s3://{bucket}/{key}.
	PublicBaseURL string `yaml:"public_base_url" env:"MMSEARCH_IMAGE_STORE_PUBLIC_BASE_URL"`

	// Timeout bounds every object store call.
	Timeout time.Duration `yaml:"timeout" env:"MMSEARCH_IMAGE_STORE_TIMEOUT"`
}

// DefaultConfig returns a configuration for a local MinIO.
func DefaultConfig() Config {
	return Config{
		Endpoint:             "localhost:9000",
		BucketName:           "images",
		AccessBucketCreation: true,
		KeyPrefix:            "images/",
		Timeout:              10 * time.Second,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("imagestore: endpoint cannot be empty")
	}
	if strings.Contains(c.Endpoint, "://") {
		return errors.New("imagestore: endpoint must not include a scheme")
	}
	if c.BucketName == "" {
		return errors.New("imagestore: bucket name cannot be empty")
	}
	return nil
}
