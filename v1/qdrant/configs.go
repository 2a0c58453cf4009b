package qdrant

import (
	"time"
)

// Config holds connection settings for the Qdrant gRPC API.
type Config struct {
	// Endpoint is the Qdrant host, without scheme or port.
	Endpoint string `yaml:"endpoint" env:"MMSEARCH_QDRANT_ENDPOINT"`

	// Port is the gRPC port. Zero means 6334.
	Port int `yaml:"port" env:"MMSEARCH_QDRANT_PORT"`

	ApiKey string `yaml:"api_key" env:"MMSEARCH_QDRANT_API_KEY"`

	UseTLS bool `yaml:"use_tls" env:"MMSEARCH_QDRANT_USE_TLS"`

	// Timeout bounds every individual call to Qdrant. A call that exceeds it
	// fails with context.DeadlineExceeded.
	Timeout time.Duration `yaml:"timeout" env:"MMSEARCH_QDRANT_TIMEOUT"`

	// ConnectTimeout bounds the startup health check.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MMSEARCH_QDRANT_CONNECT_TIMEOUT"`

	// KeepAlive enables gRPC keepalive pings on idle connections.
	KeepAlive bool `yaml:"keep_alive" env:"MMSEARCH_QDRANT_KEEP_ALIVE"`

	// Compression enables gzip on every gRPC call.
	Compression bool `yaml:"compression" env:"MMSEARCH_QDRANT_COMPRESSION"`

	// CheckCompatibility compares client and server versions on connect.
	CheckCompatibility bool `yaml:"check_compatibility" env:"MMSEARCH_QDRANT_CHECK_COMPATIBILITY"`

	// NodeID distinguishes writers in generated point ids, 1..1023. Each
	// concurrently writing process needs its own. 0 generates random ids.
	NodeID int `yaml:"node_id" env:"MMSEARCH_QDRANT_NODE_ID"`
}

// DefaultConfig returns a Config for a local Qdrant instance.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Timeout:            10 * time.Second,
		ConnectTimeout:     5 * time.Second,
		KeepAlive:          true,
		Compression:        false,
		CheckCompatibility: true,
	}
}

// FromEndpoint returns the default Config pointed at host.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

func (c *Config) WithCompression(enabled bool) *Config {
	c.Compression = enabled
	return c
}

func (c *Config) WithKeepAlive(enabled bool) *Config {
	c.KeepAlive = enabled
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}

func (c *Config) WithNodeID(id int) *Config {
	c.NodeID = id
	return c
}
