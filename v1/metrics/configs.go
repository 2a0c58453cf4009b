package metrics

// DefaultMetricsAddress is the listen address used when none is configured.
const DefaultMetricsAddress = ":9090"

// Config controls metric registration and the scrape endpoint.
type Config struct {
	// Address for the /metrics HTTP server. Empty disables the server; the
	// registry is still populated.
	Address string `yaml:"address" env:"MMSEARCH_METRICS_ADDRESS"`

	// EnableDefaultCollectors registers Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"MMSEARCH_METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace" env:"MMSEARCH_METRICS_NAMESPACE"`

	// ServiceName is attached as a constant "service" label.
	ServiceName string `yaml:"service_name" env:"MMSEARCH_METRICS_SERVICE_NAME"`
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Address:                 DefaultMetricsAddress,
		EnableDefaultCollectors: true,
		Namespace:               "mmsearch",
		ServiceName:             "multimodal-search",
	}
}
