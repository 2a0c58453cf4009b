package tracer

// Config controls the tracer provider.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name" env:"MMSEARCH_TRACER_SERVICE_NAME"`

	// AppEnv is recorded as the deployment environment.
	AppEnv string `yaml:"app_env" env:"MMSEARCH_TRACER_APP_ENV"`

	// EnableExport sends spans to an OTLP/HTTP collector. The exporter reads
	// the standard OTEL_EXPORTER_OTLP_* variables for the endpoint.
	EnableExport bool `yaml:"enable_export" env:"MMSEARCH_TRACER_ENABLE_EXPORT"`
}

// DefaultConfig returns a tracer config that records spans without exporting them.
func DefaultConfig() Config {
	return Config{
		ServiceName: "multimodal-search",
		AppEnv:      "development",
	}
}
