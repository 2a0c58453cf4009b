package logger

// Supported log levels.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls the logger.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level" env:"MMSEARCH_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"MMSEARCH_LOGGER_SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// *WithContext methods when the context carries a valid span.
	EnableTracing bool `yaml:"enable_tracing" env:"MMSEARCH_LOGGER_ENABLE_TRACING"`
}

// DefaultConfig returns an info level logger config for the search node.
func DefaultConfig() Config {
	return Config{
		Level:         Info,
		ServiceName:   "multimodal-search",
		EnableTracing: true,
	}
}
