package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/multimodal-search/v1/embedding"
	"github.com/Aleph-Alpha/multimodal-search/v1/imagestore"
	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/metrics"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/qdrant"
	"github.com/Aleph-Alpha/multimodal-search/v1/tracer"
)

// AppConfig is the full configuration of the binary, one section per package.
type AppConfig struct {
	Logger     logger.Config     `yaml:"logger"`
	Metrics    metrics.Config    `yaml:"metrics"`
	Tracer     tracer.Config     `yaml:"tracer"`
	Qdrant     qdrant.Config     `yaml:"qdrant"`
	Search     multimodal.Config `yaml:"search"`
	Embedding  embedding.Config  `yaml:"embedding"`
	ImageStore imagestore.Config `yaml:"image_store"`
}

// initViper returns a viper instance with defaults, the optional config file
// and MMSEARCH_ environment variables layered in that order.
func initViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("MMSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// loadConfig decodes v into an AppConfig using the yaml field names.
func loadConfig(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	err := v.Unmarshal(&cfg, viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}))
	if err != nil {
		return AppConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func setViperDefaults(v *viper.Viper) {
	lg := logger.DefaultConfig()
	v.SetDefault("logger.level", lg.Level)
	v.SetDefault("logger.service_name", lg.ServiceName)
	v.SetDefault("logger.enable_tracing", lg.EnableTracing)

	m := metrics.DefaultConfig()
	v.SetDefault("metrics.address", m.Address)
	v.SetDefault("metrics.enable_default_collectors", m.EnableDefaultCollectors)
	v.SetDefault("metrics.namespace", m.Namespace)
	v.SetDefault("metrics.service_name", m.ServiceName)

	tr := tracer.DefaultConfig()
	v.SetDefault("tracer.service_name", tr.ServiceName)
	v.SetDefault("tracer.app_env", tr.AppEnv)
	v.SetDefault("tracer.enable_export", tr.EnableExport)

	q := qdrant.DefaultConfig()
	v.SetDefault("qdrant.endpoint", q.Endpoint)
	v.SetDefault("qdrant.port", q.Port)
	v.SetDefault("qdrant.api_key", q.ApiKey)
	v.SetDefault("qdrant.use_tls", q.UseTLS)
	v.SetDefault("qdrant.timeout", q.Timeout)
	v.SetDefault("qdrant.connect_timeout", q.ConnectTimeout)
	v.SetDefault("qdrant.keep_alive", q.KeepAlive)
	v.SetDefault("qdrant.compression", q.Compression)
	v.SetDefault("qdrant.check_compatibility", q.CheckCompatibility)
	v.SetDefault("qdrant.node_id", q.NodeID)

	s := multimodal.DefaultConfig()
	v.SetDefault("search.collection_name", s.CollectionName)
	v.SetDefault("search.dimension", s.Dimension)
	v.SetDefault("search.max_text_length", s.MaxTextLength)
	v.SetDefault("search.default_top_k", s.DefaultTopK)
	v.SetDefault("search.index_m", s.IndexM)
	v.SetDefault("search.index_ef_construct", s.IndexEfConstruct)
	v.SetDefault("search.search_ef", s.SearchEf)
	v.SetDefault("search.concurrent_field_search", s.ConcurrentFieldSearch)
	v.SetDefault("search.retry.max_retries", s.Retry.MaxRetries)
	v.SetDefault("search.retry.initial_interval", s.Retry.InitialInterval)
	v.SetDefault("search.retry.max_interval", s.Retry.MaxInterval)
	v.SetDefault("search.retry.max_elapsed_time", s.Retry.MaxElapsedTime)

	// EMBEDDING_* variables seed the defaults.
	e := embedding.NewConfig()
	v.SetDefault("embedding.endpoint", e.Endpoint)
	v.SetDefault("embedding.service_token", e.ServiceToken)
	v.SetDefault("embedding.http_timeout_seconds", e.HTTPTimeoutS)
	v.SetDefault("embedding.text_model", e.TextModel)
	v.SetDefault("embedding.image_model", e.ImageModel)
	v.SetDefault("embedding.caption_model", e.CaptionModel)
	v.SetDefault("embedding.dimensions", e.Dimensions)

	im := imagestore.DefaultConfig()
	v.SetDefault("image_store.endpoint", im.Endpoint)
	v.SetDefault("image_store.access_key_id", im.AccessKeyID)
	v.SetDefault("image_store.secret_access_key", im.SecretAccessKey)
	v.SetDefault("image_store.use_ssl", im.UseSSL)
	v.SetDefault("image_store.region", im.Region)
	v.SetDefault("image_store.bucket_name", im.BucketName)
	v.SetDefault("image_store.access_bucket_creation", im.AccessBucketCreation)
	v.SetDefault("image_store.key_prefix", im.KeyPrefix)
	v.SetDefault("image_store.public_base_url", im.PublicBaseURL)
	v.SetDefault("image_store.timeout", im.Timeout)
}
