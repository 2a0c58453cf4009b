package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/multimodal-search/v1/embedding"
	"github.com/Aleph-Alpha/multimodal-search/v1/imagestore"
	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/metrics"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/node"
	"github.com/Aleph-Alpha/multimodal-search/v1/qdrant"
	"github.com/Aleph-Alpha/multimodal-search/v1/tracer"
)

// components selects the optional parts of the app.
type components struct {
	index  bool
	models bool
	store  bool
	nodes  bool
}

// componentsFor returns what the named node needs to run.
func componentsFor(name string) (components, bool) {
	switch name {
	case node.NameEmbed, node.NameImageDescription:
		return components{models: true, nodes: true}, true
	case node.NameVectorInsert, node.NameVectorQuery:
		return components{index: true, nodes: true}, true
	case node.NameIndexImage:
		return components{index: true, models: true, store: true, nodes: true}, true
	default:
		return components{}, false
	}
}

var knownNodes = []string{
	node.NameEmbed,
	node.NameImageDescription,
	node.NameIndexImage,
	node.NameVectorInsert,
	node.NameVectorQuery,
}

func appOptions(cfg AppConfig, c components, extra ...fx.Option) []fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg.Logger, cfg.Metrics, cfg.Tracer),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
	}

	if c.index {
		qcfg := cfg.Qdrant
		opts = append(opts,
			fx.Supply(&qcfg, cfg.Search),
			qdrant.FXModule,
			multimodal.FXModule,
			fx.Provide(func(s *multimodal.Service) node.Index { return s }),
		)
	}
	if c.models {
		ecfg := cfg.Embedding
		opts = append(opts,
			fx.Supply(&ecfg),
			embedding.FXModule,
			fx.Provide(
				func(ec *embedding.Client) node.Embedder { return ec },
				func(ec *embedding.Client) node.Captioner { return ec },
			),
		)
	}
	if c.store {
		opts = append(opts,
			fx.Supply(cfg.ImageStore),
			imagestore.FXModule,
			fx.Provide(func(s *imagestore.Store) node.ImageStore { return s }),
		)
	}
	if c.nodes {
		opts = append(opts, node.FXModule)
	}

	return append(opts, extra...)
}
