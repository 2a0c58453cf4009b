package qdrant

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// FXModule provides *QdrantClient and binds it to vectordb.Service.
//
// Dependencies required by this module:
//   - *qdrant.Config
//   - logger.Logger (optional)
//   - observability.Observer (optional)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
		func(c *QdrantClient) vectordb.Service { return c },
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams groups the dependencies of NewQdrantClient.
type QdrantParams struct {
	fx.In

	Config   *Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// RegisterQdrantLifecycle closes the connection when the app stops.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			var err error
			once.Do(func() {
				err = client.Close()
				client.logger.Info("[Qdrant] client connection closed", err)
			})
			return err
		},
	})
}
