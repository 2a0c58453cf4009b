package imagestore

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

// FXModule provides *Store and ensures the bucket on start.
//
// Dependencies required by this module:
//   - imagestore.Config
//   - logger.Logger (optional)
//   - observability.Observer (optional)
var FXModule = fx.Module("imagestore",
	fx.Provide(NewStoreWithParams),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies of NewStoreWithParams.
type StoreParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewStoreWithParams builds a Store from injected dependencies.
func NewStoreWithParams(p StoreParams) (*Store, error) {
	s, err := NewStore(p.Config, p.Logger)
	if err != nil {
		return nil, err
	}
	if p.Observer != nil {
		s.WithObserver(p.Observer)
	}
	return s, nil
}

// RegisterStoreLifecycle checks the bucket when the app starts.
func RegisterStoreLifecycle(lc fx.Lifecycle, s *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.EnsureBucket(ctx)
		},
	})
}
