package multimodal

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Service and provisions the collection on start.
//
// Dependencies required by this module:
//   - multimodal.Config
//   - vectordb.Service (e.g. from qdrant.FXModule)
var FXModule = fx.Module("multimodal",
	fx.Provide(NewService),
	fx.Invoke(RegisterServiceLifecycle),
)

// RegisterServiceLifecycle runs Service.Start when the app starts.
func RegisterServiceLifecycle(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(ctx)
		},
	})
}
