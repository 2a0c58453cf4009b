package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
)

const provisionLongDesc string = `Create the collection if it is missing, verify its schema otherwise, and
load it for search. Safe to run any number of times. Transient index failures
are retried with exponential backoff.`

func newProvisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create and load the search collection",
		Long:  provisionLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadFromFlags(cmd)
			if err != nil {
				return err
			}
			return runProvision(cmd.Context(), cfg)
		},
	}
}

func runProvision(ctx context.Context, cfg AppConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		svc *multimodal.Service
		log logger.Logger
	)
	app := fx.New(appOptions(cfg, components{index: true}, fx.Populate(&svc, &log))...)
	if err := app.Err(); err != nil {
		return fmt.Errorf("building app: %w", err)
	}

	// Starting the app runs Service.Start, which provisions the collection.
	startCtx, cancel := context.WithTimeout(ctx, startTimeout(cfg.Search))
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("provisioning %s: %w", cfg.Search.CollectionName, err)
	}

	log.Info("collection provisioned", nil, map[string]interface{}{
		"collection": svc.Config().CollectionName,
		"dimension":  svc.Config().Dimension,
	})

	return app.Stop(ctx)
}

// startTimeout leaves room for the full provisioning retry budget.
func startTimeout(cfg multimodal.Config) time.Duration {
	budget := 2*cfg.Retry.MaxElapsedTime + 30*time.Second
	if budget < fx.DefaultTimeout {
		return fx.DefaultTimeout
	}
	return budget
}
