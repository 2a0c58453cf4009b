package multimodal

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
)

// newBackOff builds the exponential backoff described by cfg, bound to ctx.
func newBackOff(ctx context.Context, cfg RetryConfig) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	b.MaxElapsedTime = cfg.MaxElapsedTime

	var bo backoff.BackOff = b
	if cfg.MaxRetries >= 0 {
		bo = backoff.WithMaxRetries(bo, uint64(cfg.MaxRetries))
	}
	return backoff.WithContext(bo, ctx)
}

// retry runs fn until it succeeds, fails with a non-retryable error, or the
// backoff gives up. The last error is returned.
func retry(ctx context.Context, cfg RetryConfig, log logger.Logger, op string, fn func(context.Context) error) error {
	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			err := fn(ctx)
			if err != nil && !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		newBackOff(ctx, cfg),
		func(err error, wait time.Duration) {
			log.WarnWithContext(ctx, "retrying after transient failure", err, map[string]interface{}{
				"operation": op,
				"attempt":   attempt,
				"wait_ms":   wait.Milliseconds(),
			})
		},
	)
}
