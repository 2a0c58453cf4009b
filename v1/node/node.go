package node

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

// Node is one invocable unit of the pipeline.
type Node interface {
	Name() string
	// Handle never panics and never returns an error; failures are reported
	// in the Response.
	Handle(ctx context.Context, inputs map[string]any) Response
}

// Embedder turns text and images into vectors of the shared space.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedImage(ctx context.Context, img []byte) ([]float32, error)
}

// Captioner describes images in natural language.
type Captioner interface {
	Caption(ctx context.Context, img []byte) (string, error)
}

// Index stores and searches records.
type Index interface {
	Insert(ctx context.Context, in multimodal.InsertInput) (multimodal.InsertResult, error)
	Search(ctx context.Context, q multimodal.Query) ([]multimodal.Result, error)
}

// ImageStore keeps raw images and returns their locator.
type ImageStore interface {
	Put(ctx context.Context, data []byte) (string, error)
}

// base carries what every node shares.
type base struct {
	name     string
	logger   logger.Logger
	observer observability.Observer
}

func newBase(name string, log logger.Logger, obs observability.Observer) base {
	if log == nil {
		log = logger.NewNop()
	}
	return base{name: name, logger: log, observer: obs}
}

func (b base) Name() string { return b.name }

// run executes fn and turns its outcome, including panics, into a Response.
func (b base) run(ctx context.Context, fn func(ctx context.Context) (map[string]any, error)) (resp Response) {
	start := time.Now()
	var err error

	defer func() {
		if r := recover(); r != nil {
			err = errors.WithStack(fmt.Errorf("panic: %v", r))
			resp = Failure(b.name, err)
		}

		if err != nil {
			b.logger.ErrorWithContext(ctx, "node failed", err, map[string]interface{}{
				"node": b.name,
				"kind": multimodal.KindOf(err).String(),
				"code": resp.Error.Code,
			})
		}
		if b.observer != nil {
			b.observer.ObserveOperation(observability.OperationContext{
				Component: "node",
				Operation: b.name,
				Duration:  time.Since(start),
				Error:     err,
			})
		}
	}()

	var data map[string]any
	data, err = fn(ctx)
	if err != nil {
		return Failure(b.name, errors.WithStack(err))
	}
	return Success(data)
}
