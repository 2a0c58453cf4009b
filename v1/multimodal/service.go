package multimodal

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
	"github.com/Aleph-Alpha/multimodal-search/v1/tracer"
	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// ServiceParams groups the dependencies of NewService.
type ServiceParams struct {
	fx.In

	Config   Config
	DB       vectordb.Service
	Logger   logger.Logger          `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// Service is the search node core: provisioning, ingestion and querying over
// one injected vector index handle.
type Service struct {
	cfg        Config
	db         vectordb.Service
	schema     *SchemaManager
	writer     *Writer
	dispatcher *Dispatcher

	logger   logger.Logger
	tracer   *tracer.Tracer
	observer observability.Observer
}

// NewService validates the config and assembles the service. It does not
// touch the index; call Start for that.
func NewService(p ServiceParams) (*Service, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		cfg:        p.Config,
		db:         p.DB,
		schema:     NewSchemaManager(p.DB, p.Config, log),
		writer:     NewWriter(p.DB, p.Config, log),
		dispatcher: NewDispatcher(p.DB, p.Config, log),
		logger:     log,
		tracer:     p.Tracer,
		observer:   p.Observer,
	}, nil
}

// Config returns the service configuration.
func (s *Service) Config() Config { return s.cfg }

// Start ensures the collection exists with the expected schema and loads it,
// retrying transient index failures with exponential backoff.
func (s *Service) Start(ctx context.Context) (err error) {
	start := time.Now()
	ctx, span := s.tracer.StartSpan(ctx, "multimodal.start")
	defer func() {
		s.tracer.RecordErrorOnSpan(span, err)
		span.End()
		s.observe("start", start, err, 0, nil)
	}()

	err = retry(ctx, s.cfg.Retry, s.logger, "ensure_collection", func(ctx context.Context) error {
		return s.schema.EnsureCollection(ctx, s.cfg.CollectionName, s.cfg.Dimension)
	})
	if err != nil {
		err = infraError("ensure_collection", err)
		s.logger.ErrorWithContext(ctx, "collection provisioning failed", err, map[string]interface{}{
			"collection": s.cfg.CollectionName,
		})
		return err
	}

	err = retry(ctx, s.cfg.Retry, s.logger, "load", func(ctx context.Context) error {
		return infraError("load", s.db.Load(ctx, s.cfg.CollectionName))
	})
	if err != nil {
		return infraError("load", err)
	}

	s.logger.InfoWithContext(ctx, "search node ready", nil, map[string]interface{}{
		"collection": s.cfg.CollectionName,
		"dimension":  s.cfg.Dimension,
	})
	return nil
}

// EnsureCollection exposes the schema manager for callers that provision
// collections other than the configured one.
func (s *Service) EnsureCollection(ctx context.Context, name string, dim int) error {
	return s.schema.EnsureCollection(ctx, name, dim)
}

// Insert validates and stores one record.
func (s *Service) Insert(ctx context.Context, in InsertInput) (res InsertResult, err error) {
	start := time.Now()
	ctx, span := s.tracer.StartSpan(ctx, "multimodal.insert")
	defer func() {
		s.tracer.RecordErrorOnSpan(span, err)
		span.End()
		s.observe("insert", start, err, 1, nil)
	}()

	return s.writer.Insert(ctx, in)
}

// SearchHits runs q and returns ranked hits with their ids.
func (s *Service) SearchHits(ctx context.Context, q Query) (hits []Hit, err error) {
	start := time.Now()
	mode, _ := SelectMode(q)

	ctx, span := s.tracer.StartSpan(ctx, "multimodal.search")
	s.tracer.SetAttributes(span, map[string]interface{}{
		"mode":  string(mode),
		"top_k": q.TopK,
	})
	defer func() {
		s.tracer.RecordErrorOnSpan(span, err)
		span.End()
		s.observe("search", start, err, int64(len(hits)), map[string]interface{}{"mode": string(mode)})
	}()

	return s.dispatcher.Search(ctx, q)
}

// Search runs q and returns formatted results.
func (s *Service) Search(ctx context.Context, q Query) ([]Result, error) {
	hits, err := s.SearchHits(ctx, q)
	if err != nil {
		return nil, err
	}
	return Format(hits), nil
}

func (s *Service) observe(operation string, start time.Time, err error, size int64, metadata map[string]interface{}) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(observability.OperationContext{
		Component: "multimodal",
		Operation: operation,
		Resource:  s.cfg.CollectionName,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}
