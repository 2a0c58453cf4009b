package multimodal

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// Mode is the search strategy chosen for a query.
type Mode string

const (
	// ModeCrossModal searches both vector fields with the text vector and
	// fuses the results.
	ModeCrossModal Mode = "cross_modal"
	// ModeImageOnly searches the image field with the image vector.
	ModeImageOnly Mode = "image_only"
)

// Query is a similarity search request. At least one vector is required.
// TopK zero means the configured default.
type Query struct {
	TextVector  []float32
	ImageVector []float32
	TopK        int
}

// SelectMode picks the search strategy. A text vector always wins: when both
// vectors are present the image vector is ignored.
func SelectMode(q Query) (Mode, error) {
	switch {
	case len(q.TextVector) > 0:
		return ModeCrossModal, nil
	case len(q.ImageVector) > 0:
		return ModeImageOnly, nil
	default:
		return "", validationError("search", "", ErrInvalidQuery)
	}
}

// Dispatcher validates queries and routes them to the vector fields.
type Dispatcher struct {
	db     vectordb.Service
	cfg    Config
	logger logger.Logger
}

// NewDispatcher returns a Dispatcher over cfg.CollectionName.
func NewDispatcher(db vectordb.Service, cfg Config, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNop()
	}
	return &Dispatcher{db: db, cfg: cfg, logger: log}
}

// Search runs q and returns at most TopK hits, best first.
//
// With a text vector both the text and the image field are searched with that
// same vector and the lists are fused. With only an image vector the image
// field alone is searched. An image vector is never searched against the text
// field. If either field search fails the query fails.
func (d *Dispatcher) Search(ctx context.Context, q Query) ([]Hit, error) {
	mode, topK, err := d.validate(q)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeCrossModal:
		text, image, err := d.searchBoth(ctx, q.TextVector, topK)
		if err != nil {
			return nil, err
		}
		return Fuse(text, image, topK), nil
	default:
		hits, err := d.searchField(ctx, FieldImageVector, q.ImageVector, topK)
		if err != nil {
			return nil, err
		}
		if len(hits) > topK {
			hits = hits[:topK]
		}
		return hits, nil
	}
}

func (d *Dispatcher) validate(q Query) (Mode, int, error) {
	const op = "search"

	if q.TopK < 0 {
		return "", 0, validationError(op, "top_k", ErrInvalidTopK)
	}
	topK := q.TopK
	if topK == 0 {
		topK = d.cfg.DefaultTopK
	}

	mode, err := SelectMode(q)
	if err != nil {
		return "", 0, err
	}

	if len(q.TextVector) > 0 {
		if err := validateVector(op, FieldTextVector, q.TextVector, d.cfg.Dimension); err != nil {
			return "", 0, err
		}
	}
	if len(q.ImageVector) > 0 {
		if err := validateVector(op, FieldImageVector, q.ImageVector, d.cfg.Dimension); err != nil {
			return "", 0, err
		}
	}
	return mode, topK, nil
}

// searchBoth searches both fields with vector, concurrently when configured.
func (d *Dispatcher) searchBoth(ctx context.Context, vector []float32, topK int) (text, image []Hit, err error) {
	if !d.cfg.ConcurrentFieldSearch {
		if text, err = d.searchField(ctx, FieldTextVector, vector, topK); err != nil {
			return nil, nil, err
		}
		if image, err = d.searchField(ctx, FieldImageVector, vector, topK); err != nil {
			return nil, nil, err
		}
		return text, image, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		text, err = d.searchField(gctx, FieldTextVector, vector, topK)
		return err
	})
	g.Go(func() error {
		var err error
		image, err = d.searchField(gctx, FieldImageVector, vector, topK)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return text, image, nil
}

func (d *Dispatcher) searchField(ctx context.Context, field string, vector []float32, topK int) ([]Hit, error) {
	raw, err := d.db.Search(ctx, vectordb.SearchRequest{
		Collection:   d.cfg.CollectionName,
		Field:        field,
		Vector:       vector,
		TopK:         topK,
		Metric:       vectordb.MetricCosine,
		Params:       vectordb.SearchParams{Ef: d.cfg.SearchEf},
		OutputFields: []string{FieldDescription, FieldImageURL},
	})
	if err != nil {
		d.logger.WarnWithContext(ctx, "field search failed", err, map[string]interface{}{
			"collection": d.cfg.CollectionName,
			"field":      field,
		})
		return nil, infraError("search", err)
	}

	hits := make([]Hit, len(raw))
	for i, h := range raw {
		hits[i] = Hit{
			ID:          h.ID,
			Description: stringField(h.Payload, FieldDescription),
			ImageURL:    stringField(h.Payload, FieldImageURL),
			Score:       float64(h.Score),
		}
	}
	return hits, nil
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
