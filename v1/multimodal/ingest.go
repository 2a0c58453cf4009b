package multimodal

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// InsertInput is one described image with both embeddings.
type InsertInput struct {
	Description string
	ImageURL    string
	TextVector  []float32
	ImageVector []float32
}

// InsertResult reports a successful insert.
type InsertResult struct {
	Inserted bool   `json:"inserted"`
	ID       uint64 `json:"id"`
}

// Writer validates and stores records. Every call appends a new record; there
// is no deduplication.
type Writer struct {
	db     vectordb.Service
	cfg    Config
	logger logger.Logger
}

// NewWriter returns a Writer for cfg.CollectionName.
func NewWriter(db vectordb.Service, cfg Config, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Writer{db: db, cfg: cfg, logger: log}
}

// Insert validates in and appends it to the collection. Validation failures
// never reach the index.
func (w *Writer) Insert(ctx context.Context, in InsertInput) (InsertResult, error) {
	const op = "insert"

	if err := validateText(op, FieldDescription, in.Description, w.cfg.MaxTextLength); err != nil {
		return InsertResult{}, err
	}
	if err := validateText(op, FieldImageURL, in.ImageURL, w.cfg.MaxTextLength); err != nil {
		return InsertResult{}, err
	}
	if err := validateVector(op, FieldTextVector, in.TextVector, w.cfg.Dimension); err != nil {
		return InsertResult{}, err
	}
	if err := validateVector(op, FieldImageVector, in.ImageVector, w.cfg.Dimension); err != nil {
		return InsertResult{}, err
	}

	id, err := w.db.Insert(ctx, w.cfg.CollectionName, vectordb.Record{
		Scalars: map[string]any{
			FieldDescription: in.Description,
			FieldImageURL:    in.ImageURL,
		},
		Vectors: map[string][]float32{
			FieldTextVector:  in.TextVector,
			FieldImageVector: in.ImageVector,
		},
	})
	if err != nil {
		return InsertResult{}, infraError(op, err)
	}

	w.logger.DebugWithContext(ctx, "record inserted", nil, map[string]interface{}{
		"collection": w.cfg.CollectionName,
		"id":         id,
	})
	return InsertResult{Inserted: true, ID: id}, nil
}

func validateText(op, field, value string, limit int) error {
	if value == "" {
		return validationError(op, field, ErrMissingField)
	}
	if !utf8.ValidString(value) {
		return validationError(op, field, ErrInvalidUTF8)
	}
	if len(value) > limit {
		return validationError(op, field, fmt.Errorf("%w: %d bytes, limit %d", ErrFieldTooLong, len(value), limit))
	}
	return nil
}

func validateVector(op, field string, v []float32, dim int) error {
	if len(v) == 0 {
		return validationError(op, field, ErrMissingField)
	}
	if len(v) != dim {
		return validationError(op, field, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), dim))
	}
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return validationError(op, field, ErrInvalidVector)
		}
	}
	return nil
}
