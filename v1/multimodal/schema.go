package multimodal

import (
	"context"
	"fmt"
	"slices"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// Field names of the collection.
const (
	FieldID          = "id"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
	FieldTextVector  = "text_vector"
	FieldImageVector = "image_vector"
)

// NewSchema returns the collection layout: an auto-assigned primary key, two
// bounded text fields and two vector fields of dim, each with an HNSW/COSINE
// index.
func NewSchema(name string, dim int, cfg Config) vectordb.CollectionSchema {
	params := map[string]int{
		vectordb.ParamM:           cfg.IndexM,
		vectordb.ParamEfConstruct: cfg.IndexEfConstruct,
	}
	return vectordb.CollectionSchema{
		Name:        name,
		Description: "multi-modal similarity index of described images",
		Fields: []vectordb.FieldSchema{
			{Name: FieldID, Type: vectordb.FieldTypeInt64, PrimaryKey: true, AutoID: true},
			{Name: FieldDescription, Type: vectordb.FieldTypeVarChar, MaxLength: cfg.MaxTextLength},
			{Name: FieldImageURL, Type: vectordb.FieldTypeVarChar, MaxLength: cfg.MaxTextLength},
			{Name: FieldTextVector, Type: vectordb.FieldTypeFloatVector, Dim: dim},
			{Name: FieldImageVector, Type: vectordb.FieldTypeFloatVector, Dim: dim},
		},
		Indexes: []vectordb.IndexSpec{
			{Field: FieldTextVector, Type: vectordb.IndexHNSW, Metric: vectordb.MetricCosine, Params: params},
			{Field: FieldImageVector, Type: vectordb.IndexHNSW, Metric: vectordb.MetricCosine, Params: params},
		},
	}
}

// SchemaManager provisions the collection.
type SchemaManager struct {
	db     vectordb.Service
	cfg    Config
	logger logger.Logger
}

// NewSchemaManager returns a SchemaManager using db.
func NewSchemaManager(db vectordb.Service, cfg Config, log logger.Logger) *SchemaManager {
	if log == nil {
		log = logger.NewNop()
	}
	return &SchemaManager{db: db, cfg: cfg, logger: log}
}

// EnsureCollection makes sure collection name exists with the node schema.
//
// A missing collection is created, indexed on both vector fields and loaded.
// An existing one is left untouched after its stored shape has been checked
// against the expected schema; a mismatch fails with ErrSchemaMismatch.
// Calling it repeatedly creates the collection at most once.
func (m *SchemaManager) EnsureCollection(ctx context.Context, name string, dim int) error {
	const op = "ensure_collection"
	if name == "" {
		return validationError(op, "name", ErrMissingField)
	}
	if dim <= 0 {
		return validationError(op, "dim", fmt.Errorf("dim must be positive, got %d", dim))
	}

	schema := NewSchema(name, dim, m.cfg)

	names, err := m.db.ListCollections(ctx)
	if err != nil {
		return infraError(op, err)
	}

	if slices.Contains(names, name) {
		return m.verify(ctx, schema)
	}

	m.logger.InfoWithContext(ctx, "creating collection", nil, map[string]interface{}{
		"collection":  name,
		"dim":         dim,
		"fingerprint": schema.Fingerprint(),
	})

	if err := m.db.CreateCollection(ctx, schema); err != nil {
		return infraError(op, err)
	}
	for _, idx := range schema.Indexes {
		if err := m.db.CreateIndex(ctx, name, idx); err != nil {
			return infraError(op, fmt.Errorf("index %s: %w", idx.Field, err))
		}
	}
	if err := m.db.Load(ctx, name); err != nil {
		return infraError(op, err)
	}
	return nil
}

// verify compares an existing collection with schema. Collections without a
// stored fingerprint are compared structurally.
func (m *SchemaManager) verify(ctx context.Context, schema vectordb.CollectionSchema) error {
	const op = "ensure_collection"

	info, err := m.db.DescribeCollection(ctx, schema.Name)
	if err != nil {
		return infraError(op, err)
	}

	if info.Fingerprint == "" {
		if err := schema.Matches(info); err != nil {
			return infraError(op, err)
		}
		m.logger.WarnWithContext(ctx, "collection has no schema fingerprint, checked structurally", nil, map[string]interface{}{
			"collection": schema.Name,
		})
		return nil
	}

	if want := schema.Fingerprint(); info.Fingerprint != want {
		return infraError(op, fmt.Errorf("%w: collection %q has fingerprint %s, expected %s",
			ErrSchemaMismatch, schema.Name, info.Fingerprint, want))
	}

	m.logger.DebugWithContext(ctx, "collection exists with expected schema", nil, map[string]interface{}{
		"collection": schema.Name,
	})
	return nil
}
