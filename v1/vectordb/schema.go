package vectordb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// canonicalSchema is the fingerprinted view of a schema. Name and description
// are not part of it.
type canonicalSchema struct {
	Fields  []FieldSchema `json:"fields"`
	Indexes []IndexSpec   `json:"indexes"`
}

// Fingerprint returns a stable sha256 hex digest of the schema's fields and
// indexes. Field and index order does not matter.
func (s CollectionSchema) Fingerprint() string {
	c := canonicalSchema{
		Fields:  append([]FieldSchema(nil), s.Fields...),
		Indexes: append([]IndexSpec(nil), s.Indexes...),
	}
	sort.Slice(c.Fields, func(i, j int) bool { return c.Fields[i].Name < c.Fields[j].Name })
	sort.Slice(c.Indexes, func(i, j int) bool { return c.Indexes[i].Field < c.Indexes[j].Field })

	// encoding/json sorts map keys, so Params serialise deterministically.
	data, err := json.Marshal(c)
	if err != nil {
		// Only plain types are involved; Marshal cannot fail here.
		panic(fmt.Sprintf("vectordb: fingerprint marshal: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Validate checks the schema is internally consistent.
func (s CollectionSchema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("vectordb: collection name is required")
	}
	seen := make(map[string]bool, len(s.Fields))
	primary := 0
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("vectordb: field name is required")
		}
		if seen[f.Name] {
			return fmt.Errorf("vectordb: duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		if f.PrimaryKey {
			primary++
		}
		if f.IsVector() && f.Dim <= 0 {
			return fmt.Errorf("vectordb: vector field %q needs a positive dim", f.Name)
		}
	}
	if primary != 1 {
		return fmt.Errorf("vectordb: exactly one primary key field is required, got %d", primary)
	}
	for _, idx := range s.Indexes {
		f, ok := s.Field(idx.Field)
		if !ok || !f.IsVector() {
			return fmt.Errorf("vectordb: index on %q: %w", idx.Field, ErrUnknownField)
		}
	}
	return nil
}

// Matches reports whether the stored vectors have the dims and metrics the
// schema declares. It is the fallback check for collections that carry no
// fingerprint.
func (s CollectionSchema) Matches(info *CollectionInfo) error {
	if info == nil {
		return fmt.Errorf("%w: no collection info", ErrSchemaMismatch)
	}
	for _, f := range s.VectorFields() {
		stored, ok := info.Vectors[f.Name]
		if !ok {
			return fmt.Errorf("%w: vector field %q missing", ErrSchemaMismatch, f.Name)
		}
		if stored.Dim != f.Dim {
			return fmt.Errorf("%w: vector field %q has dim %d, expected %d", ErrSchemaMismatch, f.Name, stored.Dim, f.Dim)
		}
		if idx, ok := s.Index(f.Name); ok && stored.Metric != idx.Metric {
			return fmt.Errorf("%w: vector field %q uses %s, expected %s", ErrSchemaMismatch, f.Name, stored.Metric, idx.Metric)
		}
	}
	if len(info.Vectors) != len(s.VectorFields()) {
		return fmt.Errorf("%w: %d vector fields stored, expected %d", ErrSchemaMismatch, len(info.Vectors), len(s.VectorFields()))
	}
	return nil
}
