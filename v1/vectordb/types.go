package vectordb

// FieldType is the storage type of a collection field.
type FieldType string

const (
	FieldTypeInt64       FieldType = "int64"
	FieldTypeVarChar     FieldType = "varchar"
	FieldTypeFloatVector FieldType = "float_vector"
)

// Metric is the similarity metric of a vector index.
type Metric string

const (
	// MetricCosine scores by cosine similarity. Higher is more similar.
	MetricCosine Metric = "COSINE"
	// MetricInnerProduct scores by dot product. Higher is more similar.
	MetricInnerProduct Metric = "IP"
	// MetricL2 scores by euclidean distance. Lower is more similar.
	MetricL2 Metric = "L2"
)

// IndexType is the approximate nearest neighbour structure built for a vector field.
type IndexType string

const (
	IndexHNSW IndexType = "HNSW"
)

// Index build parameter names understood by IndexSpec.Params.
const (
	ParamM           = "m"
	ParamEfConstruct = "ef_construct"
)

// FieldSchema describes one field of a collection.
type FieldSchema struct {
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	PrimaryKey bool      `json:"primaryKey,omitempty"`

	// AutoID means the store assigns the primary key.
	AutoID bool `json:"autoId,omitempty"`

	// MaxLength bounds varchar fields, in bytes.
	MaxLength int `json:"maxLength,omitempty"`

	// Dim is the vector length of float_vector fields.
	Dim int `json:"dim,omitempty"`
}

// IsVector reports whether the field holds embeddings.
func (f FieldSchema) IsVector() bool {
	return f.Type == FieldTypeFloatVector
}

// IndexSpec describes the index built for one vector field.
type IndexSpec struct {
	Field  string         `json:"field"`
	Type   IndexType      `json:"type"`
	Metric Metric         `json:"metric"`
	Params map[string]int `json:"params,omitempty"`
}

// CollectionSchema is the full declared shape of a collection.
type CollectionSchema struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Fields      []FieldSchema `json:"fields"`
	Indexes     []IndexSpec   `json:"indexes"`
}

// Field returns the field called name.
func (s CollectionSchema) Field(name string) (FieldSchema, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSchema{}, false
}

// VectorFields returns the float_vector fields in declaration order.
func (s CollectionSchema) VectorFields() []FieldSchema {
	var out []FieldSchema
	for _, f := range s.Fields {
		if f.IsVector() {
			out = append(out, f)
		}
	}
	return out
}

// Index returns the index spec declared for field.
func (s CollectionSchema) Index(field string) (IndexSpec, bool) {
	for _, idx := range s.Indexes {
		if idx.Field == field {
			return idx, true
		}
	}
	return IndexSpec{}, false
}

// VectorInfo is the stored shape of one vector field.
type VectorInfo struct {
	Dim    int    `json:"dim"`
	Metric Metric `json:"metric"`
}

// CollectionInfo is what the store reports about an existing collection.
type CollectionInfo struct {
	Name string `json:"name"`

	// Fingerprint is the schema fingerprint persisted at creation time.
	// Empty when the collection was created by something else.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Vectors maps vector field name to its stored shape.
	Vectors map[string]VectorInfo `json:"vectors"`

	Status     string `json:"status"`
	PointCount uint64 `json:"pointCount"`
	Loaded     bool   `json:"loaded"`
}

// Record is one row to insert. Scalars holds the non-vector fields.
type Record struct {
	Scalars map[string]any       `json:"scalars"`
	Vectors map[string][]float32 `json:"vectors"`
}

// SearchParams tunes a single vector search.
type SearchParams struct {
	// Ef is the HNSW candidate list size. Zero uses the store default.
	Ef int `json:"ef,omitempty"`
}

// SearchRequest is a nearest neighbour search over one vector field.
type SearchRequest struct {
	Collection string    `json:"collection"`
	Field      string    `json:"field"`
	Vector     []float32 `json:"vector"`
	TopK       int       `json:"topK"`
	Metric     Metric    `json:"metric"`

	Params SearchParams `json:"params"`

	// OutputFields restricts the returned payload. Empty returns every scalar.
	OutputFields []string `json:"outputFields,omitempty"`
}

// Hit is one search result.
type Hit struct {
	ID      uint64         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}
