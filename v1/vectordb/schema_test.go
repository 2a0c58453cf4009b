package vectordb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() CollectionSchema {
	return CollectionSchema{
		Name: "images",
		Fields: []FieldSchema{
			{Name: "id", Type: FieldTypeInt64, PrimaryKey: true, AutoID: true},
			{Name: "caption", Type: FieldTypeVarChar, MaxLength: 512},
			{Name: "text_vector", Type: FieldTypeFloatVector, Dim: 4},
			{Name: "image_vector", Type: FieldTypeFloatVector, Dim: 4},
		},
		Indexes: []IndexSpec{
			{Field: "text_vector", Type: IndexHNSW, Metric: MetricCosine, Params: map[string]int{ParamM: 16, ParamEfConstruct: 128}},
			{Field: "image_vector", Type: IndexHNSW, Metric: MetricCosine, Params: map[string]int{ParamEfConstruct: 128, ParamM: 16}},
		},
	}
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	a := testSchema()
	b := testSchema()
	b.Name = "other"
	b.Fields[0], b.Fields[3] = b.Fields[3], b.Fields[0]
	b.Indexes[0], b.Indexes[1] = b.Indexes[1], b.Indexes[0]

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}

func TestFingerprintChangesWithShape(t *testing.T) {
	a := testSchema()

	dim := testSchema()
	dim.Fields[2].Dim = 8
	assert.NotEqual(t, a.Fingerprint(), dim.Fingerprint())

	metric := testSchema()
	metric.Indexes[1].Metric = MetricL2
	assert.NotEqual(t, a.Fingerprint(), metric.Fingerprint())

	length := testSchema()
	length.Fields[1].MaxLength = 256
	assert.NotEqual(t, a.Fingerprint(), length.Fingerprint())
}

func TestValidate(t *testing.T) {
	require.NoError(t, testSchema().Validate())

	noName := testSchema()
	noName.Name = ""
	assert.Error(t, noName.Validate())

	dup := testSchema()
	dup.Fields = append(dup.Fields, FieldSchema{Name: "caption", Type: FieldTypeVarChar})
	assert.Error(t, dup.Validate())

	noPK := testSchema()
	noPK.Fields[0].PrimaryKey = false
	assert.Error(t, noPK.Validate())

	badIndex := testSchema()
	badIndex.Indexes = append(badIndex.Indexes, IndexSpec{Field: "caption", Type: IndexHNSW, Metric: MetricCosine})
	assert.ErrorIs(t, badIndex.Validate(), ErrUnknownField)

	zeroDim := testSchema()
	zeroDim.Fields[2].Dim = 0
	assert.Error(t, zeroDim.Validate())
}

func TestMatches(t *testing.T) {
	s := testSchema()
	info := &CollectionInfo{
		Name: "images",
		Vectors: map[string]VectorInfo{
			"text_vector":  {Dim: 4, Metric: MetricCosine},
			"image_vector": {Dim: 4, Metric: MetricCosine},
		},
	}
	require.NoError(t, s.Matches(info))

	info.Vectors["image_vector"] = VectorInfo{Dim: 8, Metric: MetricCosine}
	assert.ErrorIs(t, s.Matches(info), ErrSchemaMismatch)

	info.Vectors["image_vector"] = VectorInfo{Dim: 4, Metric: MetricL2}
	assert.ErrorIs(t, s.Matches(info), ErrSchemaMismatch)

	delete(info.Vectors, "image_vector")
	assert.ErrorIs(t, s.Matches(info), ErrSchemaMismatch)

	info.Vectors["image_vector"] = VectorInfo{Dim: 4, Metric: MetricCosine}
	info.Vectors["extra"] = VectorInfo{Dim: 4, Metric: MetricCosine}
	assert.ErrorIs(t, s.Matches(info), ErrSchemaMismatch)

	assert.ErrorIs(t, s.Matches(nil), ErrSchemaMismatch)
}

func TestVectorFieldsAndLookup(t *testing.T) {
	s := testSchema()
	vf := s.VectorFields()
	require.Len(t, vf, 2)
	assert.Equal(t, "text_vector", vf[0].Name)

	_, ok := s.Field("missing")
	assert.False(t, ok)
	idx, ok := s.Index("image_vector")
	require.True(t, ok)
	assert.Equal(t, MetricCosine, idx.Metric)
}
