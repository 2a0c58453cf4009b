package qdrant

import (
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

func TestDistanceMapping(t *testing.T) {
	for _, m := range []vectordb.Metric{vectordb.MetricCosine, vectordb.MetricInnerProduct, vectordb.MetricL2} {
		d, err := toDistance(m)
		require.NoError(t, err)
		assert.Equal(t, m, fromDistance(d))
	}

	d, err := toDistance("")
	require.NoError(t, err)
	assert.Equal(t, qdrant.Distance_Cosine, d)

	_, err = toDistance("HAMMING")
	assert.Error(t, err)
}

func TestHnswConfig(t *testing.T) {
	assert.Nil(t, hnswConfig(nil))
	assert.Nil(t, hnswConfig(map[string]int{"nlist": 128}))

	cfg := hnswConfig(map[string]int{vectordb.ParamM: 16, vectordb.ParamEfConstruct: 200})
	require.NotNil(t, cfg)
	assert.Equal(t, uint64(16), cfg.GetM())
	assert.Equal(t, uint64(200), cfg.GetEfConstruct())
}

func TestVectorParamsFromSchema(t *testing.T) {
	schema := vectordb.CollectionSchema{
		Name: "c",
		Fields: []vectordb.FieldSchema{
			{Name: "id", Type: vectordb.FieldTypeInt64, PrimaryKey: true},
			{Name: "text_vector", Type: vectordb.FieldTypeFloatVector, Dim: 8},
			{Name: "image_vector", Type: vectordb.FieldTypeFloatVector, Dim: 8},
		},
		Indexes: []vectordb.IndexSpec{
			{Field: "text_vector", Type: vectordb.IndexHNSW, Metric: vectordb.MetricCosine},
			{Field: "image_vector", Type: vectordb.IndexHNSW, Metric: vectordb.MetricL2},
		},
	}

	params, err := vectorParamsFromSchema(schema)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, uint64(8), params["text_vector"].GetSize())
	assert.Equal(t, qdrant.Distance_Cosine, params["text_vector"].GetDistance())
	assert.Equal(t, qdrant.Distance_Euclid, params["image_vector"].GetDistance())

	schema.Fields = schema.Fields[:1]
	_, err = vectorParamsFromSchema(schema)
	assert.Error(t, err)
}

func TestVectorInfoFromCollection(t *testing.T) {
	info := &qdrant.CollectionInfo{
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
					"text_vector":  {Size: 512, Distance: qdrant.Distance_Cosine},
					"image_vector": {Size: 512, Distance: qdrant.Distance_Cosine},
				}),
			},
		},
	}

	shapes := vectorInfoFromCollection(info)
	assert.Equal(t, map[string]vectordb.VectorInfo{
		"text_vector":  {Dim: 512, Metric: vectordb.MetricCosine},
		"image_vector": {Dim: 512, Metric: vectordb.MetricCosine},
	}, shapes)

	assert.Empty(t, vectorInfoFromCollection(&qdrant.CollectionInfo{}))
}

func TestPayloadConversion(t *testing.T) {
	payload, err := toPayload(map[string]any{
		"description": "a red bicycle",
		"count":       3,
		"ratio":       0.5,
		"flag":        true,
		"none":        nil,
	})
	require.NoError(t, err)

	back := fromPayload(payload, nil)
	assert.Equal(t, "a red bicycle", back["description"])
	assert.Equal(t, int64(3), back["count"])
	assert.Equal(t, 0.5, back["ratio"])
	assert.Equal(t, true, back["flag"])
	assert.Nil(t, back["none"])

	only := fromPayload(payload, []string{"description", "missing"})
	assert.Equal(t, map[string]any{"description": "a red bicycle"}, only)

	_, err = toPayload(map[string]any{"bad": []int{1}})
	assert.Error(t, err)
}

func TestToHits(t *testing.T) {
	points := []*qdrant.ScoredPoint{
		{Id: qdrant.NewIDNum(7), Score: 0.9, Payload: map[string]*qdrant.Value{"image_url": qdrant.NewValueString("s3://a")}},
		{Id: qdrant.NewIDNum(3), Score: 0.4},
	}
	hits, err := toHits(points, nil)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, uint64(7), hits[0].ID)
	assert.Equal(t, float32(0.9), hits[0].Score)
	assert.Equal(t, "s3://a", hits[0].Payload["image_url"])
	assert.Equal(t, uint64(3), hits[1].ID)

	_, err = toHits([]*qdrant.ScoredPoint{{Id: &qdrant.PointId{PointIdOptions: &qdrant.PointId_Uuid{Uuid: "0b1f4e5e-8a55-4b4a-a0a7-8c1f0f1d0f11"}}}}, nil)
	assert.Error(t, err)
}
