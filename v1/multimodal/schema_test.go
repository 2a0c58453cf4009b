package multimodal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

func TestNewSchema(t *testing.T) {
	cfg := testConfig()
	s := NewSchema("images", 512, cfg)

	require.NoError(t, s.Validate())
	assert.Len(t, s.Fields, 5)
	for _, name := range []string{FieldTextVector, FieldImageVector} {
		f, ok := s.Field(name)
		require.True(t, ok)
		assert.Equal(t, 512, f.Dim)
		idx, ok := s.Index(name)
		require.True(t, ok)
		assert.Equal(t, vectordb.MetricCosine, idx.Metric)
	}
	desc, _ := s.Field(FieldDescription)
	assert.Equal(t, 512, desc.MaxLength)
	pk, _ := s.Field(FieldID)
	assert.True(t, pk.PrimaryKey)
	assert.True(t, pk.AutoID)
}

func TestEnsureCollectionIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := vectordb.NewMockService(ctrl)
	cfg := testConfig()
	m := NewSchemaManager(db, cfg, nil)
	ctx := context.Background()
	schema := NewSchema("images", testDim, cfg)

	gomock.InOrder(
		db.EXPECT().ListCollections(gomock.Any()).Return([]string{"other"}, nil),
		db.EXPECT().CreateCollection(gomock.Any(), schema).Return(nil),
		db.EXPECT().CreateIndex(gomock.Any(), "images", schema.Indexes[0]).Return(nil),
		db.EXPECT().CreateIndex(gomock.Any(), "images", schema.Indexes[1]).Return(nil),
		db.EXPECT().Load(gomock.Any(), "images").Return(nil),
		db.EXPECT().ListCollections(gomock.Any()).Return([]string{"other", "images"}, nil),
		db.EXPECT().DescribeCollection(gomock.Any(), "images").Return(&vectordb.CollectionInfo{
			Name:        "images",
			Fingerprint: schema.Fingerprint(),
		}, nil),
	)

	require.NoError(t, m.EnsureCollection(ctx, "images", testDim))
	require.NoError(t, m.EnsureCollection(ctx, "images", testDim))
}

func TestEnsureCollectionDetectsFingerprintMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := vectordb.NewMockService(ctrl)
	m := NewSchemaManager(db, testConfig(), nil)

	db.EXPECT().ListCollections(gomock.Any()).Return([]string{"images"}, nil)
	db.EXPECT().DescribeCollection(gomock.Any(), "images").Return(&vectordb.CollectionInfo{
		Name:        "images",
		Fingerprint: "not-the-expected-fingerprint",
	}, nil)
	db.EXPECT().CreateCollection(gomock.Any(), gomock.Any()).Times(0)

	err := m.EnsureCollection(context.Background(), "images", testDim)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, KindInfrastructure, KindOf(err))
	assert.False(t, IsRetryable(err))
}

func TestEnsureCollectionStructuralFallback(t *testing.T) {
	cosine := func(dim int) vectordb.VectorInfo { return vectordb.VectorInfo{Dim: dim, Metric: vectordb.MetricCosine} }

	cases := []struct {
		name    string
		vectors map[string]vectordb.VectorInfo
		wantErr bool
	}{
		{"matching", map[string]vectordb.VectorInfo{FieldTextVector: cosine(testDim), FieldImageVector: cosine(testDim)}, false},
		{"wrong dim", map[string]vectordb.VectorInfo{FieldTextVector: cosine(8), FieldImageVector: cosine(testDim)}, true},
		{"missing field", map[string]vectordb.VectorInfo{FieldTextVector: cosine(testDim)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := vectordb.NewMockService(ctrl)
			m := NewSchemaManager(db, testConfig(), nil)

			db.EXPECT().ListCollections(gomock.Any()).Return([]string{"images"}, nil)
			db.EXPECT().DescribeCollection(gomock.Any(), "images").Return(&vectordb.CollectionInfo{
				Name:    "images",
				Vectors: tc.vectors,
			}, nil)

			err := m.EnsureCollection(context.Background(), "images", testDim)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrSchemaMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnsureCollectionFailures(t *testing.T) {
	t.Run("list unavailable is retryable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := vectordb.NewMockService(ctrl)
		m := NewSchemaManager(db, testConfig(), nil)

		db.EXPECT().ListCollections(gomock.Any()).Return(nil, status.Error(codes.Unavailable, "down"))

		err := m.EnsureCollection(context.Background(), "images", testDim)
		assert.Equal(t, KindInfrastructure, KindOf(err))
		assert.True(t, IsRetryable(err))
	})

	t.Run("concurrent creation surfaces as provisioning failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := vectordb.NewMockService(ctrl)
		m := NewSchemaManager(db, testConfig(), nil)

		db.EXPECT().ListCollections(gomock.Any()).Return(nil, nil)
		db.EXPECT().CreateCollection(gomock.Any(), gomock.Any()).Return(vectordb.ErrCollectionExists)

		err := m.EnsureCollection(context.Background(), "images", testDim)
		assert.ErrorIs(t, err, vectordb.ErrCollectionExists)
		assert.Equal(t, KindInfrastructure, KindOf(err))
		assert.False(t, IsRetryable(err))
	})

	t.Run("index failure stops before load", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := vectordb.NewMockService(ctrl)
		m := NewSchemaManager(db, testConfig(), nil)

		db.EXPECT().ListCollections(gomock.Any()).Return(nil, nil)
		db.EXPECT().CreateCollection(gomock.Any(), gomock.Any()).Return(nil)
		db.EXPECT().CreateIndex(gomock.Any(), "images", gomock.Any()).Return(vectordb.ErrMetricMismatch)
		db.EXPECT().Load(gomock.Any(), gomock.Any()).Times(0)

		err := m.EnsureCollection(context.Background(), "images", testDim)
		assert.ErrorIs(t, err, vectordb.ErrMetricMismatch)
	})

	t.Run("bad arguments never reach the index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := vectordb.NewMockService(ctrl)
		m := NewSchemaManager(db, testConfig(), nil)

		assert.Equal(t, KindValidation, KindOf(m.EnsureCollection(context.Background(), "", testDim)))
		assert.Equal(t, KindValidation, KindOf(m.EnsureCollection(context.Background(), "images", 0)))
	})
}
