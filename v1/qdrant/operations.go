package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// ListCollections returns all collection names.
func (c *QdrantClient) ListCollections(ctx context.Context) ([]string, error) {
	start := time.Now()
	if err := c.ensureOpen(); err != nil {
		c.observeOperation("list_collections", "", "", start, err, 0, nil)
		return nil, err
	}
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		err = fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}
	c.observeOperation("list_collections", "", "", start, err, int64(len(names)), nil)
	return names, err
}

// CreateCollection creates one named vector per vector field of schema and
// stores the schema fingerprint in the reserved marker point.
func (c *QdrantClient) CreateCollection(ctx context.Context, schema vectordb.CollectionSchema) (err error) {
	start := time.Now()
	defer func() { c.observeOperation("create_collection", schema.Name, "", start, err, 0, nil) }()

	if err := c.ensureOpen(); err != nil {
		return err
	}

	if err := schema.Validate(); err != nil {
		return err
	}
	vectors, err := vectorParamsFromSchema(schema)
	if err != nil {
		return err
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	exists, err := c.api.CollectionExists(ctx, schema.Name)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to check collection %q: %w", schema.Name, err)
	}
	if exists {
		return fmt.Errorf("[Qdrant] %q: %w", schema.Name, vectordb.ErrCollectionExists)
	}

	if err := c.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: schema.Name,
		VectorsConfig:  qdrant.NewVectorsConfigMap(vectors),
	}); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection %q: %w", schema.Name, err)
	}

	_, err = c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: schema.Name,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDNum(schemaPointID),
			Vectors: qdrant.NewVectorsMap(map[string]*qdrant.Vector{}),
			Payload: map[string]*qdrant.Value{
				payloadKeyFingerprint: qdrant.NewValueString(schema.Fingerprint()),
				payloadKeySchemaName:  qdrant.NewValueString(schema.Name),
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to store schema fingerprint for %q: %w", schema.Name, err)
	}

	c.logger.Info("[Qdrant] Collection created", nil, map[string]interface{}{
		"collection":    schema.Name,
		"vector_fields": len(vectors),
	})
	return nil
}

// CreateIndex applies the HNSW build parameters of spec to its vector field.
// Qdrant fixes the distance at creation, so the spec metric must match it.
func (c *QdrantClient) CreateIndex(ctx context.Context, collection string, spec vectordb.IndexSpec) (err error) {
	start := time.Now()
	defer func() { c.observeOperation("create_index", collection, spec.Field, start, err, 0, nil) }()

	if err := c.ensureOpen(); err != nil {
		return err
	}

	if spec.Type != vectordb.IndexHNSW {
		return fmt.Errorf("[Qdrant] unsupported index type %q", spec.Type)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	info, err := c.collectionInfo(ctx, collection)
	if err != nil {
		return err
	}
	stored, ok := vectorInfoFromCollection(info)[spec.Field]
	if !ok {
		return fmt.Errorf("[Qdrant] %q.%q: %w", collection, spec.Field, vectordb.ErrUnknownField)
	}
	metric := spec.Metric
	if metric == "" {
		metric = vectordb.MetricCosine
	}
	if stored.Metric != metric {
		return fmt.Errorf("[Qdrant] %q.%q uses %s, index requests %s: %w",
			collection, spec.Field, stored.Metric, metric, vectordb.ErrMetricMismatch)
	}

	hnsw := hnswConfig(spec.Params)
	if hnsw == nil {
		return nil
	}
	err = c.api.UpdateCollection(ctx, &qdrant.UpdateCollection{
		CollectionName: collection,
		VectorsConfig: &qdrant.VectorsConfigDiff{
			Config: &qdrant.VectorsConfigDiff_ParamsMap{
				ParamsMap: &qdrant.VectorParamsDiffMap{
					Map: map[string]*qdrant.VectorParamsDiff{
						spec.Field: {HnswConfig: hnsw},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to configure index on %q.%q: %w", collection, spec.Field, err)
	}
	return nil
}

// Load verifies the collection is present and healthy and caches its vector
// shapes. Searches against a collection are rejected until it is loaded.
func (c *QdrantClient) Load(ctx context.Context, collection string) (err error) {
	start := time.Now()
	defer func() { c.observeOperation("load", collection, "", start, err, 0, nil) }()

	if err := c.ensureOpen(); err != nil {
		return err
	}

	if _, ok := c.loadedVectors(collection); ok {
		return nil
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	info, err := c.collectionInfo(ctx, collection)
	if err != nil {
		return err
	}
	if info.GetStatus() == qdrant.CollectionStatus_Red {
		return fmt.Errorf("[Qdrant] collection %q is in red status", collection)
	}

	c.mu.Lock()
	c.loaded[collection] = vectorInfoFromCollection(info)
	c.mu.Unlock()

	c.logger.Info("[Qdrant] Collection loaded", nil, map[string]interface{}{
		"collection": collection,
		"status":     info.GetStatus().String(),
	})
	return nil
}

// Insert upserts one record under a freshly generated id and waits for the
// write to be applied.
func (c *QdrantClient) Insert(ctx context.Context, collection string, record vectordb.Record) (id uint64, err error) {
	start := time.Now()
	defer func() { c.observeOperation("insert", collection, "", start, err, 1, nil) }()

	if err := c.ensureOpen(); err != nil {
		return 0, err
	}

	if collection == "" {
		return 0, fmt.Errorf("[Qdrant] collection name cannot be empty")
	}
	if len(record.Vectors) == 0 {
		return 0, fmt.Errorf("[Qdrant] record has no vectors")
	}
	if shapes, ok := c.loadedVectors(collection); ok {
		if err := checkVectors(shapes, record.Vectors); err != nil {
			return 0, err
		}
	}

	payload, err := toPayload(record.Scalars)
	if err != nil {
		return 0, err
	}
	vectors := make(map[string]*qdrant.Vector, len(record.Vectors))
	for name, v := range record.Vectors {
		vectors[name] = qdrant.NewVector(v...)
	}

	id = c.ids.Next()

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	_, err = c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDNum(id),
			Vectors: qdrant.NewVectorsMap(vectors),
			Payload: payload,
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("[Qdrant] failed to insert into %q: %w", collection, err)
	}
	return id, nil
}

// Search runs a nearest neighbour query on one named vector.
func (c *QdrantClient) Search(ctx context.Context, req vectordb.SearchRequest) (hits []vectordb.Hit, err error) {
	start := time.Now()
	defer func() {
		c.observeOperation("search", req.Collection, req.Field, start, err, int64(len(hits)), nil)
	}()

	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	if err := validateSearchInput(req); err != nil {
		return nil, err
	}

	shapes, ok := c.loadedVectors(req.Collection)
	if !ok {
		return nil, fmt.Errorf("[Qdrant] %q: %w", req.Collection, vectordb.ErrCollectionNotLoaded)
	}
	shape, ok := shapes[req.Field]
	if !ok {
		return nil, fmt.Errorf("[Qdrant] %q.%q: %w", req.Collection, req.Field, vectordb.ErrUnknownField)
	}
	if len(req.Vector) != shape.Dim {
		return nil, fmt.Errorf("[Qdrant] %q.%q expects %d values, got %d: %w",
			req.Collection, req.Field, shape.Dim, len(req.Vector), vectordb.ErrDimensionMismatch)
	}
	if req.Metric != "" && req.Metric != shape.Metric {
		return nil, fmt.Errorf("[Qdrant] %q.%q uses %s, request asks for %s: %w",
			req.Collection, req.Field, shape.Metric, req.Metric, vectordb.ErrMetricMismatch)
	}

	query := &qdrant.QueryPoints{
		CollectionName: req.Collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Using:          qdrant.PtrOf(req.Field),
		Limit:          qdrant.PtrOf(uint64(req.TopK)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if req.Params.Ef > 0 {
		query.Params = &qdrant.SearchParams{HnswEf: qdrant.PtrOf(uint64(req.Params.Ef))}
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	points, err := c.api.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] search on %q.%q failed: %w", req.Collection, req.Field, err)
	}
	return toHits(points, req.OutputFields)
}

// DescribeCollection reports vector shapes, point count and the stored schema
// fingerprint of an existing collection.
func (c *QdrantClient) DescribeCollection(ctx context.Context, name string) (desc *vectordb.CollectionInfo, err error) {
	start := time.Now()
	defer func() { c.observeOperation("describe_collection", name, "", start, err, 0, nil) }()

	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	info, err := c.collectionInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	marker, err := c.api.Get(ctx, &qdrant.GetPoints{
		CollectionName: name,
		Ids:            []*qdrant.PointId{qdrant.NewIDNum(schemaPointID)},
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to read schema marker of %q: %w", name, err)
	}

	_, loaded := c.loadedVectors(name)
	desc = &vectordb.CollectionInfo{
		Name:       name,
		Vectors:    vectorInfoFromCollection(info),
		Status:     info.GetStatus().String(),
		PointCount: info.GetPointsCount(),
		Loaded:     loaded,
	}
	if len(marker) > 0 {
		if fp, ok := fromValue(marker[0].GetPayload()[payloadKeyFingerprint]).(string); ok {
			desc.Fingerprint = fp
		}
		if desc.PointCount > 0 {
			desc.PointCount--
		}
	}
	return desc, nil
}

// collectionInfo fetches collection info, mapping absence to ErrCollectionNotFound.
func (c *QdrantClient) collectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("[Qdrant] collection name cannot be empty")
	}
	exists, err := c.api.CollectionExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to check collection %q: %w", name, err)
	}
	if !exists {
		return nil, fmt.Errorf("[Qdrant] %q: %w", name, vectordb.ErrCollectionNotFound)
	}
	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection %q: %w", name, err)
	}
	return info, nil
}
