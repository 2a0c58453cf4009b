// Package qdrant implements vectordb.Service on top of the Qdrant gRPC API.
//
// # Mapping
//
//   - each float_vector field of a schema becomes a named vector with the
//     field's dimension and the index metric as distance
//   - CreateIndex applies HNSW build parameters (m, ef_construct) to the
//     named vector; the metric must equal the distance chosen at creation
//   - Load checks the collection exists and is not red, then caches its vector
//     shapes; Search before Load fails with vectordb.ErrCollectionNotLoaded
//   - Insert assigns a time ordered uint64 id and upserts with wait=true
//   - the schema fingerprint lives in the payload of the reserved, vector-less
//     point 0 and is read back by DescribeCollection
//
// Every call runs under Config.Timeout and reports to the configured
// observability.Observer.
//
// # Usage
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	    Config: qdrant.FromEndpoint("localhost"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	var db vectordb.Service = client
//
// With fx, supply a *qdrant.Config and include qdrant.FXModule.
package qdrant
