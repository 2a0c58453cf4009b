package vectordb

import "context"

//go:generate mockgen -source=interface.go -destination=mock_service.go -package=vectordb

// Service is the vector index contract the search node is built on.
//
// Implementations hold a live connection and must be safe for concurrent use.
// Every method honours ctx cancellation and deadlines.
type Service interface {
	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// CreateCollection creates the collection described by schema. It fails if
	// the collection already exists.
	CreateCollection(ctx context.Context, schema CollectionSchema) error

	// CreateIndex builds the index for one vector field of collection.
	CreateIndex(ctx context.Context, collection string, spec IndexSpec) error

	// Load makes collection searchable. Calling Load on a loaded collection is a no-op.
	Load(ctx context.Context, collection string) error

	// Insert appends one record and returns its store-assigned id.
	Insert(ctx context.Context, collection string, record Record) (uint64, error)

	// Search runs a nearest neighbour search. The collection must be loaded.
	// Hits are ordered best first.
	Search(ctx context.Context, req SearchRequest) ([]Hit, error)

	// DescribeCollection reports the stored shape of an existing collection.
	DescribeCollection(ctx context.Context, name string) (*CollectionInfo, error)
}
