// Package vectordb defines the database-agnostic vector index contract used by
// the search node.
//
// The Service interface mirrors the handful of primitives the node needs from
// a vector store: collection provisioning (list, create, index, load,
// describe), single record insertion and single-field nearest neighbour
// search. Concrete stores live in their own packages (see v1/qdrant) and are
// injected, so tests can substitute MockService.
//
// CollectionSchema carries the declared shape of a collection. Its Fingerprint
// is persisted by implementations at creation time, which lets a later
// provisioning run tell a matching collection from an incompatible one.
package vectordb
