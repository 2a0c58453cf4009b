package vectordb

import "errors"

// Common vector index errors. Implementations wrap these so callers can use errors.Is.
var (
	// ErrCollectionNotFound is returned when the named collection does not exist.
	ErrCollectionNotFound = errors.New("vectordb: collection not found")

	// ErrCollectionExists is returned by CreateCollection for an existing name.
	ErrCollectionExists = errors.New("vectordb: collection already exists")

	// ErrCollectionNotLoaded is returned by Search before Load.
	ErrCollectionNotLoaded = errors.New("vectordb: collection not loaded")

	// ErrSchemaMismatch is returned when a stored collection differs from the expected schema.
	ErrSchemaMismatch = errors.New("vectordb: schema mismatch")

	// ErrMetricMismatch is returned when a request metric differs from the field's index metric.
	ErrMetricMismatch = errors.New("vectordb: metric mismatch")

	// ErrUnknownField is returned for a field the collection does not declare.
	ErrUnknownField = errors.New("vectordb: unknown field")

	// ErrDimensionMismatch is returned for a vector whose length differs from the field dimension.
	ErrDimensionMismatch = errors.New("vectordb: dimension mismatch")

	// ErrClientClosed is returned by every operation after Close.
	ErrClientClosed = errors.New("vectordb: client is closed")
)

// IsNotFoundError checks if the error is a missing collection error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCollectionNotFound)
}

// IsNotLoadedError checks if the error is a search-before-load error.
func IsNotLoadedError(err error) bool {
	return errors.Is(err, ErrCollectionNotLoaded)
}

// IsSchemaMismatchError checks if the error reports a schema conflict.
func IsSchemaMismatchError(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}
