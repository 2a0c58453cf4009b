// Package multimodal is the query and fusion engine of the search node.
//
// Records pair a short description with an image locator and carry two
// embeddings of the same dimension: one of the text, one of the image. The
// package provides
//
//   - SchemaManager: idempotent, fingerprint checked collection provisioning
//   - Writer: validated single record ingestion
//   - Dispatcher: mode selection and per-field vector search
//   - Fuse: merges two ranked lists by id with mean score
//   - Format: projection to {description, image_url, score}
//
// and Service, which ties them to one injected vectordb.Service and adds
// tracing, metrics and startup retries.
//
// # Query modes
//
// A query with a text vector is cross-modal: the text vector is searched
// against both the text and the image field and the two lists are fused. A
// query with only an image vector searches the image field. An image vector
// is never searched against the text field, and when both vectors are given
// the image vector is ignored.
//
// # Errors
//
// Every error returned is an *Error with a Kind. Validation errors are raised
// before the index is contacted. Infrastructure errors carry Retryable for
// timeouts and unavailable servers; missing, unloaded or mismatched
// collections are not retryable. Use KindOf and IsRetryable to inspect them.
package multimodal
