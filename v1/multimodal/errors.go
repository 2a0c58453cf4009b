package multimodal

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

// Kind classifies a failure for the caller.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is a bad request. Never retried.
	KindValidation
	// KindInfrastructure is a vector index failure. See Error.Retryable.
	KindInfrastructure
	// KindUpstream is a failure of the embedding or captioning service.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInfrastructure:
		return "infrastructure"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Validation causes.
var (
	ErrInvalidQuery      = errors.New("at least one of text_vector or image_vector is required")
	ErrInvalidTopK       = errors.New("top_k must be a positive integer")
	ErrMissingField      = errors.New("required field is missing")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrInvalidUTF8       = errors.New("field is not valid UTF-8")
	ErrDimensionMismatch = errors.New("vector has the wrong dimension")
	ErrInvalidVector     = errors.New("vector contains NaN or Inf")
)

// ErrSchemaMismatch is returned when an existing collection has a different shape.
var ErrSchemaMismatch = vectordb.ErrSchemaMismatch

// Error is the typed error returned by every operation of this package.
type Error struct {
	Kind Kind
	// Op is the failing operation, e.g. "search" or "ensure_collection".
	Op string
	// Field names the offending input for validation errors.
	Field string
	// Retryable is set for transient infrastructure failures.
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("multimodal %s: %s: %s: %v", e.Kind, e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("multimodal %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(op, field string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Err: err}
}

// infraError wraps a vector index error. Errors that already carry a kind are
// returned unchanged.
func infraError(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: KindInfrastructure, Op: op, Retryable: isTransient(err), Err: err}
}

// UpstreamError wraps a failure of a model service call.
func UpstreamError(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: KindUpstream, Op: op, Err: err}
}

// InfrastructureError wraps a storage failure detected outside this package,
// classifying it like index errors.
func InfrastructureError(op string, err error) error {
	return infraError(op, err)
}

// ValidationError wraps a bad input detected outside this package.
func ValidationError(op, field string, err error) error {
	return validationError(op, field, err)
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether err is a transient infrastructure failure.
func IsRetryable(err error) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Retryable
	}
	return false
}

// isTransient classifies raw index errors. Structural problems (missing or
// mismatched collection, search before load) and caller cancellation are not
// transient.
func isTransient(err error) bool {
	switch {
	case errors.Is(err, vectordb.ErrCollectionNotFound),
		errors.Is(err, vectordb.ErrCollectionNotLoaded),
		errors.Is(err, vectordb.ErrCollectionExists),
		errors.Is(err, vectordb.ErrSchemaMismatch),
		errors.Is(err, vectordb.ErrMetricMismatch),
		errors.Is(err, vectordb.ErrUnknownField),
		errors.Is(err, vectordb.ErrDimensionMismatch),
		errors.Is(err, vectordb.ErrClientClosed),
		errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
			return true
		}
	}
	return false
}
