package multimodal

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/multimodal-search/v1/vectordb"
)

func TestInfraErrorClassification(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), true},
		{"wrapped deadline", fmt.Errorf("[Qdrant] search failed: %w", status.Error(codes.DeadlineExceeded, "slow")), true},
		{"resource exhausted", status.Error(codes.ResourceExhausted, "busy"), true},
		{"context deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"context canceled", context.Canceled, false},
		{"not found", fmt.Errorf("x: %w", vectordb.ErrCollectionNotFound), false},
		{"not loaded", vectordb.ErrCollectionNotLoaded, false},
		{"schema mismatch", vectordb.ErrSchemaMismatch, false},
		{"invalid argument", status.Error(codes.InvalidArgument, "bad vector"), false},
		{"plain", errors.New("something"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := infraError("search", tc.err)
			assert.Equal(t, KindInfrastructure, KindOf(err))
			assert.Equal(t, tc.retryable, IsRetryable(err))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestTypedErrorsAreNotRewrapped(t *testing.T) {
	v := validationError("insert", FieldDescription, ErrMissingField)
	assert.Same(t, v, infraError("insert", v))
	assert.Same(t, v, UpstreamError("embed", v))
	assert.Nil(t, infraError("x", nil))
	assert.Nil(t, UpstreamError("x", nil))
}

func TestErrorMessage(t *testing.T) {
	err := validationError("insert", FieldImageURL, ErrMissingField)
	assert.Equal(t, "multimodal validation: insert: image_url: required field is missing", err.Error())

	up := UpstreamError("embed_text", errors.New("http 503"))
	assert.Equal(t, KindUpstream, KindOf(up))
	assert.Equal(t, "multimodal upstream: embed_text: http 503", up.Error())

	assert.Equal(t, KindUnknown, KindOf(errors.New("foreign")))
	assert.False(t, IsRetryable(errors.New("foreign")))
	assert.Equal(t, "unknown", KindUnknown.String())
}
