package node

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Aleph-Alpha/multimodal-search/v1/multimodal"
)

// Response is the envelope every node returns. Exactly one of Data and Error
// is set.
type Response struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *Error         `json:"error,omitempty"`
}

// Error describes a failed node invocation.
type Error struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Kind    string `json:"kind"`
}

// Success wraps data in a successful response.
func Success(data map[string]any) Response {
	return Response{Success: true, Data: data}
}

// Failure converts err into a failed response for the named node. The code
// follows the error kind: validation 400, upstream 502, retryable
// infrastructure 503, anything else 500.
func Failure(name string, err error) Response {
	kind := multimodal.KindOf(err)
	return Response{
		Success: false,
		Error: &Error{
			Code:    statusCode(err),
			Name:    name,
			Message: err.Error(),
			Stack:   stackOf(err),
			Kind:    kind.String(),
		},
	}
}

func statusCode(err error) int {
	switch multimodal.KindOf(err) {
	case multimodal.KindValidation:
		return http.StatusBadRequest
	case multimodal.KindUpstream:
		return http.StatusBadGateway
	case multimodal.KindInfrastructure:
		if multimodal.IsRetryable(err) {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackOf renders the first stack recorded on err, or captures one here.
func stackOf(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		return fmt.Sprintf("%+v", st.StackTrace())
	}
	return fmt.Sprintf("%+v", errors.WithStack(err).(stackTracer).StackTrace())
}
