package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-party service errors
var (
	ErrUpstreamService = errors.New("upstream service failed")
)

// NewUpstreamError wraps a failure from an external collaborator (the chat
// completion endpoint). The upstream message is surfaced in the response body.
func NewUpstreamError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrUpstreamService,
		Details:    fmt.Sprintf("%s: %v", service, cause),
		Cause:      cause,
	}
}
