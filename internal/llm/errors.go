package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("completion request failed")

	// ErrTimeout indicates the call exceeded the configured timeout.
	ErrTimeout = errors.New("completion request timed out")

	// ErrInvalidResponse indicates a 2xx response whose body did not carry
	// choices[0].message.content.
	ErrInvalidResponse = errors.New("invalid completion response")
)

// HTTPError is returned when the endpoint answers with a non-2xx status.
// Body holds the raw response body for diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("completion endpoint returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
