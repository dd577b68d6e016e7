// Package remote defines the transport error taxonomy shared by remote data
// source clients and the usecases that classify their failures.
package remote

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrConnection is wrapped by errors raised before any response was received
// (DNS, dial, TLS, timeout, cancelled request).
var ErrConnection = errors.New("remote: connection failed")

// HTTPError reports a protocol-level failure: a non-2xx status or an error
// payload returned with a 2xx status.
type HTTPError struct {
	StatusCode int
	Message    string // human-readable, may be empty
}

// NewHTTPError builds an HTTPError whose message reads like "HTTP 404 Not Found".
func NewHTTPError(statusCode int) *HTTPError {
	msg := strings.TrimSpace(fmt.Sprintf("HTTP %d %s", statusCode, http.StatusText(statusCode)))
	return &HTTPError{StatusCode: statusCode, Message: msg}
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: http %d", e.StatusCode)
	}
	return "remote: " + e.Message
}
