package usecase

import (
	"errors"

	"stock_market/internal/shared/remote"
)

// User-facing failure messages of the single-shot operations.
const (
	MsgUnexpected = "Unexpected error occurred"
	MsgConnection = "Connection issue"
	MsgUnknown    = "An unknown error occurred"
)

// classify maps a transport failure to a short human-readable message.
// The result is never empty.
func classify(err error) string {
	var httpErr *remote.HTTPError
	switch {
	case errors.As(err, &httpErr):
		if httpErr.Message == "" {
			return MsgUnexpected
		}
		return httpErr.Message
	case errors.Is(err, remote.ErrConnection):
		return MsgConnection
	default:
		return MsgUnknown
	}
}
