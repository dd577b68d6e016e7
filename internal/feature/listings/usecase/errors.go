package usecase

import "errors"

var (
	// ErrStore is wrapped by ListingRepository implementations when the
	// underlying storage fails. It is not recoverable within one sync.
	ErrStore = errors.New("listing store failure")
)

// MsgLoadFailed is the single user-facing message for any failed sync.
const MsgLoadFailed = "Couldn't load data"
