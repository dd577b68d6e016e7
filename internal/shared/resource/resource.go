// Package resource defines the staged result type shared by the listing sync
// stream and the single-shot stock info operations.
package resource

// Kind tags which variant a Resource holds.
type Kind int

const (
	// KindLoading reports that work started (IsLoading=true) or stopped (IsLoading=false).
	KindLoading Kind = iota
	// KindSuccess carries data.
	KindSuccess
	// KindError carries a short human-readable message.
	KindError
)

// String returns the lower-case variant name. It doubles as the SSE event name.
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Resource is one observation of a query result: Loading, Success or Error.
// Only the fields belonging to Kind are meaningful.
type Resource[T any] struct {
	Kind      Kind
	IsLoading bool   // KindLoading
	Data      T      // KindSuccess
	Message   string // KindError
}

// Loading returns a loading stage.
func Loading[T any](active bool) Resource[T] {
	return Resource[T]{Kind: KindLoading, IsLoading: active}
}

// Success returns a success stage carrying data.
func Success[T any](data T) Resource[T] {
	return Resource[T]{Kind: KindSuccess, Data: data}
}

// Error returns an error stage carrying message.
func Error[T any](message string) Resource[T] {
	return Resource[T]{Kind: KindError, Message: message}
}

// IsSuccess reports whether r is a Success stage.
func (r Resource[T]) IsSuccess() bool { return r.Kind == KindSuccess }

// IsError reports whether r is an Error stage.
func (r Resource[T]) IsError() bool { return r.Kind == KindError }

// Terminal reports whether r ends a stream: an Error or Loading(false).
func (r Resource[T]) Terminal() bool {
	return r.Kind == KindError || (r.Kind == KindLoading && !r.IsLoading)
}
