package engine

import "errors"

// Error kinds. Per-entity errors are wrapped so that errors.Is matches both
// the kind and the underlying cause.
var (
	ErrDiscovery           = errors.New("discovery failure")
	ErrFetch               = errors.New("fetch failure")
	ErrInvalidStatsPayload = errors.New("invalid stats payload")
	ErrRender              = errors.New("render failure")
)

// EntityError records a failure for one entity during one cycle.
type EntityError struct {
	Entity string // namespace, or "<ns> - IX: <index>" for an index
	Err    error
}

func (e EntityError) Error() string {
	return e.Entity + ": " + e.Err.Error()
}

func (e EntityError) Unwrap() error {
	return e.Err
}
