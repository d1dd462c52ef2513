package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is a network-level failure, possibly transient.
	ErrTransport = errors.New("transport failure")
	// ErrRateLimitExhausted means the API quota ran out for this run.
	ErrRateLimitExhausted = errors.New("rate limit exhausted")
	// ErrAuth means the credentials were rejected.
	ErrAuth = errors.New("authentication failure")
	// ErrMalformedResponse means the API returned data that cannot be interpreted.
	ErrMalformedResponse = errors.New("malformed response")

	ErrAccumulatorFrozen = errors.New("accumulator is frozen")
	ErrPagerConsumed     = errors.New("pager already consumed")
)

// FetchError ties a failure to the repository (or search target) and
// collection that was being fetched.
type FetchError struct {
	Target string
	Kind   Kind
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s for %s: %v", e.Kind, e.Target, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorKind names the category of err for diagnostics.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrRateLimitExhausted):
		return "rate limit exhausted"
	case errors.Is(err, ErrAuth):
		return "authentication failure"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed response"
	case errors.Is(err, ErrTransport):
		return "network failure"
	default:
		return "error"
	}
}
