package domain

import "time"

// Cursor is the pagination position of one connection.
type Cursor struct {
	After       string
	HasNextPage bool
}

// RateLimit is the GraphQL quota reported alongside a response.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Cost      int       `json:"cost,omitempty"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// Exhausted reports whether another request of the same cost would be refused.
// A zero Limit means the quota is unknown and is never treated as exhausted.
func (r RateLimit) Exhausted() bool {
	if r.Limit == 0 {
		return false
	}
	cost := max(r.Cost, 1)
	return r.Remaining < cost
}

// Page is one decoded response of a paged connection.
type Page[T any] struct {
	Items     []T
	Cursor    Cursor
	RateLimit RateLimit
}

// Window restricts items to creation times in [After, Before).
// A zero bound is open.
type Window struct {
	After  time.Time
	Before time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.After.IsZero() && t.Before(w.After) {
		return false
	}
	if !w.Before.IsZero() && !t.Before(w.Before) {
		return false
	}
	return true
}

// Precedes reports whether t is earlier than the window's lower bound.
func (w Window) Precedes(t time.Time) bool {
	return !w.After.IsZero() && t.Before(w.After)
}
