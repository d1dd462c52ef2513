package usecase

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"

	"github.com/naka-gawa/github-health/internal/domain"
)

// PageFunc issues one request for the page that starts at cursor.
type PageFunc[T any] func(ctx context.Context, cursor domain.Cursor) (*domain.Page[T], error)

// Pager drives cursor-based pagination over one GraphQL connection.
// A Pager can be iterated only once.
type Pager[T any] struct {
	target   string
	kind     domain.Kind
	fetch    PageFunc[T]
	keep     func(T) bool
	stop     func(last T) bool
	maxPages int
	consumed atomic.Bool
}

// PagerOption configures a Pager.
type PagerOption[T any] func(*Pager[T])

// WithFilter drops items for which keep returns false.
func WithFilter[T any](keep func(T) bool) PagerOption[T] {
	return func(p *Pager[T]) { p.keep = keep }
}

// WithStop ends pagination after a page whose last item satisfies stop.
func WithStop[T any](stop func(last T) bool) PagerOption[T] {
	return func(p *Pager[T]) { p.stop = stop }
}

// WithMaxPages caps the number of requests.
func WithMaxPages[T any](n int) PagerOption[T] {
	return func(p *Pager[T]) { p.maxPages = n }
}

// NewPager creates a Pager. target and kind identify the connection in errors.
func NewPager[T any](target string, kind domain.Kind, fetch PageFunc[T], opts ...PagerOption[T]) *Pager[T] {
	p := &Pager[T]{target: target, kind: kind, fetch: fetch}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pager[T]) fail(err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &domain.FetchError{Target: p.target, Kind: p.kind, Err: err}
}

// Pages yields the filtered pages in API order. Pages left empty by the
// filter are skipped. Iteration ends after the first error.
func (p *Pager[T]) Pages(ctx context.Context) iter.Seq2[*domain.Page[T], error] {
	return func(yield func(*domain.Page[T], error) bool) {
		if p.consumed.Swap(true) {
			yield(nil, p.fail(domain.ErrPagerConsumed))
			return
		}

		cursor := domain.Cursor{}
		for pageNum := 1; ; pageNum++ {
			if err := ctx.Err(); err != nil {
				yield(nil, p.fail(err))
				return
			}

			page, err := p.fetch(ctx, cursor)
			if err != nil {
				yield(nil, p.fail(err))
				return
			}

			raw := page.Items
			kept := raw
			if p.keep != nil {
				kept = make([]T, 0, len(raw))
				for _, item := range raw {
					if p.keep(item) {
						kept = append(kept, item)
					}
				}
			}

			more := page.Cursor.HasNextPage && page.Cursor.After != ""
			if more && p.stop != nil && len(raw) > 0 && p.stop(raw[len(raw)-1]) {
				more = false
			}
			if more && p.maxPages > 0 && pageNum >= p.maxPages {
				more = false
			}

			if len(kept) > 0 {
				out := &domain.Page[T]{
					Items:     kept,
					Cursor:    domain.Cursor{After: page.Cursor.After, HasNextPage: more},
					RateLimit: page.RateLimit,
				}
				if !yield(out, nil) {
					return
				}
			}
			if !more {
				return
			}
			if page.RateLimit.Exhausted() {
				yield(nil, p.fail(domain.ErrRateLimitExhausted))
				return
			}
			cursor = page.Cursor
		}
	}
}
