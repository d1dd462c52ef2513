package gateway

import (
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/naka-gawa/github-health/internal/domain"
)

const defaultServerRetries = 3

// statusTransport turns HTTP statuses the core cares about into typed errors
// and retries 5xx responses and network failures with exponential backoff.
type statusTransport struct {
	base       http.RoundTripper
	retries    uint64
	newBackOff func() backoff.BackOff
}

func newStatusTransport(base http.RoundTripper, retries uint64, newBackOff func() backoff.BackOff) *statusTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if newBackOff == nil {
		newBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}
	return &statusTransport{base: base, retries: retries, newBackOff: newBackOff}
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	attempt := 0
	operation := func() (*http.Response, error) {
		r := req
		if attempt > 0 && req.Body != nil && req.Body != http.NoBody {
			if req.GetBody == nil {
				return nil, backoff.Permanent(fmt.Errorf("%w: request body cannot be replayed", domain.ErrTransport))
			}
			body, err := req.GetBody()
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("%w: %w", domain.ErrTransport, err))
			}
			r = req.Clone(ctx)
			r.Body = body
		}
		attempt++

		resp, err := t.base.RoundTrip(r)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			discard(resp)
			return nil, backoff.Permanent(fmt.Errorf("%w: server returned %s", domain.ErrAuth, resp.Status))
		case isRateLimited(resp):
			discard(resp)
			return nil, backoff.Permanent(fmt.Errorf("%w: server returned %s (resets at %s)",
				domain.ErrRateLimitExhausted, resp.Status, resp.Header.Get("X-RateLimit-Reset")))
		case resp.StatusCode >= http.StatusInternalServerError:
			discard(resp)
			return nil, fmt.Errorf("%w: server returned %s", domain.ErrTransport, resp.Status)
		}
		return resp, nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(t.newBackOff(), t.retries), ctx)
	return backoff.RetryWithData(operation, b)
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	return resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.Header.Get("Retry-After") != ""
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
