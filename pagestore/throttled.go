package pagestore

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled wraps a Store with a rate limit on Open.
//
// The planner may cost the same index path many times while comparing plans;
// against a remote backend every Open is a network round trip. Throttled
// bounds that traffic without changing behavior; callers just wait.
type Throttled struct {
	inner   Store
	limiter *rate.Limiter
}

// NewThrottled wraps inner with a limit of opensPerSec opens per second and
// the given burst. A non-positive opensPerSec leaves the store unthrottled.
func NewThrottled(inner Store, opensPerSec float64, burst int) *Throttled {
	var limiter *rate.Limiter
	if opensPerSec > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opensPerSec), burst)
	}
	return &Throttled{inner: inner, limiter: limiter}
}

// Open waits for limiter capacity, then opens the page on the inner store.
func (s *Throttled) Open(ctx context.Context, name string) (Page, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return s.inner.Open(ctx, name)
}

var _ Store = (*Throttled)(nil)
