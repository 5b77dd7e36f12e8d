// Package worker paces outbound requests per host.
package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces requests per host: a token bucket plus a minimum gap between
// the end of one request and the start of the next to the same host
type Limiter struct {
	mu           sync.Mutex
	hosts        map[string]*hostState
	defaultRate  rate.Limit
	defaultBurst int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

type hostState struct {
	bucket *rate.Limiter
	last   time.Time // end of the previous request; zero until one finished
}

// NewLimiter creates a limiter. requestsPerSecond <= 0 leaves the token
// bucket unlimited so only the per-request gap applies.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Limiter{
		hosts:        make(map[string]*hostState),
		defaultRate:  limit,
		defaultBurst: burst,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

// WaitWithDelay waits for rate limit clearance and until at least gap has
// passed since the previous request to the same host finished (see Done).
// The first request to a host never waits for the gap.
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, gap time.Duration) error {
	host, err := extractHost(rawURL)
	if err != nil {
		return err
	}
	st := l.state(host)

	if err := st.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	l.mu.Lock()
	last := st.last
	l.mu.Unlock()

	if !last.IsZero() && gap > 0 {
		if remaining := gap - l.now().Sub(last); remaining > 0 {
			if err := l.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	return nil
}

// Done records that a request to rawURL has finished, successfully or not.
// The gap of the next WaitWithDelay to the same host counts from here.
func (l *Limiter) Done(rawURL string) {
	host, err := extractHost(rawURL)
	if err != nil {
		return
	}
	st := l.state(host)

	l.mu.Lock()
	st.last = l.now()
	l.mu.Unlock()
}

func (l *Limiter) state(host string) *hostState {
	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.hosts[host]
	if !ok {
		st = &hostState{bucket: rate.NewLimiter(l.defaultRate, l.defaultBurst)}
		l.hosts[host] = st
	}
	return st
}

func extractHost(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
