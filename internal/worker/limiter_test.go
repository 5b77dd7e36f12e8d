package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(0, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
	for i := 0; i < 10; i++ {
		if !l2.state("example.com").bucket.Allow() {
			t.Fatalf("request %d: expected unlimited bucket for rps 0", i)
		}
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.WaitWithDelay(ctx, url, 0); err != nil {
		t.Errorf("first wait failed: %v", err)
	}
	if limiter.state("example.com").bucket.Allow() {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}
	if !limiter.state("other.com").bucket.Allow() {
		t.Errorf("expected allow for other host")
	}
}

// fakeClock records requested sleeps instead of blocking
type fakeClock struct {
	t      time.Time
	slept  []time.Duration
	cancel bool
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(ctx context.Context, d time.Duration) error {
	if c.cancel {
		return context.Canceled
	}
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
	return nil
}

// request simulates one request to rawURL that takes took to complete
func request(t *testing.T, l *Limiter, clock *fakeClock, rawURL string, gap, took time.Duration) {
	t.Helper()
	if err := l.WaitWithDelay(context.Background(), rawURL, gap); err != nil {
		t.Fatalf("WaitWithDelay(%s) failed: %v", rawURL, err)
	}
	clock.t = clock.t.Add(took)
	l.Done(rawURL)
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := NewLimiter(0, 1)
	limiter.now = clock.now
	limiter.sleep = clock.sleep
	gap := 2 * time.Second

	// First request to a host does not wait
	request(t, limiter, clock, "http://example.com/a", gap, 100*time.Millisecond)
	if len(clock.slept) != 0 {
		t.Fatalf("expected no sleep before first request, got %v", clock.slept)
	}

	// Part of the gap has already elapsed since the request finished
	clock.t = clock.t.Add(500 * time.Millisecond)
	request(t, limiter, clock, "http://example.com/b", gap, 5*time.Second)
	if len(clock.slept) != 1 || clock.slept[0] != 1500*time.Millisecond {
		t.Errorf("expected a single 1.5s sleep, got %v", clock.slept)
	}

	// A response slower than the gap still gets the whole gap afterwards
	request(t, limiter, clock, "http://example.com/c", gap, 0)
	if len(clock.slept) != 2 || clock.slept[1] != gap {
		t.Errorf("expected a full %v sleep after a slow response, got %v", gap, clock.slept)
	}

	// Other hosts are paced independently
	request(t, limiter, clock, "http://other.com/", gap, 0)
	if len(clock.slept) != 2 {
		t.Errorf("expected no sleep for a new host, got %v", clock.slept)
	}

	// The whole gap has elapsed
	clock.t = clock.t.Add(3 * time.Second)
	request(t, limiter, clock, "http://example.com/d", gap, 0)
	if len(clock.slept) != 2 {
		t.Errorf("expected no extra sleep, got %v", clock.slept)
	}
}

func TestLimiter_WaitWithDelay_Cancelled(t *testing.T) {
	clock := &fakeClock{t: time.Now(), cancel: true}
	limiter := NewLimiter(0, 1)
	limiter.now = clock.now
	limiter.sleep = clock.sleep

	request(t, limiter, clock, "http://example.com", time.Second, 0)
	err := limiter.WaitWithDelay(context.Background(), "http://example.com", time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("http://example.com/foo")
	if err != nil {
		t.Fatalf("extractHost failed: %v", err)
	}
	if host != "example.com" {
		t.Errorf("expected example.com, got %s", host)
	}

	if _, err := extractHost("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
