package relay

import (
	"testing"
	"time"
)

func TestBucketConfirmHeaderTracksCurrentWindow(t *testing.T) {
	b := &Bucket{}

	reset := time.Now().Add(5 * time.Second)

	b.use(1)
	b.confirmHeader(1, RateLimitHeader{
		Limit:     5,
		Remaining: 4,
		Reset:     float64(reset.Unix()),
	})

	if b.Limit != 5 {
		t.Fatalf("Limit = %d, want 5", b.Limit)
	}

	if b.Remaining != 4 {
		t.Fatalf("Remaining = %d, want 4", b.Remaining)
	}
}

func TestBucketConfirmHeaderIgnoresStaleResponse(t *testing.T) {
	b := &Bucket{Limit: 5, Remaining: 2, Expiry: time.Now().Add(10 * time.Second)}

	staleReset := time.Now().Add(-time.Minute)

	b.use(1)
	b.confirmHeader(1, RateLimitHeader{
		Limit:     5,
		Remaining: 1,
		Reset:     float64(staleReset.Unix()),
	})

	// a response whose reset time is before the bucket's recorded expiry
	// applied to a previous window: the pending token is refunded rather
	// than the bucket's Remaining being overwritten with stale data.
	if b.Remaining != 2 {
		t.Fatalf("Remaining = %d, want 2 (refunded)", b.Remaining)
	}
}

func TestRateLimiterWaitDurationZeroWhenFresh(t *testing.T) {
	rl := NewRateLimiter()

	if d := rl.waitDuration("GET /channels/1/messages"); d != 0 {
		t.Fatalf("waitDuration = %v, want 0 for an unused route", d)
	}
}

func TestRateLimiterWaitDurationRespectsRouteExpiry(t *testing.T) {
	rl := NewRateLimiter()

	rl.lock()
	b := rl.bucket("GET /channels/1/messages")
	b.Remaining = 0
	b.Expiry = time.Now().Add(2 * time.Second)
	rl.unlock()

	d := rl.waitDuration("GET /channels/1/messages")
	if d <= 0 || d > 2*time.Second {
		t.Fatalf("waitDuration = %v, want in (0, 2s]", d)
	}
}

func TestRateLimiterGlobalBucketGatesEveryRoute(t *testing.T) {
	rl := NewRateLimiter()

	rl.lock()
	rl.global().Remaining = 0
	rl.global().Expiry = time.Now().Add(time.Second)
	rl.unlock()

	if d := rl.waitDuration("GET /guilds/1"); d <= 0 {
		t.Fatal("expected a wait when the global bucket is exhausted")
	}
}
