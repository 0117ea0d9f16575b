package relay

import (
	"math"
	"sync"
	"time"
)

// globalBucketRouteKey is the reserved route key for Discord's global REST
// rate limit, which applies across every route (spec.md §4.2).
const globalBucketRouteKey = "global"

const msPerSecond = 1000

// RateLimitHeader is the subset of a REST response's X-RateLimit-* headers
// this package tracks.
type RateLimitHeader struct {
	Limit     float64
	Remaining float64
	Reset     float64
	Bucket    string
	Global    bool
}

// Bucket is a Discord API rate limit bucket: either a per-route bucket keyed
// by the `X-RateLimit-Bucket` hash, or the single global bucket.
//
// Grounded directly on the teacher's wrapper/ratelimiter.go Bucket, including
// its Date/Expiry "epoch" comparison logic for deciding whether a response
// applies to the bucket's current, next, or a stale previous window.
type Bucket struct {
	ID        string
	Limit     int16
	Remaining int16
	Pending   int16

	// Date is only meaningful for the global bucket (spec.md §4.2's global
	// lockout, driven off the response Date header rather than a reset
	// header).
	Date   time.Time
	Expiry time.Time
}

func (b *Bucket) reset(expiry time.Time) {
	b.Expiry = expiry
	b.Remaining = b.Limit - b.Pending
}

func (b *Bucket) use(amount int16) {
	b.Remaining -= amount
	b.Pending += amount
}

// confirmDate reconciles the global bucket against a response's Date header.
func (b *Bucket) confirmDate(amount int16, date time.Time) {
	b.Pending -= amount

	switch {
	case b.Date.IsZero():
		b.Date = date
		b.Expiry = time.Now().Add(time.Second)

	case b.Date.Equal(date):

	case b.Date.Before(date):
		b.Date = date
		b.Expiry = time.Now().Add(time.Second)

	case b.Date.After(date):
		b.Remaining += amount
	}
}

// confirmHeader reconciles a per-route bucket against a response's
// X-RateLimit-* headers.
func (b *Bucket) confirmHeader(amount int16, header RateLimitHeader) {
	b.Pending -= amount

	whole, decimal := math.Modf(header.Reset)
	reset := time.Unix(int64(whole), 0).Add(time.Duration(decimal*msPerSecond+1) * time.Millisecond)

	if b.Expiry.IsZero() {
		b.Limit = int16(header.Limit)
		b.Remaining = int16(header.Remaining) - b.Pending
		b.Expiry = reset

		return
	}

	switch {
	case b.Expiry.Equal(reset):

	case b.Expiry.Before(reset):
		b.Limit = int16(header.Limit)
		b.Expiry = reset

	case b.Expiry.After(reset):
		b.Remaining += amount
	}
}

// RateLimiter tracks rate-limit buckets across REST routes plus the global
// bucket, and serializes the read-modify-write cycle (spec.md §4.2 P5:
// "no two requests may race on the same bucket's Remaining count").
//
// The teacher exposes this behind a RateLimiter interface so a caller can
// swap in a shared, cross-process implementation; this package keeps a
// single in-memory implementation (spec.md's Non-goals explicitly exclude
// "coordinating rate limits across multiple processes").
type RateLimiter struct {
	mu sync.Mutex

	routeToBucketID map[string]string
	buckets         map[string]*Bucket
}

// NewRateLimiter constructs an empty RateLimiter with a global bucket
// pre-seeded at Discord's documented default of 50 requests/second.
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		routeToBucketID: make(map[string]string),
		buckets:         make(map[string]*Bucket),
	}

	rl.buckets[globalBucketRouteKey] = &Bucket{ID: globalBucketRouteKey, Limit: 50, Remaining: 50}

	return rl
}

// lock serializes access to the limiter for the duration of one request's
// bucket read-modify-write cycle.
func (rl *RateLimiter) lock()   { rl.mu.Lock() }
func (rl *RateLimiter) unlock() { rl.mu.Unlock() }

func (rl *RateLimiter) setBucketID(routeKey, bucketID string) {
	rl.routeToBucketID[routeKey] = bucketID
}

func (rl *RateLimiter) bucketIDFor(routeKey string) string {
	return rl.routeToBucketID[routeKey]
}

// bucket gets (or lazily creates) the Bucket for a route key, following the
// route's previously observed bucket ID if one was recorded.
func (rl *RateLimiter) bucket(routeKey string) *Bucket {
	if id := rl.bucketIDFor(routeKey); id != "" {
		if b, ok := rl.buckets[id]; ok {
			return b
		}
	}

	b, ok := rl.buckets[routeKey]
	if !ok {
		b = &Bucket{ID: routeKey, Remaining: 1}
		rl.buckets[routeKey] = b
	}

	return b
}

// global returns the shared global bucket.
func (rl *RateLimiter) global() *Bucket {
	return rl.buckets[globalBucketRouteKey]
}

// waitDuration returns how long the caller must wait, if any, before a
// request on routeKey would be accepted by the tracked bucket state. An
// exhausted global bucket whose window has passed is refilled for a new
// one-second window.
func (rl *RateLimiter) waitDuration(routeKey string) time.Duration {
	now := time.Now()

	if g := rl.global(); g.Remaining <= 0 {
		if g.Expiry.After(now) {
			return g.Expiry.Sub(now)
		}

		g.reset(now.Add(time.Second))
	}

	b := rl.bucket(routeKey)
	if b.Remaining <= 0 && b.Expiry.After(now) {
		return b.Expiry.Sub(now)
	}

	return 0
}

// reserve records that one request is about to be sent on routeKey.
func (rl *RateLimiter) reserve(routeKey string) {
	rl.global().use(1)
	rl.bucket(routeKey).use(1)
}

// confirm reconciles bucket state with a completed response's headers.
func (rl *RateLimiter) confirm(routeKey string, header RateLimitHeader, date time.Time) {
	rl.global().confirmDate(1, date)

	b := rl.bucket(routeKey)
	if header.Bucket != "" {
		rl.setBucketID(routeKey, header.Bucket)
	}

	b.confirmHeader(1, header)
}
