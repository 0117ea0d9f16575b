package relay

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"
)

func TestParseRetryAfterPrefersBodyOverHeader(t *testing.T) {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	resp.SetBody([]byte(`{"message":"slow down","retry_after":1.5,"global":false}`))
	resp.Header.Set("Retry-After", "9")

	got := parseRetryAfter(resp)
	want := 1500 * time.Millisecond

	if got != want {
		t.Fatalf("parseRetryAfter = %v, want %v", got, want)
	}
}

func TestParseRetryAfterFallsBackToHeader(t *testing.T) {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	resp.SetBody([]byte(`not json`))
	resp.Header.Set("Retry-After", "3")

	got := parseRetryAfter(resp)
	want := 3 * time.Second

	if got != want {
		t.Fatalf("parseRetryAfter = %v, want %v", got, want)
	}
}

func TestPeekRateLimitHeaderParsesGlobalFlag(t *testing.T) {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	resp.Header.Set("X-RateLimit-Limit", "5")
	resp.Header.Set("X-RateLimit-Remaining", "4")
	resp.Header.Set("X-RateLimit-Reset", "1609459200.123")
	resp.Header.Set("X-RateLimit-Bucket", "abc")
	resp.Header.Set("X-RateLimit-Global", "true")

	h := peekRateLimitHeader(resp)

	if h.Limit != 5 || h.Remaining != 4 || h.Bucket != "abc" || !h.Global {
		t.Fatalf("unexpected header parse: %+v", h)
	}
}
