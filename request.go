package relay

import (
	"context"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/xid"
	"github.com/valyala/fasthttp"
)

// HTTP header names used by the rate limit bookkeeping below.
var (
	headerAuthorization      = []byte("Authorization")
	headerUserAgent          = []byte("User-Agent")
	headerContentType        = []byte("Content-Type")
	headerDate               = []byte("Date")
	headerRateLimitLimit     = []byte("X-RateLimit-Limit")
	headerRateLimitRemaining = []byte("X-RateLimit-Remaining")
	headerRateLimitReset     = []byte("X-RateLimit-Reset")
	headerRateLimitBucket    = []byte("X-RateLimit-Bucket")
	headerRetryAfter         = []byte("Retry-After")
)

const (
	contentTypeJSON = "application/json"
)

// rateLimitResponse is Discord's body for a 429 response.
type rateLimitResponse struct {
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
	Global     bool    `json:"global"`
}

// request performs one logical REST call: it waits out any known rate limit
// for routeKey, sends the request via fasthttp, updates the bucket table
// from the response headers, and retries 429/502 responses up to
// Config.MaxRetries times (spec.md §4.2, P5, P6).
//
// Grounded on the teacher's wrapper/request.go SendRequest, restructured from
// its goto-based state machine into a bounded retry loop — the underlying
// algorithm (peek rate limit headers before consuming the body, confirm
// global before confirming the route bucket, branch on global vs. route 429)
// is unchanged.
func (c *Client) request(ctx context.Context, method, routeKey, uri string, body []byte, dst interface{}) error {
	return c.requestRaw(ctx, method, routeKey, uri, contentTypeJSON, body, dst)
}

// requestRaw is request with an explicit request Content-Type, needed for
// multipart uploads where it isn't application/json.
func (c *Client) requestRaw(ctx context.Context, method, routeKey, uri, contentType string, body []byte, dst interface{}) error {
	correlationID := xid.New().String()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte(contentType))
	req.Header.SetBytesKV(headerAuthorization, []byte(c.Authentication.Header))
	req.Header.SetBytesKV(headerUserAgent, []byte(c.Config.UserAgent))
	req.SetRequestURI(uri)

	if body != nil {
		req.SetBodyRaw(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	for attempt := 0; ; attempt++ {
		if wait := c.waitForRoute(ctx, routeKey); wait != nil {
			return wait
		}

		logRequest(Logger.Debug(), correlationID, routeKey, uri).Msg("sending request")

		resp.Reset()
		if err := c.Config.HTTPClient.DoTimeout(req, resp, c.Config.RequestTimeout); err != nil {
			return newTransportError("request", err)
		}

		header := peekRateLimitHeader(resp)
		date := peekDate(resp)

		c.limiter.lock()
		c.limiter.confirm(routeKey, header, date)
		c.limiter.unlock()

		switch resp.StatusCode() {
		case fasthttp.StatusOK, fasthttp.StatusCreated, fasthttp.StatusNoContent:
			if dst == nil || resp.StatusCode() == fasthttp.StatusNoContent {
				return nil
			}

			if err := json.Unmarshal(resp.Body(), dst); err != nil {
				return newSerdeError(routeKey, resp.Body(), err)
			}

			return nil

		case fasthttp.StatusTooManyRequests:
			if attempt >= c.Config.MaxRetries {
				return newAPIError(resp.StatusCode(), copyBytes(resp.Body()), routeKey)
			}

			retryAfter := parseRetryAfter(resp)

			c.limiter.lock()
			if header.Global {
				c.limiter.global().Expiry = time.Now().Add(retryAfter)
				c.limiter.global().Remaining = 0
			} else {
				b := c.limiter.bucket(routeKey)
				b.Expiry = time.Now().Add(retryAfter)
				b.Remaining = 0
			}
			c.limiter.unlock()

			continue

		case fasthttp.StatusBadGateway:
			if attempt >= c.Config.MaxRetries {
				return newAPIError(resp.StatusCode(), copyBytes(resp.Body()), routeKey)
			}

			continue

		default:
			return newAPIError(resp.StatusCode(), copyBytes(resp.Body()), routeKey)
		}
	}
}

// waitForRoute blocks, respecting ctx, until the rate limiter reports no
// known wait for routeKey. It returns a non-nil error only if ctx expires
// first.
func (c *Client) waitForRoute(ctx context.Context, routeKey string) error {
	for {
		c.limiter.lock()
		wait := c.limiter.waitDuration(routeKey)
		if wait <= 0 {
			c.limiter.reserve(routeKey)
		}
		c.limiter.unlock()

		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

func peekRateLimitHeader(r *fasthttp.Response) RateLimitHeader {
	limit, _ := strconv.ParseFloat(string(r.Header.PeekBytes(headerRateLimitLimit)), 64)
	remaining, _ := strconv.ParseFloat(string(r.Header.PeekBytes(headerRateLimitRemaining)), 64)
	reset, _ := strconv.ParseFloat(string(r.Header.PeekBytes(headerRateLimitReset)), 64)
	global, _ := strconv.ParseBool(string(r.Header.Peek("X-RateLimit-Global")))

	return RateLimitHeader{
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
		Bucket:    string(r.Header.PeekBytes(headerRateLimitBucket)),
		Global:    global,
	}
}

func peekDate(r *fasthttp.Response) time.Time {
	date, err := time.Parse(time.RFC1123, string(r.Header.PeekBytes(headerDate)))
	if err != nil {
		return time.Now()
	}

	return date
}

// parseRetryAfter prefers Discord's JSON retry_after body field; if that
// can't be parsed it falls back to the Retry-After header, matching the
// teacher's distinction between a Discord 429 and a Cloudflare-level ban.
func parseRetryAfter(r *fasthttp.Response) time.Duration {
	var data rateLimitResponse
	if err := json.Unmarshal(r.Body(), &data); err == nil && data.RetryAfter > 0 {
		return time.Duration(data.RetryAfter * float64(time.Second))
	}

	if seconds, err := strconv.ParseInt(string(r.Header.PeekBytes(headerRetryAfter)), 10, 64); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return time.Second
}

func copyBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
