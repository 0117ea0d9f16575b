package relay

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error Messages.
const (
	errMarshal     = "an error occurred marshalling %v: %w"
	errRequest     = "an error occurred sending %v: %w"
	errQueryString = "an error occurred creating a URL query string for %v: %w"
	errRedirect    = "an error occurred redirecting from %v due to a missing Location header"
	errUnmarshal   = "an error occurred unmarshalling %v: %w"
)

// ApiError represents a non-2xx response from the REST API that is not
// retried further (any status other than 429/502, or a 429/502 once the
// retry budget is spent): a caller-surfaced error carrying the status, the
// response body, and the route key that produced it.
//
// Wrapped with github.com/pkg/errors so the caller's error log carries an
// allocation-site stack trace — valuable here because, unlike the internally
// retried categories (rate limits, transient reconnects), this is the one
// error a caller actually has to act on.
type ApiError struct {
	Status   int
	Body     []byte
	RouteKey string
	err      error
}

func newAPIError(status int, body []byte, routeKey string) error {
	return errors.WithStack(&ApiError{
		Status:   status,
		Body:     body,
		RouteKey: routeKey,
	})
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("relay: %s: status %d: %s", e.RouteKey, e.Status, string(e.Body))
}

func (e *ApiError) Unwrap() error { return e.err }

// SerdeError represents a JSON decode failure on an otherwise-successful
// response (spec.md §4.2 category 6). Body is truncated to 200 bytes to keep
// the error small while preserving enough context for diagnosis.
type SerdeError struct {
	RouteKey string
	Body     []byte
	Err      error
}

func newSerdeError(routeKey string, body []byte, err error) error {
	const maxDiagnosticBody = 200

	truncated := body
	if len(truncated) > maxDiagnosticBody {
		truncated = truncated[:maxDiagnosticBody]
	}

	return errors.WithStack(&SerdeError{
		RouteKey: routeKey,
		Body:     truncated,
		Err:      err,
	})
}

func (e *SerdeError) Error() string {
	return fmt.Sprintf("relay: %s: decode error: %v: %s", e.RouteKey, e.Err, string(e.Body))
}

func (e *SerdeError) Unwrap() error { return e.Err }

// TransportError represents a failure at the HTTP or WebSocket transport
// layer itself (dial failure, read/write failure, timeout) rather than a
// protocol-level response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("relay: transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func newTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// DisconnectError wraps an error encountered while tearing down a Session.
type DisconnectError struct {
	SessionID string
	Action    error
	Err       error
}

func (e *DisconnectError) Error() string {
	if e.Action != nil {
		return fmt.Sprintf("relay: session %q: disconnect error %v while handling %v", e.SessionID, e.Err, e.Action)
	}

	return fmt.Sprintf("relay: session %q: disconnect error %v", e.SessionID, e.Err)
}

func (e *DisconnectError) Unwrap() error { return e.Err }

// FatalError is returned by Connect when the Discord gateway closes with a
// close code that the policy in opcodes.go classifies as non-recoverable
// (spec.md §4.1 close-code table, Fatal row). The surrounding process logic
// is expected to stop the bot rather than reconnect (spec.md §7 category 4).
type FatalError struct {
	Code        int
	Description string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("relay: fatal gateway close code %d: %s", e.Code, e.Description)
}
