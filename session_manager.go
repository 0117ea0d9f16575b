package relay

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hako/durafmt"
	"nhooyr.io/websocket"
)

// handleClose classifies a WebSocket close frame via closeCodePolicy
// (spec.md §4.1) and acts on it: resume, reidentify, or give up.
//
// Grounded on the teacher's GatewayCloseEventCodes table and its single
// bool-driven branch in session.go's read loop, split here into the three
// outcomes SPEC_FULL.md requires.
func (s *Session) handleClose(code int, reason string) error {
	outcome, description := outcomeFor(code)

	switch outcome {
	case outcomeFatal:
		err := &FatalError{Code: code, Description: description}
		s.deliver(Disconnected{Err: err})
		return err

	case outcomeReidentify:
		return s.reconnectFresh()

	default:
		_ = reason
		return s.reconnect(true)
	}
}

// reconnect reopens the socket and either RESUMEs (resumable == true, and a
// session ID is on record) or IDENTIFYs fresh, retrying with exponential
// backoff and jitter up to reconnectMaxAttempts times (spec.md §4.1, P4).
func (s *Session) reconnect(resumable bool) error {
	s.mu.Lock()
	id := s.id
	s.mu.Unlock()

	if !resumable || id == "" {
		return s.reconnectFresh()
	}

	return s.reconnectWithRetry(&Resume{
		Token:     s.client.Authentication.Token,
		SessionID: id,
		Seq:       s.seq.Load(),
	})
}

// reconnectFresh discards any session ID and sequence number, then opens a
// brand-new connection and IDENTIFYs (spec.md §4.1 Reidentify outcome).
func (s *Session) reconnectFresh() error {
	s.mu.Lock()
	s.id = ""
	s.resumeGatewayURL = ""
	s.mu.Unlock()
	s.seq.Store(0)

	return s.reconnectWithRetry(nil)
}

func (s *Session) reconnectWithRetry(resume *Resume) error {
	var lastErr error

	for attempt := 1; attempt <= reconnectMaxAttempts; attempt++ {
		delay := reconnectDelay(attempt)

		logSession(Logger.Debug(), s.id).
			Str("backoff", durafmt.Parse(delay).LimitFirstN(2).String()).
			Int("attempt", attempt).
			Msg("waiting before reconnect attempt")

		select {
		case <-s.ctx.Done():
			return nil
		case <-time.After(delay):
		}

		if err := s.attemptReconnect(resume); err != nil {
			lastErr = err
			continue
		}

		return nil
	}

	return fmt.Errorf("relay: exhausted %d reconnect attempts: %w", reconnectMaxAttempts, lastErr)
}

// attemptReconnect resolves the endpoint to dial and re-runs the handshake.
// A resume prefers the resume_gateway_url Discord supplied on READY (spec.md
// §3, §4.1) over re-querying GET /gateway/bot, since that URL is the one
// Discord actually expects resumes to land on; a fresh identify has no such
// URL on record (or is deliberately discarding it) and always re-resolves.
func (s *Session) attemptReconnect(resume *Resume) error {
	s.mu.Lock()
	resumeURL := s.resumeGatewayURL
	s.mu.Unlock()

	endpoint := ""
	if resume != nil && resumeURL != "" {
		endpoint = resumeURL + "?v=" + gatewayVersion + "&encoding=" + gatewayEncoding
	} else {
		var err error
		endpoint, err = s.client.gatewayEndpoint(s.ctx)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.endpoint = endpoint
	oldConn := s.conn
	s.mu.Unlock()

	if oldConn != nil {
		_ = oldConn.Close(websocket.StatusNormalClosure, "relay: reconnecting")
	}

	if err := s.dial(s.ctx); err != nil {
		return err
	}

	return s.handshake(s.ctx, resume)
}

// drainOutbound forwards payloads queued by helpers such as UpdatePresence
// and RequestGuildMembers to the socket, applying the shared send budget
// (spec.md §6's "gateway outbound send budget").
func (s *Session) drainOutbound() error {
	for {
		select {
		case p := <-s.send:
			if err := s.writePayload(s.ctx, p.Op, "OUTBOUND", p.Data); err != nil {
				return err
			}

		case <-s.ctx.Done():
			return nil
		}
	}
}

// RequestGuildMembersAsync queues an Opcode 8 request for delivery on the
// Session's outbound channel, returning immediately (spec.md §6).
func (s *Session) RequestGuildMembersAsync(ctx context.Context, req RequestGuildMembers) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	select {
	case s.send <- GatewayPayload{Op: OpcodeRequestGuildMembers, Data: data}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return fmt.Errorf("relay: session closed")
	}
}

// UpdatePresenceAsync queues an Opcode 3 presence update.
func (s *Session) UpdatePresenceAsync(ctx context.Context, presence UpdatePresence) error {
	data, err := json.Marshal(presence)
	if err != nil {
		return err
	}

	select {
	case s.send <- GatewayPayload{Op: OpcodePresenceUpdate, Data: data}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return fmt.Errorf("relay: session closed")
	}
}
