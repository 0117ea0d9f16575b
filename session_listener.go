package relay

import (
	"errors"

	json "github.com/goccy/go-json"
	"nhooyr.io/websocket"
)

// listen is the Session's read loop: one frame in, one decision out. It
// runs for the lifetime of the Session, not just one connection — a close
// frame that resumes or reidentifies, or a transport read error (resumed),
// reconnects the underlying socket in place (s.conn is swapped by
// handleClose/reconnect) and the loop keeps
// reading from it, rather than ending the goroutine on the first
// disconnect (spec.md §1's "survives transient failures by resuming").
//
// Grounded on the teacher's session_listener.go onPayload switch, restructured
// so dispatch events are converted (via eventFromDispatch) and pushed onto
// the bounded Events channel instead of fanned out to a handler registry.
func (s *Session) listen() error {
	for {
		p := getPayload()

		err := s.conn.ReadJSON(s.ctx, p)
		if err != nil {
			putPayload(p)

			var closeErr websocket.CloseError
			if errors.As(err, &closeErr) {
				if cerr := s.handleClose(int(closeErr.Code), closeErr.Reason); cerr != nil {
					return cerr
				}

				continue
			}

			select {
			case <-s.ctx.Done():
				return nil
			default:
			}

			// a transport read error is transient: resume on a new connection.
			if rerr := s.reconnect(true); rerr != nil {
				return rerr
			}

			continue
		}

		op, seq, name, data := p.Op, p.SequenceNumber, p.EventName, p.Data

		if seq != nil {
			s.seq.Store(*seq)
		}

		putPayload(p)

		if err := s.handleFrame(op, name, data); err != nil {
			return err
		}
	}
}

func (s *Session) handleFrame(op int, name string, data json.RawMessage) error {
	switch op {
	case OpcodeDispatch:
		if name == dispatchReady {
			var ready Ready
			if err := json.Unmarshal(data, &ready); err == nil {
				s.mu.Lock()
				s.id = ready.SessionID
				s.resumeGatewayURL = ready.ResumeGatewayURL
				s.mu.Unlock()
			}
		}

		event := eventFromDispatch(name, op, data)

		if s.client.Config.Debug {
			if u, ok := event.(Unknown); ok {
				Logger.Debug().Msg(dumpUnknown(u))
			}
		}

		s.deliver(event)

	case OpcodeHeartbeat:
		s.onHeartbeatRequest()

	case OpcodeHeartbeatACK:
		s.onHeartbeatAck()

	case OpcodeReconnect:
		s.deliver(Reconnecting{})
		return s.reconnect(true)

	case OpcodeInvalidSession:
		var resumable bool
		_ = json.Unmarshal(data, &resumable)

		s.deliver(InvalidSession{Resumable: resumable})

		return s.reconnect(resumable)

	default:
		s.deliver(Unknown{Name: name, Op: op, Raw: data})
	}

	return nil
}

// deliver pushes an Event to the bounded consumer channel. When the channel
// is full it blocks until the consumer makes room, so a slow consumer
// back-pressures the read loop; it gives up only when the Session's context
// is canceled.
func (s *Session) deliver(e Event) {
	select {
	case s.events <- e:
	case <-s.ctx.Done():
	}
}
