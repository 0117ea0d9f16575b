package relay

import (
	"fmt"
	"math/rand"
	"time"
)

// randFloat returns a pseudo-random value in [0,1), used to jitter the
// first heartbeat the same way Discord's docs and the teacher's
// session_heartbeat.go require.
func randFloat() float64 {
	return rand.Float64()
}

// pulse queues an Opcode 1 Heartbeat after heartbeat_interval * jitter (a
// random value in [0,1)) and then once per full interval thereafter, exactly
// as Discord's docs require and as the teacher's session_heartbeat.go does.
func (s *Session) pulse() error {
	s.mu.Lock()
	interval := s.heartbeatInterval
	s.mu.Unlock()

	jitter := time.Duration(float64(interval) * randFloat())

	timer := time.NewTimer(jitter)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.queueHeartbeat()
			timer.Reset(interval)

		case <-s.ctx.Done():
			return nil
		}
	}
}

func (s *Session) queueHeartbeat() {
	seq := s.seq.Load()

	select {
	case s.heartbeatSend <- Heartbeat{SequenceNumber: &seq}:
	default:
		// a heartbeat is already queued; this one is dropped and the queued
		// one is sent with the sequence number it captured when queued.
	}
}

// beat drains the heartbeat queue and actually writes Opcode 1 frames,
// modeled on the teacher's session_heartbeat.go beat(). If the previous
// heartbeat was never acknowledged it refuses to send and returns an error,
// which ends the whole Session (a Disconnected event follows); it does not
// reconnect.
func (s *Session) beat() error {
	first := true

	for {
		select {
		case hb := <-s.heartbeatSend:
			if !first && s.heartbeatAcks.Load() == 0 {
				return fmt.Errorf("relay: no HeartbeatACK received since last heartbeat")
			}
			first = false

			if err := s.writePayload(s.ctx, OpcodeHeartbeat, "HEARTBEAT", hb); err != nil {
				return err
			}

			s.heartbeatAcks.Store(0)

		case <-s.ctx.Done():
			return nil
		}
	}
}

// onHeartbeatAck records that Discord acknowledged the last Heartbeat.
func (s *Session) onHeartbeatAck() {
	s.heartbeatAcks.Inc()

	select {
	case s.events <- HeartbeatAck{}:
	default:
	}
}

// onHeartbeatRequest answers Discord's out-of-cycle Opcode 1 request
// immediately, without waiting out the remainder of the current interval.
// Not forwarded to the consumer (spec.md §4.1: a heartbeat request is
// transport housekeeping, not something a consumer reacts to).
func (s *Session) onHeartbeatRequest() {
	s.queueHeartbeat()
}
