package relay

import (
	"sync"
	"time"
)

// sendBudgetWindow and sendBudgetLimit implement Discord's documented
// gateway outbound limit: at most 120 sends per rolling 60-second window,
// shared across every opcode a session emits (heartbeats, identify/resume,
// presence and voice-state updates, guild-member requests).
//
// Grounded on the Rust original's SendRateLimiter (original_source/src/
// gateway.rs), which tracks a deque of send timestamps and evicts entries
// older than the window on every check; reimplemented here with a fixed ring
// buffer under a mutex rather than a growable deque, since the limit itself
// bounds the buffer size.
const (
	sendBudgetWindow = 60 * time.Second
	sendBudgetLimit  = 120
)

// sendBudget is a sliding-window rate limiter for one session's outbound
// gateway frames.
type sendBudget struct {
	mu      sync.Mutex
	sent    [sendBudgetLimit]time.Time
	next    int
	filled  int
	nowFunc func() time.Time
}

func newSendBudget() *sendBudget {
	return &sendBudget{nowFunc: time.Now}
}

// wait blocks until sending a frame would not exceed the 120/60s budget,
// then records the send. It returns immediately if the oldest tracked send
// has already aged out of the window.
func (b *sendBudget) wait() {
	for {
		b.mu.Lock()
		now := b.nowFunc()

		if b.filled < sendBudgetLimit {
			b.sent[b.next] = now
			b.next = (b.next + 1) % sendBudgetLimit
			b.filled++
			b.mu.Unlock()
			return
		}

		oldest := b.sent[b.next]
		elapsed := now.Sub(oldest)

		if elapsed >= sendBudgetWindow {
			b.sent[b.next] = now
			b.next = (b.next + 1) % sendBudgetLimit
			b.mu.Unlock()
			return
		}

		wait := sendBudgetWindow - elapsed
		b.mu.Unlock()
		time.Sleep(wait)
	}
}
