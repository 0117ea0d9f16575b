package relay

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"nhooyr.io/websocket"

	"github.com/corewired/relay/internal/socket"
)

const (
	gatewayVersion  = "10"
	gatewayEncoding = "json"

	// maxIdentifyLargeThreshold is Discord's documented ceiling on the
	// large_threshold field of Identify.
	maxIdentifyLargeThreshold = 250

	// eventQueueCapacity and sendQueueCapacity bound the channels a Session
	// exposes to its consumer. A full event queue blocks the read loop until
	// the consumer drains it or the Session is canceled.
	eventQueueCapacity = 256
	sendQueueCapacity  = 64

	// reconnectBaseDelay, reconnectMaxDelay and reconnectMaxAttempts bound
	// the exponential-backoff-with-jitter reconnect policy (spec.md §4.1,
	// P4): capped at 60s, abandoned after 8 consecutive failures.
	reconnectBaseDelay   = 1 * time.Second
	reconnectMaxDelay    = 60 * time.Second
	reconnectMaxAttempts = 8
)

// sessionState names the gateway connection's position in the state machine
// described by spec.md §4.1.
type sessionState int

const (
	stateConnecting sessionState = iota
	stateAwaitingHello
	stateIdentifying
	stateRunning
	stateDisconnected
)

// Session is one live (or reconnecting) Discord Gateway connection. It is
// returned by Client.Connect and exposes exactly two channels to the
// consumer: Events (inbound, bounded, typed) and the internal send queue
// that higher-level helpers like UpdatePresence write to — there is no
// handler registry (spec.md §9; SPEC_FULL.md §REDESIGN).
type Session struct {
	mu sync.Mutex

	id               string
	endpoint         string
	resumeGatewayURL string
	state            sessionState

	// seq and heartbeatAcks are read from the listen goroutine and the
	// heartbeat goroutine concurrently; go.uber.org/atomic's typed wrappers
	// keep those two counters lock-free the way the teacher's
	// session_heartbeat.go uses sync/atomic for its ack counter, while
	// everything else on Session still goes through mu.
	seq           atomic.Int64
	heartbeatAcks atomic.Int32

	conn *socket.Conn

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	heartbeatInterval time.Duration
	heartbeatSend     chan Heartbeat

	events chan Event
	send   chan GatewayPayload

	budget *sendBudget

	client *Client
}

// Events returns the Session's inbound event channel. It is closed once the
// Session's goroutines have fully exited; a final Disconnected event is
// queued just before the close if the channel has room for it, and is
// dropped otherwise.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Connect opens a new gateway connection for bot, identifying fresh.
// Grounded on the teacher's Session.Connect / (*Session).connect
// (wrapper/session.go), restructured around context cancellation plus
// errgroup the same way wrapper/session_manager.go does, but driving a
// bounded Event channel instead of registry callbacks.
func (c *Client) Connect(ctx context.Context) (*Session, error) {
	endpoint, err := c.gatewayEndpoint(ctx)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(sctx)

	s := &Session{
		endpoint:      endpoint,
		ctx:           gctx,
		cancel:        cancel,
		group:         group,
		heartbeatSend: make(chan Heartbeat, 1),
		events:        make(chan Event, eventQueueCapacity),
		send:          make(chan GatewayPayload, sendQueueCapacity),
		budget:        newSendBudget(),
		client:        c,
	}

	if err := s.dial(gctx); err != nil {
		cancel()
		return nil, err
	}

	if err := s.handshake(gctx, nil); err != nil {
		cancel()
		return nil, err
	}

	s.spawn()

	return s, nil
}

// gatewayEndpoint asks Discord for a gateway URL, preferring the
// bot-specific GET /gateway/bot endpoint (which also reports recommended
// shard count and session-start-limit remaining), falling back to the
// unauthenticated GET /gateway if that fails — this is the supplemented
// GetGatewayBot-aware connect flow the teacher's plain GetGateway lacked.
func (c *Client) gatewayEndpoint(ctx context.Context) (string, error) {
	if gb, err := c.GetGatewayBot(ctx); err == nil {
		return gb.URL + "?v=" + gatewayVersion + "&encoding=" + gatewayEncoding, nil
	}

	g, err := c.GetGateway(ctx)
	if err != nil {
		return "", fmt.Errorf("relay: resolving gateway endpoint: %w", err)
	}

	return g.URL + "?v=" + gatewayVersion + "&encoding=" + gatewayEncoding, nil
}

func (s *Session) dial(ctx context.Context) error {
	conn, err := socket.Dial(ctx, s.endpoint)
	if err != nil {
		return newTransportError("dial", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.state = stateAwaitingHello
	s.mu.Unlock()

	return nil
}

// handshake performs HELLO -> IDENTIFY (or RESUME, if resume is non-nil).
// On Connect it runs synchronously before any goroutines are spawned,
// matching the teacher's ordering in wrapper/session.go: read Hello first,
// only then start the heartbeat and listen loops. attemptReconnect reuses it
// on a new connection while those goroutines keep running.
func (s *Session) handshake(ctx context.Context, resume *Resume) error {
	var hello Hello
	if err := s.readInto(ctx, OpcodeHello, &hello); err != nil {
		return err
	}

	s.mu.Lock()
	s.heartbeatInterval = time.Duration(hello.HeartbeatInterval) * time.Millisecond
	s.state = stateIdentifying
	s.mu.Unlock()

	if resume != nil {
		return s.writePayload(ctx, OpcodeResume, "RESUME", resume)
	}

	return s.identify(ctx)
}

func (s *Session) identify(ctx context.Context) error {
	props := IdentifyConnectionProperties{OS: "linux", Browser: "relay", Device: "relay"}

	identify := Identify{
		Token:          s.client.Authentication.Token,
		Properties:     props,
		LargeThreshold: maxIdentifyLargeThreshold,
		Shard:          s.client.Config.Shard,
		Intents:        s.client.Config.Intents,
	}

	return s.writePayload(ctx, OpcodeIdentify, "IDENTIFY", identify)
}

// readInto reads exactly one frame and requires it to carry the given
// opcode, used only during the synchronous handshake before the listen
// loop takes over general-purpose reading.
func (s *Session) readInto(ctx context.Context, wantOp int, v interface{}) error {
	p := getPayload()
	defer putPayload(p)

	if err := s.conn.ReadJSON(ctx, p); err != nil {
		return newTransportError("read", err)
	}

	if p.Op != wantOp {
		return fmt.Errorf("relay: handshake: expected opcode %d, got %d", wantOp, p.Op)
	}

	if v == nil {
		return nil
	}

	return json.Unmarshal(p.Data, v)
}

func (s *Session) writePayload(ctx context.Context, op int, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("relay: encoding %s: %w", name, err)
	}

	s.budget.wait()

	logCommand(Logger.Debug(), op, name).Msg("sending gateway command")

	return s.conn.WriteJSON(ctx, &GatewayPayload{Op: op, Data: data})
}

// spawn starts the Session's four long-running goroutines under the
// errgroup (pulse / beat / listen / drainOutbound), following the teacher's
// session_listener.go + session_heartbeat.go split, fully serialized behind
// errgroup.Wait in monitor() so a single failure tears the whole session down
// cleanly (wrapper/session_manager.go's documented invariant).
func (s *Session) spawn() {
	s.mu.Lock()
	s.state = stateRunning
	s.mu.Unlock()

	s.group.Go(func() error { return s.pulse() })
	s.group.Go(func() error { return s.beat() })
	s.group.Go(func() error { return s.listen() })
	s.group.Go(func() error { return s.drainOutbound() })

	go s.monitor()
}

// monitor waits for every Session goroutine to exit, classifies the result,
// and delivers a final Disconnected event.
func (s *Session) monitor() {
	err := s.group.Wait()

	s.mu.Lock()
	s.state = stateDisconnected
	s.mu.Unlock()

	select {
	case s.events <- Disconnected{Err: err}:
	default:
	}

	close(s.events)
}

// Close cancels the Session's context, triggering a clean shutdown of all
// goroutines and a graceful WebSocket close frame.
func (s *Session) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	s.cancel()

	if conn != nil {
		return conn.Close(websocket.StatusNormalClosure, "relay: client disconnect")
	}

	return nil
}

// reconnectDelay computes the exponential-backoff-with-jitter wait before
// attempt (1-indexed), grounded in the Rust original's reconnect loop
// (original_source/src/gateway.rs), capped at reconnectMaxDelay.
func reconnectDelay(attempt int) time.Duration {
	backoff := reconnectBaseDelay << (attempt - 1)
	if backoff > reconnectMaxDelay || backoff <= 0 {
		backoff = reconnectMaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(backoff) / 2))

	return backoff/2 + jitter
}
