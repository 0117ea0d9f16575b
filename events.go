package relay

import json "github.com/goccy/go-json"

// Dispatch event names (the `t` field of Opcode 0 payloads) this package
// recognizes and converts into a typed Event. Every other name still reaches
// the consumer, as an Unknown event (spec.md §9: "no event name causes the
// session to fail; an unrecognized name becomes Unknown").
const (
	dispatchReady             = "READY"
	dispatchResumed           = "RESUMED"
	dispatchGuildCreate       = "GUILD_CREATE"
	dispatchMessageCreate     = "MESSAGE_CREATE"
	dispatchPresenceUpdate    = "PRESENCE_UPDATE"
	dispatchInteractionCreate = "INTERACTION_CREATE"
)

// Event is the tagged union delivered on a Session's event channel
// (spec.md §9). Every dispatch, the heartbeat ACK, and every anomaly a
// consumer must be able to react to (reconnect, invalid session,
// disconnect) surfaces as one of these variants — there is no handler registry to
// register against; a consumer range-loops the channel and type-switches.
type Event interface {
	eventName() string
}

// Ready mirrors Discord's READY dispatch: the payload Discord sends
// immediately after a successful Identify.
type Ready struct {
	SessionID        string      `json:"session_id"`
	ResumeGatewayURL string      `json:"resume_gateway_url"`
	Application      Application `json:"application"`
}

func (Ready) eventName() string { return dispatchReady }

// Application is the trimmed application object embedded in Ready.
type Application struct {
	ID    string `json:"id"`
	Flags int    `json:"flags"`
}

// Resumed mirrors Discord's RESUMED dispatch, sent after a successful
// Resume in place of a fresh Ready.
type Resumed struct{}

func (Resumed) eventName() string { return dispatchResumed }

// GuildCreate mirrors Discord's GUILD_CREATE dispatch. Fields are intentionally
// loose (json.RawMessage) because the full guild object schema is the typed
// domain model's concern, not the transport core's (spec.md §1 Non-goals:
// "a typed domain model for every Discord resource").
type GuildCreate struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"-"`
}

func (GuildCreate) eventName() string { return dispatchGuildCreate }

// MessageCreate mirrors Discord's MESSAGE_CREATE dispatch.
type MessageCreate struct {
	ID        string          `json:"id"`
	ChannelID string          `json:"channel_id"`
	GuildID   string          `json:"guild_id,omitempty"`
	Content   string          `json:"content"`
	AuthorID  string          `json:"-"`
	Raw       json.RawMessage `json:"-"`
}

func (MessageCreate) eventName() string { return dispatchMessageCreate }

// PresenceUpdate mirrors Discord's PRESENCE_UPDATE dispatch.
type PresenceUpdate struct {
	UserID  string          `json:"-"`
	GuildID string          `json:"guild_id"`
	Status  string          `json:"status"`
	Raw     json.RawMessage `json:"-"`
}

func (PresenceUpdate) eventName() string { return dispatchPresenceUpdate }

// InteractionCreate mirrors Discord's INTERACTION_CREATE dispatch.
type InteractionCreate struct {
	ID    string          `json:"id"`
	Type  int             `json:"type"`
	Token string          `json:"token"`
	Raw   json.RawMessage `json:"-"`
}

func (InteractionCreate) eventName() string { return dispatchInteractionCreate }

// HeartbeatAck signals that Discord acknowledged the session's last
// heartbeat (Opcode 11). Consumers generally ignore it; it exists on the
// channel so a caller building its own liveness probe on top of this
// package doesn't have to reach into session internals.
type HeartbeatAck struct{}

func (HeartbeatAck) eventName() string { return "HEARTBEAT_ACK" }

// HeartbeatRequested names Discord's request for an out-of-cycle heartbeat
// (Opcode 1 received from the server). The session answers such a request
// internally and does not deliver this variant on its Events channel.
type HeartbeatRequested struct{}

func (HeartbeatRequested) eventName() string { return "HEARTBEAT_REQUESTED" }

// Reconnecting signals that Discord sent Opcode 7 (Reconnect): the session
// is about to close the socket and resume on a new connection.
type Reconnecting struct{}

func (Reconnecting) eventName() string { return "RECONNECTING" }

// InvalidSession signals Opcode 9. Resumable reports whether the session
// should attempt Resume (true) or must Identify fresh (false), per the `d`
// boolean Discord sends with this opcode.
type InvalidSession struct {
	Resumable bool
}

func (InvalidSession) eventName() string { return "INVALID_SESSION" }

// Disconnected signals that the session's run loop has exited and will not
// reconnect — because the caller canceled the context, or because one of
// the session's goroutines returned an error (a close code classified
// outcomeFatal, exhausted reconnect attempts, a missed HeartbeatACK, a
// failed write). Err is nil on a caller-initiated clean shutdown.
type Disconnected struct {
	Err error
}

func (Disconnected) eventName() string { return "DISCONNECTED" }

// Unknown carries any dispatch this package doesn't model as a dedicated
// variant, per spec.md §9. Name is the `t` field, Raw is the undecoded `d`.
type Unknown struct {
	Name string
	Op   int
	Raw  json.RawMessage
}

func (u Unknown) eventName() string { return u.Name }
