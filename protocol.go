package relay

import json "github.com/goccy/go-json"

// GatewayPayload is the envelope wrapping every gateway message in both
// directions (spec.md §3, Data Model).
//
// https://discord.com/developers/docs/topics/gateway-events#payload-structure
type GatewayPayload struct {
	Op             int             `json:"op"`
	Data           json.RawMessage `json:"d,omitempty"`
	SequenceNumber *int64          `json:"s,omitempty"`
	EventName      string          `json:"t,omitempty"`
}

// reset clears a pooled GatewayPayload for reuse (see pool.go).
func (p *GatewayPayload) reset() {
	p.Op = 0
	p.Data = nil
	p.SequenceNumber = nil
	p.EventName = ""
}

// Hello is the `d` field of an Opcode 10 payload, the first message sent by
// Discord on every new connection.
type Hello struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

// IdentifyConnectionProperties is the `properties` field of an Identify
// payload (spec.md §6).
type IdentifyConnectionProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// Identify is the `d` field of an Opcode 2 payload, sent once per fresh
// session after Hello.
//
// https://discord.com/developers/docs/topics/gateway-events#identify
type Identify struct {
	Token          string                       `json:"token"`
	Properties     IdentifyConnectionProperties `json:"properties"`
	Compress       bool                         `json:"compress,omitempty"`
	LargeThreshold int                          `json:"large_threshold,omitempty"`
	Shard          *[2]int                      `json:"shard,omitempty"`
	Presence       *UpdatePresence              `json:"presence,omitempty"`
	Intents        BitFlag                      `json:"intents"`
}

// Resume is the `d` field of an Opcode 6 payload, sent instead of Identify
// when reattaching to an existing session.
//
// https://discord.com/developers/docs/topics/gateway-events#resume
type Resume struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

// Heartbeat is the `d` field of an Opcode 1 payload: the last sequence
// number this session has processed, or nil if none yet.
type Heartbeat struct {
	SequenceNumber *int64
}

// MarshalJSON renders the Heartbeat's bare sequence number (or `null`), per
// https://discord.com/developers/docs/topics/gateway-events#heartbeat.
func (h Heartbeat) MarshalJSON() ([]byte, error) {
	if h.SequenceNumber == nil {
		return []byte("null"), nil
	}

	return json.Marshal(*h.SequenceNumber)
}

// RequestGuildMembers is the `d` field of an Opcode 8 payload.
//
// https://discord.com/developers/docs/topics/gateway-events#request-guild-members
type RequestGuildMembers struct {
	GuildID   string   `json:"guild_id"`
	Query     *string  `json:"query,omitempty"`
	Limit     int      `json:"limit"`
	Presences bool     `json:"presences,omitempty"`
	UserIDs   []string `json:"user_ids,omitempty"`
	Nonce     string   `json:"nonce,omitempty"`
}

// UpdatePresence is the `d` field of an Opcode 3 payload.
//
// https://discord.com/developers/docs/topics/gateway-events#update-presence
type UpdatePresence struct {
	Since      *int64             `json:"since"`
	Activities []PresenceActivity `json:"activities"`
	Status     string             `json:"status"`
	AFK        bool               `json:"afk"`
}

// PresenceActivity is one entry of an UpdatePresence's Activities list.
type PresenceActivity struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	URL  string `json:"url,omitempty"`
}

// VoiceStateUpdate is the `d` field of an Opcode 4 payload.
//
// https://discord.com/developers/docs/topics/gateway-events#update-voice-state
type VoiceStateUpdate struct {
	GuildID   string  `json:"guild_id"`
	ChannelID *string `json:"channel_id"`
	SelfMute  bool    `json:"self_mute"`
	SelfDeaf  bool    `json:"self_deaf"`
}
