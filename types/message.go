package types

import json "github.com/goccy/go-json"

// Message Object
// https://discord.com/developers/docs/resources/channel#message-object
type Message struct {
	ID              Snowflake           `json:"id"`
	ChannelID       Snowflake           `json:"channel_id"`
	GuildID         Snowflake           `json:"guild_id,omitempty"`
	Author          *User               `json:"author"`
	Member          *GuildMember        `json:"member,omitempty"`
	Content         string              `json:"content"`
	Timestamp       string              `json:"timestamp"`
	EditedTimestamp string              `json:"edited_timestamp,omitempty"`
	TTS             bool                `json:"tts"`
	MentionEveryone bool                `json:"mention_everyone"`
	Mentions        []*User             `json:"mentions"`
	MentionRoles    []Snowflake         `json:"mention_roles"`
	MentionChannels []*ChannelMention   `json:"mention_channels,omitempty"`
	Attachments     []*Attachment       `json:"attachments"`
	Embeds          []*Embed            `json:"embeds"`
	Components      []*Component        `json:"components,omitempty"`
	Pinned          bool                `json:"pinned"`
	WebhookID       Snowflake           `json:"webhook_id,omitempty"`
	Type            int                 `json:"type"`
	Flags           int                 `json:"flags,omitempty"`
	Interaction     *MessageInteraction `json:"interaction,omitempty"`
}

// MessageInteraction is the subset of an Interaction echoed back onto the
// Message that triggered it.
type MessageInteraction struct {
	ID   Snowflake `json:"id"`
	Type int       `json:"type"`
	Name string    `json:"name"`
	User *User     `json:"user"`
}

// CreateMessage is the request body for POST /channels/{channel.id}/messages.
//
// Only fields explicitly set by the caller should be marshaled, which is why
// every field is a pointer or carries `omitempty` — a zero-value `Embeds` or
// `Flags` must not appear in the outbound JSON (see spec.md L1).
type CreateMessage struct {
	Content          string            `json:"content,omitempty"`
	Nonce            string            `json:"nonce,omitempty"`
	TTS              bool              `json:"tts,omitempty"`
	Embeds           []*Embed          `json:"embeds,omitempty"`
	AllowedMentions  *AllowedMentions  `json:"allowed_mentions,omitempty"`
	MessageReference *MessageReference `json:"message_reference,omitempty"`
	Components       []*Component      `json:"components,omitempty"`
	StickerIDs       []Snowflake       `json:"sticker_ids,omitempty"`
	Flags            int               `json:"flags,omitempty"`

	// Files is not part of the JSON payload; MarshalPayloadJSON excludes it,
	// and Client.CreateMessage lifts it out when it must build a multipart
	// request instead of a raw JSON one.
	Files []*File `json:"-"`
}

type AllowedMentions struct {
	Parse       []string    `json:"parse,omitempty"`
	Roles       []Snowflake `json:"roles,omitempty"`
	Users       []Snowflake `json:"users,omitempty"`
	RepliedUser bool        `json:"replied_user,omitempty"`
}

type MessageReference struct {
	MessageID       Snowflake `json:"message_id,omitempty"`
	ChannelID       Snowflake `json:"channel_id,omitempty"`
	GuildID         Snowflake `json:"guild_id,omitempty"`
	FailIfNotExists bool      `json:"fail_if_not_exists,omitempty"`
}

// MarshalPayloadJSON serializes the `payload_json` part of a multipart
// message-with-file upload. It is the same CreateMessage body as a plain
// JSON request — only the request's envelope (multipart vs. raw JSON)
// differs.
func (c *CreateMessage) MarshalPayloadJSON() ([]byte, error) {
	return json.Marshal(c)
}
