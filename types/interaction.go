package types

import json "github.com/goccy/go-json"

// Interaction Type
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object-interaction-type
const (
	InteractionTypePing                           = 1
	InteractionTypeApplicationCommand             = 2
	InteractionTypeMessageComponent               = 3
	InteractionTypeApplicationCommandAutocomplete = 4
	InteractionTypeModalSubmit                    = 5
)

// Interaction Object
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-object
type Interaction struct {
	ID             Snowflake       `json:"id"`
	ApplicationID  Snowflake       `json:"application_id"`
	Type           int             `json:"type"`
	Data           json.RawMessage `json:"data,omitempty"`
	GuildID        Snowflake       `json:"guild_id,omitempty"`
	ChannelID      Snowflake       `json:"channel_id,omitempty"`
	Member         *GuildMember    `json:"member,omitempty"`
	User           *User           `json:"user,omitempty"`
	Token          string          `json:"token"`
	Version        int             `json:"version"`
	Message        *Message        `json:"message,omitempty"`
	Locale         string          `json:"locale,omitempty"`
	GuildLocale    string          `json:"guild_locale,omitempty"`
	AppPermissions string          `json:"app_permissions,omitempty"`
}

// Interaction Callback Type
// https://discord.com/developers/docs/interactions/receiving-and-responding#interaction-response-object-interaction-callback-type
const (
	CallbackTypePong                                 = 1
	CallbackTypeChannelMessageWithSource             = 4
	CallbackTypeDeferredChannelMessageWithSource     = 5
	CallbackTypeDeferredUpdateMessage                = 6
	CallbackTypeUpdateMessage                        = 7
	CallbackTypeApplicationCommandAutocompleteResult = 8
	CallbackTypeModal                                = 9
)

// InteractionResponse is the body for
// POST /interactions/{interaction.id}/{interaction.token}/callback.
type InteractionResponse struct {
	Type int                      `json:"type"`
	Data *InteractionCallbackData `json:"data,omitempty"`
}

// InteractionCallbackData is the `data` field of an InteractionResponse for
// message-producing callback types (4, 7), and carries Choices for an
// autocomplete result (8).
type InteractionCallbackData struct {
	TTS             bool                              `json:"tts,omitempty"`
	Content         string                            `json:"content,omitempty"`
	Embeds          []*Embed                          `json:"embeds,omitempty"`
	AllowedMentions *AllowedMentions                  `json:"allowed_mentions,omitempty"`
	Flags           int                               `json:"flags,omitempty"`
	Components      []*Component                      `json:"components,omitempty"`
	Choices         []*ApplicationCommandOptionChoice `json:"choices,omitempty"`
}

// ApplicationCommandInteractionDataOption is one resolved option of an
// application command invocation or autocomplete request (the `data.options`
// field of an Interaction whose Type is InteractionTypeApplicationCommand or
// InteractionTypeApplicationCommandAutocomplete).
type ApplicationCommandInteractionDataOption struct {
	Name    string                                     `json:"name"`
	Type    int                                        `json:"type"`
	Value   json.RawMessage                            `json:"value,omitempty"`
	Options []*ApplicationCommandInteractionDataOption `json:"options,omitempty"`
	Focused bool                                       `json:"focused,omitempty"`
}

// ApplicationCommandInteractionData is the `data` field of an Interaction
// whose Type is InteractionTypeApplicationCommand or
// InteractionTypeApplicationCommandAutocomplete.
type ApplicationCommandInteractionData struct {
	ID      Snowflake                                  `json:"id"`
	Name    string                                     `json:"name"`
	Type    int                                        `json:"type"`
	Options []*ApplicationCommandInteractionDataOption `json:"options,omitempty"`
}

// EditWebhookMessage is the body for editing the original or a followup
// interaction response (PATCH .../messages/@original or /messages/{id}).
type EditWebhookMessage struct {
	Content         *string          `json:"content,omitempty"`
	Embeds          []*Embed         `json:"embeds,omitempty"`
	AllowedMentions *AllowedMentions `json:"allowed_mentions,omitempty"`
	Components      []*Component     `json:"components,omitempty"`
}
