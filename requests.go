package relay

import (
	"context"
	"fmt"
	"net/url"

	json "github.com/goccy/go-json"
	"github.com/gorilla/schema"
	"github.com/vincent-petithory/dataurl"

	"github.com/corewired/relay/types"
)

// qsEncoder builds URL query strings from Go structs the same way the
// teacher's wrapper/requests.go does, via github.com/gorilla/schema.
var qsEncoder = schema.NewEncoder()

// GatewayResponse is the body of GET /gateway.
type GatewayResponse struct {
	URL string `json:"url"`
}

// GatewayBotResponse is the body of GET /gateway/bot, which additionally
// reports shard guidance and the bot's remaining session-start budget.
type GatewayBotResponse struct {
	URL               string `json:"url"`
	Shards            int    `json:"shards"`
	SessionStartLimit struct {
		Total          int `json:"total"`
		Remaining      int `json:"remaining"`
		ResetAfter     int `json:"reset_after"`
		MaxConcurrency int `json:"max_concurrency"`
	} `json:"session_start_limit"`
}

// GetGateway fetches the unauthenticated gateway URL.
func (c *Client) GetGateway(ctx context.Context) (*GatewayResponse, error) {
	uri, routeKey := endpointGateway()

	var resp GatewayResponse
	if err := c.request(ctx, "GET", routeKey, uri, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetGatewayBot fetches the bot-aware gateway URL, which also reports
// recommended shard count and session-start-limit remaining — richer than
// the teacher's plain GetGateway and preferred by Client.Connect
// (SPEC_FULL.md's supplemented GetGatewayBot-aware connect flow).
func (c *Client) GetGatewayBot(ctx context.Context) (*GatewayBotResponse, error) {
	uri, routeKey := endpointGatewayBot()

	var resp GatewayBotResponse
	if err := c.request(ctx, "GET", routeKey, uri, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetChannel fetches a channel by ID.
func (c *Client) GetChannel(ctx context.Context, channelID string) (*types.Channel, error) {
	uri, routeKey := endpointChannel(channelID)

	var ch types.Channel
	if err := c.request(ctx, "GET", routeKey, uri, nil, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

// GetGuild fetches a guild by ID.
func (c *Client) GetGuild(ctx context.Context, guildID string) (*types.Guild, error) {
	uri, routeKey := endpointGuild(guildID)

	var g types.Guild
	if err := c.request(ctx, "GET", routeKey, uri, nil, &g); err != nil {
		return nil, err
	}

	return &g, nil
}

// GetMessagesParams are the optional query parameters of GET
// /channels/{id}/messages.
type GetMessagesParams struct {
	Around string `schema:"around,omitempty"`
	Before string `schema:"before,omitempty"`
	After  string `schema:"after,omitempty"`
	Limit  int    `schema:"limit,omitempty"`
}

func (p GetMessagesParams) queryString() string {
	q := url.Values{}
	if err := qsEncoder.Encode(&p, q); err != nil {
		return ""
	}

	return q.Encode()
}

// GetMessages fetches up to 100 messages from a channel.
func (c *Client) GetMessages(ctx context.Context, channelID string, params GetMessagesParams) ([]*types.Message, error) {
	uri, routeKey := endpointChannelMessages(channelID)
	if qs := params.queryString(); qs != "" {
		uri += "?" + qs
	}

	result := make([]*types.Message, 0)
	if err := c.request(ctx, "GET", routeKey, uri, nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

const (
	// maxPaginationPages and maxPaginationMessages bound CountMessages'
	// cursor walk, the supplemented feature ported from the Rust original's
	// count_messages (original_source/src/http.rs) — that function has no
	// documented upper bound, so this package imposes one rather than
	// risking an unbounded REST loop against a very old, very active
	// channel.
	maxPaginationPages    = 100
	maxPaginationMessages = 10_000
)

// CountMessages walks a channel's message history backward from the most
// recent message, summing how many exist, up to maxPaginationPages pages of
// 100 messages each. It stops early if the channel is exhausted.
//
// Grounded on the Rust original's count_messages (original_source/src/
// http.rs), which paginates with `before=<last seen ID>` until Discord
// returns an empty page.
func (c *Client) CountMessages(ctx context.Context, channelID string) (int, error) {
	var (
		total  int
		before string
	)

	for page := 0; page < maxPaginationPages; page++ {
		msgs, err := c.GetMessages(ctx, channelID, GetMessagesParams{Before: before, Limit: 100})
		if err != nil {
			return total, err
		}

		total += len(msgs)

		if len(msgs) < 100 {
			return total, nil
		}

		before = msgs[len(msgs)-1].ID

		if total >= maxPaginationMessages {
			return total, nil
		}
	}

	return total, nil
}

// GetFirstMessage returns the oldest message in a channel, or an ApiError
// if the channel has none.
//
// Grounded on the Rust original's get_first_message (original_source/src/
// http.rs): GET with after=0&limit=1 returns the oldest message, since
// Discord orders ascending from the `after` cursor.
func (c *Client) GetFirstMessage(ctx context.Context, channelID string) (*types.Message, error) {
	msgs, err := c.GetMessages(ctx, channelID, GetMessagesParams{After: "0", Limit: 1})
	if err != nil {
		return nil, err
	}

	if len(msgs) == 0 {
		return nil, newAPIError(404, []byte(`{"message":"no messages in channel"}`), "GET /channels/:id/messages")
	}

	return msgs[0], nil
}

// CreateMessage posts a new message to a channel, using a multipart form
// when the message carries file attachments (spec.md §1).
func (c *Client) CreateMessage(ctx context.Context, channelID string, msg *types.CreateMessage) (*types.Message, error) {
	uri, routeKey := endpointCreateMessage(channelID)

	body, contentType, err := c.encodeMessageBody(msg)
	if err != nil {
		return nil, err
	}

	result := new(types.Message)
	if err := c.requestRaw(ctx, "POST", routeKey, uri, contentType, body, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SendMessage is a convenience wrapper over CreateMessage for plain text
// content with no embeds, components, or files.
func (c *Client) SendMessage(ctx context.Context, channelID, content string) (*types.Message, error) {
	return c.CreateMessage(ctx, channelID, &types.CreateMessage{Content: content})
}

// SendMessageWithFile is a convenience wrapper over CreateMessage that
// attaches a single file.
func (c *Client) SendMessageWithFile(ctx context.Context, channelID, content string, file *types.File) (*types.Message, error) {
	return c.CreateMessage(ctx, channelID, &types.CreateMessage{
		Content: content,
		Files:   []*types.File{file},
	})
}

func (c *Client) encodeMessageBody(msg *types.CreateMessage) (body []byte, contentType string, err error) {
	payload, err := msg.MarshalPayloadJSON()
	if err != nil {
		return nil, "", fmt.Errorf("relay: encoding message: %w", err)
	}

	if len(msg.Files) == 0 {
		return payload, contentTypeJSONString, nil
	}

	ct, multipartBody, err := createMultipartForm(payload, msg.Files...)
	if err != nil {
		return nil, "", err
	}

	return multipartBody, ct, nil
}

// CreateInteractionResponse answers an interaction (spec.md's interaction
// response surface).
func (c *Client) CreateInteractionResponse(ctx context.Context, interactionID, token string, resp *types.InteractionResponse) error {
	uri, routeKey := endpointInteractionCallback(interactionID, token)

	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("relay: encoding interaction response: %w", err)
	}

	return c.request(ctx, "POST", routeKey, uri, body, nil)
}

// EditOriginalInteractionResponse edits the original response to an
// interaction.
func (c *Client) EditOriginalInteractionResponse(ctx context.Context, applicationID, token string, edit *types.EditWebhookMessage) (*types.Message, error) {
	uri, routeKey := endpointOriginalInteractionResponse(applicationID, token)

	body, err := json.Marshal(edit)
	if err != nil {
		return nil, fmt.Errorf("relay: encoding interaction edit: %w", err)
	}

	result := new(types.Message)
	if err := c.request(ctx, "PATCH", routeKey, uri, body, result); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateFollowupMessage posts a followup message to an interaction.
func (c *Client) CreateFollowupMessage(ctx context.Context, applicationID, token string, msg *types.CreateMessage) (*types.Message, error) {
	uri, routeKey := endpointFollowupMessage(applicationID, token)

	body, contentType, err := c.encodeMessageBody(msg)
	if err != nil {
		return nil, err
	}

	result := new(types.Message)
	if err := c.requestRaw(ctx, "POST", routeKey, uri, contentType, body, result); err != nil {
		return nil, err
	}

	return result, nil
}

// BulkOverwriteGlobalCommands replaces every global application command.
func (c *Client) BulkOverwriteGlobalCommands(ctx context.Context, applicationID string, commands []*types.ApplicationCommand) ([]*types.ApplicationCommand, error) {
	uri, routeKey := endpointGlobalApplicationCommands(applicationID)

	body, err := json.Marshal(commands)
	if err != nil {
		return nil, fmt.Errorf("relay: encoding commands: %w", err)
	}

	result := make([]*types.ApplicationCommand, 0)
	if err := c.request(ctx, "PUT", routeKey, uri, body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// BulkOverwriteGuildCommands replaces every application command scoped to
// one guild.
func (c *Client) BulkOverwriteGuildCommands(ctx context.Context, applicationID, guildID string, commands []*types.ApplicationCommand) ([]*types.ApplicationCommand, error) {
	uri, routeKey := endpointGuildApplicationCommands(applicationID, guildID)

	body, err := json.Marshal(commands)
	if err != nil {
		return nil, fmt.Errorf("relay: encoding commands: %w", err)
	}

	result := make([]*types.ApplicationCommand, 0)
	if err := c.request(ctx, "PUT", routeKey, uri, body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// EditCurrentUserParams are the fields of PATCH /users/@me.
type EditCurrentUserParams struct {
	Username string
	// Avatar, if non-nil, replaces the bot's avatar. Encoded as a data URI
	// via github.com/vincent-petithory/dataurl, matching how Discord's REST
	// API accepts inline image data for this endpoint (spec.md's
	// supplemented EditCurrentUser feature).
	Avatar *AvatarImage
}

// AvatarImage is raw image data for EditCurrentUserParams.Avatar.
type AvatarImage struct {
	MediaType string
	Data      []byte
}

// EditCurrentUser updates the bot's username and/or avatar.
func (c *Client) EditCurrentUser(ctx context.Context, params EditCurrentUserParams) (*types.User, error) {
	uri, routeKey := endpointCurrentUser()

	body := struct {
		Username string  `json:"username,omitempty"`
		Avatar   *string `json:"avatar,omitempty"`
	}{Username: params.Username}

	if params.Avatar != nil {
		encoded := dataurl.New(params.Avatar.Data, params.Avatar.MediaType).String()
		body.Avatar = &encoded
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("relay: encoding user edit: %w", err)
	}

	result := new(types.User)
	if err := c.request(ctx, "PATCH", routeKey, uri, payload, result); err != nil {
		return nil, err
	}

	return result, nil
}
