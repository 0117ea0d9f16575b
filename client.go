package relay

import (
	"time"

	"github.com/valyala/fasthttp"
)

// Default configuration values.
const (
	// defaultUserAgent identifies this client to Discord per
	// https://discord.com/developers/docs/reference#user-agent.
	defaultUserAgent = "DiscordBot (https://github.com/corewired/relay, 0.1.0)"

	// defaultRequestTimeout bounds a single REST round-trip at the transport
	// layer (spec.md §5: "no explicit per-request timeout in the protocol
	// layer; the HTTP transport is expected to apply its own").
	defaultRequestTimeout = 30 * time.Second

	// defaultMaxRetries is the number of retries (on top of the initial
	// attempt) the REST client allows for a single logical request
	// (spec.md §4.2 step 4, P6).
	defaultMaxRetries = 5
)

// Authentication carries the bearer credential the REST client and gateway
// driver attach to every outbound request (spec.md §1: "a bearer token ...
// supplied as input; how it is obtained is not part of this design").
type Authentication struct {
	Token string

	// Header is the precomputed "Bot <token>" Authorization header value.
	Header string
}

// BotToken builds an Authentication for a bot token.
func BotToken(token string) *Authentication {
	return &Authentication{
		Token:  token,
		Header: "Bot " + token,
	}
}

// Config holds the tunables for a Client's REST and gateway behavior.
type Config struct {
	// Intents is the 32-bit gateway intents bitmask sent on IDENTIFY
	// (spec.md §6).
	Intents BitFlag

	// Shard is an optional [shard_id, num_shards] tuple (spec.md §6).
	Shard *[2]int

	// UserAgent overrides the default User-Agent sent on every REST request.
	UserAgent string

	// RequestTimeout bounds a single REST round-trip.
	RequestTimeout time.Duration

	// MaxRetries bounds how many times a single REST request is retried
	// after a 429 or 502 response (spec.md P6: 1 initial + up to 5 retries).
	MaxRetries int

	// Debug enables go-spew dumps of Unknown gateway events and switches
	// logging to the colorized console writer (SPEC_FULL.md §6).
	Debug bool

	// HTTPClient is the fasthttp.Client used for REST requests. A caller can
	// substitute one with custom TLS or proxy settings; the zero value works.
	HTTPClient *fasthttp.Client
}

// DefaultConfig returns a Config with the spec's mandated defaults.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:      defaultUserAgent,
		RequestTimeout: defaultRequestTimeout,
		MaxRetries:     defaultMaxRetries,
		HTTPClient:     &fasthttp.Client{},
	}
}

// Client is a Discord bot application: the REST-side identity and
// configuration shared by every Session it opens and every REST request it
// issues. A Client owns no gateway connection state itself — that lives on
// the Session returned by Connect — so a single Client can safely drive
// multiple Sessions in tests or in a sharded deployment above this package.
type Client struct {
	ApplicationID string

	Authentication *Authentication
	Config         *Config

	limiter *RateLimiter
}

// NewClient constructs a Client ready to Connect and to issue REST requests.
func NewClient(token string, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &fasthttp.Client{}
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	if cfg.Debug {
		EnableDebugLogging()
	}

	return &Client{
		Authentication: BotToken(token),
		Config:         cfg,
		limiter:        NewRateLimiter(),
	}
}

// BitFlag is a Discord bitmask (intents, permissions, message flags).
type BitFlag uint64

// Gateway Intents.
// https://discord.com/developers/docs/topics/gateway#gateway-intents
const (
	IntentGuilds                  BitFlag = 1 << 0
	IntentGuildMembers            BitFlag = 1 << 1
	IntentGuildBans               BitFlag = 1 << 2
	IntentGuildEmojisAndStickers  BitFlag = 1 << 3
	IntentGuildIntegrations       BitFlag = 1 << 4
	IntentGuildWebhooks           BitFlag = 1 << 5
	IntentGuildInvites            BitFlag = 1 << 6
	IntentGuildVoiceStates        BitFlag = 1 << 7
	IntentGuildPresences          BitFlag = 1 << 8
	IntentGuildMessages           BitFlag = 1 << 9
	IntentGuildMessageReactions   BitFlag = 1 << 10
	IntentGuildMessageTyping      BitFlag = 1 << 11
	IntentDirectMessages          BitFlag = 1 << 12
	IntentDirectMessageReactions  BitFlag = 1 << 13
	IntentDirectMessageTyping     BitFlag = 1 << 14
	IntentMessageContent          BitFlag = 1 << 15
	IntentGuildScheduledEvents    BitFlag = 1 << 16
	IntentAutoModerationConfig    BitFlag = 1 << 20
	IntentAutoModerationExecution BitFlag = 1 << 21
)

// DefaultIntents matches the composition documented in spec.md §6:
// GUILDS | GUILD_MEMBERS | GUILD_PRESENCES | GUILD_MESSAGES | MESSAGE_CONTENT.
const DefaultIntents = IntentGuilds | IntentGuildMembers | IntentGuildPresences | IntentGuildMessages | IntentMessageContent
