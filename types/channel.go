package types

// Channel Object
// https://discord.com/developers/docs/resources/channel#channel-object
type Channel struct {
	ID               Snowflake `json:"id"`
	Type             int       `json:"type"`
	GuildID          Snowflake `json:"guild_id,omitempty"`
	Position         int       `json:"position,omitempty"`
	Name             string    `json:"name,omitempty"`
	Topic            string    `json:"topic,omitempty"`
	NSFW             bool      `json:"nsfw,omitempty"`
	LastMessageID    Snowflake `json:"last_message_id,omitempty"`
	Bitrate          int       `json:"bitrate,omitempty"`
	UserLimit        int       `json:"user_limit,omitempty"`
	RateLimitPerUser int       `json:"rate_limit_per_user,omitempty"`
	Recipients       []*User   `json:"recipients,omitempty"`
	Icon             string    `json:"icon,omitempty"`
	OwnerID          Snowflake `json:"owner_id,omitempty"`
	ParentID         Snowflake `json:"parent_id,omitempty"`
	LastPinTimestamp string    `json:"last_pin_timestamp,omitempty"`
	Permissions      string    `json:"permissions,omitempty"`
}

// ChannelMention Object
// https://discord.com/developers/docs/resources/channel#channel-mention-object
type ChannelMention struct {
	ID      Snowflake `json:"id"`
	GuildID Snowflake `json:"guild_id"`
	Type    int       `json:"type"`
	Name    string    `json:"name"`
}

// Guild Object (trimmed)
// https://discord.com/developers/docs/resources/guild#guild-object
type Guild struct {
	ID                          Snowflake `json:"id"`
	Name                        string    `json:"name"`
	Icon                        string    `json:"icon,omitempty"`
	Splash                      string    `json:"splash,omitempty"`
	OwnerID                     Snowflake `json:"owner_id"`
	Region                      string    `json:"region,omitempty"`
	AFKChannelID                Snowflake `json:"afk_channel_id,omitempty"`
	AFKTimeout                  int       `json:"afk_timeout"`
	VerificationLevel           int       `json:"verification_level"`
	DefaultMessageNotifications int       `json:"default_message_notifications"`
	ExplicitContentFilter       int       `json:"explicit_content_filter"`
	Roles                       []*Role   `json:"roles,omitempty"`
	Emojis                      []*Emoji  `json:"emojis,omitempty"`
	Features                    []string  `json:"features,omitempty"`
	MFALevel                    int       `json:"mfa_level"`
	ApplicationID               Snowflake `json:"application_id,omitempty"`
	SystemChannelID             Snowflake `json:"system_channel_id,omitempty"`
	MemberCount                 int       `json:"member_count,omitempty"`
	PremiumTier                 int       `json:"premium_tier,omitempty"`
	PremiumSubscriptionCount    int       `json:"premium_subscription_count,omitempty"`
	PreferredLocale             string    `json:"preferred_locale,omitempty"`
	NSFWLevel                   int       `json:"nsfw_level,omitempty"`
}
