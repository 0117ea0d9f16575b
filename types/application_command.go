package types

// Application Command Types
// https://discord.com/developers/docs/interactions/application-commands#application-command-object-application-command-types
const (
	ApplicationCommandTypeChatInput = 1
	ApplicationCommandTypeUser      = 2
	ApplicationCommandTypeMessage   = 3
)

// ApplicationCommand Object
// https://discord.com/developers/docs/interactions/application-commands#application-command-object
type ApplicationCommand struct {
	ID                       Snowflake                   `json:"id,omitempty"`
	Type                     int                         `json:"type,omitempty"`
	ApplicationID            Snowflake                   `json:"application_id,omitempty"`
	GuildID                  Snowflake                   `json:"guild_id,omitempty"`
	Name                     string                      `json:"name"`
	NameLocalizations        map[string]string           `json:"name_localizations,omitempty"`
	Description              string                      `json:"description"`
	DescriptionLocalizations map[string]string           `json:"description_localizations,omitempty"`
	Options                  []*ApplicationCommandOption `json:"options,omitempty"`
	DefaultMemberPermissions string                      `json:"default_member_permissions,omitempty"`
	DMPermission             *bool                       `json:"dm_permission,omitempty"`
	Version                  string                      `json:"version,omitempty"`
}

// ApplicationCommandOption Object
// https://discord.com/developers/docs/interactions/application-commands#application-command-object-application-command-option-structure
type ApplicationCommandOption struct {
	Type         int                               `json:"type"`
	Name         string                            `json:"name"`
	Description  string                            `json:"description"`
	Required     bool                              `json:"required,omitempty"`
	Choices      []*ApplicationCommandOptionChoice `json:"choices,omitempty"`
	Options      []*ApplicationCommandOption       `json:"options,omitempty"`
	Autocomplete bool                              `json:"autocomplete,omitempty"`
}

type ApplicationCommandOptionChoice struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}
