package relay

import "fmt"

// baseURL is Discord's REST API root for the version this package targets.
const baseURL = "https://discord.com/api/v" + gatewayVersion

// Endpoint builders. Each returns both the request URI and a route key for
// bucket lookup, following the teacher's EndpointX naming convention
// (disgo.go's EndpointCreateMessage, EndpointGetChannelMessage, etc.) but
// returning a route key string "<METHOD> <templated path>" in which major
// parameters (channel, guild, application/webhook ID and token) are
// substituted literally and minor ones (such as a message ID) are left as a
// ":id" placeholder, instead of the teacher's integer route ID + resource ID
// pair, since this package's RateLimiter is keyed by string.

func endpointGateway() (uri, routeKey string) {
	return baseURL + "/gateway", "GET /gateway"
}

func endpointGatewayBot() (uri, routeKey string) {
	return baseURL + "/gateway/bot", "GET /gateway/bot"
}

func endpointChannelMessages(channelID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/channels/%s/messages", baseURL, channelID),
		fmt.Sprintf("GET /channels/%s/messages", channelID)
}

func endpointCreateMessage(channelID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/channels/%s/messages", baseURL, channelID),
		fmt.Sprintf("POST /channels/%s/messages", channelID)
}

func endpointChannelMessage(channelID, messageID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/channels/%s/messages/%s", baseURL, channelID, messageID),
		fmt.Sprintf("GET /channels/%s/messages/:id", channelID)
}

func endpointEditMessage(channelID, messageID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/channels/%s/messages/%s", baseURL, channelID, messageID),
		fmt.Sprintf("PATCH /channels/%s/messages/:id", channelID)
}

func endpointChannel(channelID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/channels/%s", baseURL, channelID),
		fmt.Sprintf("GET /channels/%s", channelID)
}

func endpointGuild(guildID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/guilds/%s", baseURL, guildID),
		fmt.Sprintf("GET /guilds/%s", guildID)
}

func endpointCurrentUser() (uri, routeKey string) {
	return baseURL + "/users/@me", "PATCH /users/@me"
}

func endpointInteractionCallback(interactionID, token string) (uri, routeKey string) {
	return fmt.Sprintf("%s/interactions/%s/%s/callback", baseURL, interactionID, token),
		fmt.Sprintf("POST /interactions/%s/%s/callback", interactionID, token)
}

func endpointOriginalInteractionResponse(applicationID, token string) (uri, routeKey string) {
	return fmt.Sprintf("%s/webhooks/%s/%s/messages/@original", baseURL, applicationID, token),
		fmt.Sprintf("PATCH /webhooks/%s/%s/messages/@original", applicationID, token)
}

func endpointFollowupMessage(applicationID, token string) (uri, routeKey string) {
	return fmt.Sprintf("%s/webhooks/%s/%s", baseURL, applicationID, token),
		fmt.Sprintf("POST /webhooks/%s/%s", applicationID, token)
}

func endpointGlobalApplicationCommands(applicationID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/applications/%s/commands", baseURL, applicationID),
		fmt.Sprintf("PUT /applications/%s/commands", applicationID)
}

func endpointGuildApplicationCommands(applicationID, guildID string) (uri, routeKey string) {
	return fmt.Sprintf("%s/applications/%s/guilds/%s/commands", baseURL, applicationID, guildID),
		fmt.Sprintf("PUT /applications/%s/guilds/%s/commands", applicationID, guildID)
}
