package relay

import (
	json "github.com/goccy/go-json"

	"github.com/davecgh/go-spew/spew"
)

// eventFromDispatch converts one Opcode 0 payload into a typed Event.
//
// This replaces the teacher's registry dispatch (disgo.go's (*Client).handle,
// which looks up bot.Handlers.<EventName> and invokes every registered
// callback) with a pure conversion function: it never calls back into
// consumer code, it only builds a value to hand to the event channel. The
// switch-on-name shape is kept because it is the natural and idiomatic way
// to branch on Discord's string-tagged dispatch payloads; what changed is
// what happens in each case.
func eventFromDispatch(name string, op int, data json.RawMessage) Event {
	switch name {
	case dispatchReady:
		var ready Ready
		if err := json.Unmarshal(data, &ready); err != nil {
			return Unknown{Name: name, Op: op, Raw: data}
		}
		return ready

	case dispatchResumed:
		return Resumed{}

	case dispatchGuildCreate:
		var gc struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(data, &gc); err != nil {
			return Unknown{Name: name, Op: op, Raw: data}
		}
		return GuildCreate{ID: gc.ID, Raw: data}

	case dispatchMessageCreate:
		var mc struct {
			ID        string `json:"id"`
			ChannelID string `json:"channel_id"`
			GuildID   string `json:"guild_id"`
			Content   string `json:"content"`
			Author    struct {
				ID string `json:"id"`
			} `json:"author"`
		}
		if err := json.Unmarshal(data, &mc); err != nil {
			return Unknown{Name: name, Op: op, Raw: data}
		}
		return MessageCreate{
			ID:        mc.ID,
			ChannelID: mc.ChannelID,
			GuildID:   mc.GuildID,
			Content:   mc.Content,
			AuthorID:  mc.Author.ID,
			Raw:       data,
		}

	case dispatchPresenceUpdate:
		var pu struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
			GuildID string `json:"guild_id"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(data, &pu); err != nil {
			return Unknown{Name: name, Op: op, Raw: data}
		}
		return PresenceUpdate{UserID: pu.User.ID, GuildID: pu.GuildID, Status: pu.Status, Raw: data}

	case dispatchInteractionCreate:
		var ic struct {
			ID    string `json:"id"`
			Type  int    `json:"type"`
			Token string `json:"token"`
		}
		if err := json.Unmarshal(data, &ic); err != nil {
			return Unknown{Name: name, Op: op, Raw: data}
		}
		return InteractionCreate{ID: ic.ID, Type: ic.Type, Token: ic.Token, Raw: data}

	default:
		return Unknown{Name: name, Op: op, Raw: data}
	}
}

// dumpUnknown renders an Unknown event with go-spew when debug mode is on
// (SPEC_FULL.md §6), so a developer extending this package can see the full
// shape of an event it doesn't yet model without reaching for a debugger.
func dumpUnknown(u Unknown) string {
	var v interface{}
	if err := json.Unmarshal(u.Raw, &v); err != nil {
		return spew.Sdump(u)
	}

	return spew.Sdump(struct {
		Name string
		Op   int
		Data interface{}
	}{u.Name, u.Op, v})
}
