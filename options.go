package relay

import "github.com/corewired/relay/types"

// OptionMap flattens an application command's resolved option tree (a
// flat top-level slice, one level of subcommand/subcommand-group nesting
// beneath it) into a name-keyed map, so callers can look values up directly
// instead of walking Options by hand.
//
// Grounded on the teacher's tools.OptionsToMap.
func OptionMap(options []*types.ApplicationCommandInteractionDataOption) map[string]*types.ApplicationCommandInteractionDataOption {
	m := make(map[string]*types.ApplicationCommandInteractionDataOption, NumOptions(options))
	addOptions(m, options)

	return m
}

func addOptions(m map[string]*types.ApplicationCommandInteractionDataOption, options []*types.ApplicationCommandInteractionDataOption) {
	for _, option := range options {
		m[option.Name] = option
		if len(option.Options) != 0 {
			addOptions(m, option.Options)
		}
	}
}

// NumOptions counts an option tree's options and suboptions, for
// preallocating the map OptionMap builds.
//
// Grounded on the teacher's tools.NumOptions.
func NumOptions(options []*types.ApplicationCommandInteractionDataOption) int {
	amount := len(options)

	for _, option := range options {
		if len(option.Options) != 0 {
			amount += NumOptions(option.Options)
		}
	}

	return amount
}
