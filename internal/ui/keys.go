package ui

// Action identifies a keyboard-triggered operation. Keys map to actions
// per mode; the dispatch in model.go turns actions into state transitions.
type Action string

const (
	ActionNone           Action = ""
	ActionQuit           Action = "quit"
	ActionDown           Action = "down"
	ActionUp             Action = "up"
	ActionSiblingDown    Action = "sibling_down"
	ActionSiblingUp      Action = "sibling_up"
	ActionToggleCollapse Action = "toggle_collapse"
	ActionCollapseLevel  Action = "collapse_level"
	ActionUncollapseAll  Action = "uncollapse_all"
	ActionTop            Action = "top"
	ActionBottom         Action = "bottom"
	ActionScreenTop      Action = "screen_top"
	ActionScreenMiddle   Action = "screen_middle"
	ActionScreenBottom   Action = "screen_bottom"
	ActionPageDown       Action = "page_down"
	ActionPageUp         Action = "page_up"
	ActionSearch         Action = "search"
	ActionSearchName     Action = "search_name"
	ActionNextMatch      Action = "next_match"
	ActionPrevMatch      Action = "prev_match"
	ActionExpr           Action = "expr"
	ActionPopDocument    Action = "pop_document"
	ActionYank           Action = "yank" // pending: the next key picks the payload
	ActionHelp           Action = "help"
	ActionLeaveSearch    Action = "leave_search"
)

// BrowseKeyBindings maps keys to actions while browsing the document.
var BrowseKeyBindings = map[string]Action{
	"q":         ActionQuit,
	"ctrl+c":    ActionQuit,
	"j":         ActionDown,
	"down":      ActionDown,
	"k":         ActionUp,
	"up":        ActionUp,
	"J":         ActionSiblingDown,
	"K":         ActionSiblingUp,
	"c":         ActionToggleCollapse,
	"C":         ActionCollapseLevel,
	"u":         ActionUncollapseAll,
	"g":         ActionTop,
	"home":      ActionTop,
	"G":         ActionBottom,
	"end":       ActionBottom,
	"H":         ActionScreenTop,
	"M":         ActionScreenMiddle,
	"L":         ActionScreenBottom,
	"space":     ActionPageDown,
	"pgdown":    ActionPageDown,
	"backspace": ActionPageUp,
	"pgup":      ActionPageUp,
	"/":         ActionSearch,
	"s":         ActionSearchName,
	":":         ActionExpr,
	"y":         ActionYank,
	"?":         ActionHelp,
	"esc":       ActionPopDocument,
}

// SearchBrowseKeyBindings maps the keys specific to walking search
// results. Anything not listed falls through to the browse bindings, so
// movement and collapse keep working while matches are highlighted.
var SearchBrowseKeyBindings = map[string]Action{
	"n":   ActionNextMatch,
	"N":   ActionPrevMatch,
	"/":   ActionSearch,
	"esc": ActionLeaveSearch,
}
