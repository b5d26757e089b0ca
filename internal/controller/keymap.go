package controller

import "strings"

// Action is a named user action.
type Action int

const (
	ActionNone Action = iota
	ActionToggleTheme
	ActionToggleExcludeSpaces
	ActionCopyText
	ActionClearText
	ActionToggleShortcuts
	ActionToggleShowAllLetters
	ActionToggleCharLimit
	ActionCloseShortcuts
)

func (a Action) String() string {
	switch a {
	case ActionToggleTheme:
		return "toggle-theme"
	case ActionToggleExcludeSpaces:
		return "toggle-exclude-spaces"
	case ActionCopyText:
		return "copy-text"
	case ActionClearText:
		return "clear-text"
	case ActionToggleShortcuts:
		return "toggle-shortcuts"
	case ActionToggleShowAllLetters:
		return "toggle-show-all-letters"
	case ActionToggleCharLimit:
		return "toggle-char-limit"
	case ActionCloseShortcuts:
		return "close-shortcuts"
	default:
		return "none"
	}
}

// Chord is a key press as delivered by the host.
type Chord struct {
	// Key is the logical key: a single character, or "Escape" / "Tab".
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	// Editing is set while a text-entry control has focus.
	Editing bool
}

// Modified reports whether a command modifier (Ctrl or Meta) is held.
func (c Chord) Modified() bool {
	return c.Ctrl || c.Meta
}

// Binding maps a key to an action.
type Binding struct {
	Key string
	// Modifier requires Ctrl or Meta.
	Modifier bool
	// Shift requires Shift (for '?').
	Shift bool
	// NeedsNoSelection skips the binding while text is selected.
	NeedsNoSelection bool
	Action           Action
	Label            string
	Description      string
}

// DefaultBindings is the global shortcut table.
var DefaultBindings = []Binding{
	{Key: "l", Modifier: true, Action: ActionToggleTheme, Label: "Ctrl/Alt + L", Description: "Toggle light/dark mode"},
	{Key: "e", Modifier: true, Action: ActionToggleExcludeSpaces, Label: "Ctrl/Alt + E", Description: "Toggle exclude spaces"},
	{Key: "c", Modifier: true, NeedsNoSelection: true, Action: ActionCopyText, Label: "Ctrl/Alt + C", Description: "Copy text"},
	{Key: "x", Modifier: true, NeedsNoSelection: true, Action: ActionClearText, Label: "Ctrl/Alt + X", Description: "Clear text"},
	{Key: "k", Modifier: true, Action: ActionToggleShortcuts, Label: "Ctrl/Alt + K", Description: "Show/hide keyboard shortcuts"},
	{Key: "m", Modifier: true, Action: ActionToggleShowAllLetters, Label: "Alt + M", Description: "Show/hide all letters"},
	{Key: ";", Modifier: true, Action: ActionToggleCharLimit, Label: "Alt + ;", Description: "Toggle character limit"},
	{Key: "?", Shift: true, Action: ActionToggleShortcuts, Label: "Shift + ?", Description: "Show/hide keyboard shortcuts"},
	{Key: "Escape", Action: ActionCloseShortcuts, Label: "Esc", Description: "Close keyboard shortcuts"},
}

// Lookup finds the binding for a chord. Selection and overlay conditions are
// checked by Dispatch.
func Lookup(bindings []Binding, c Chord) (Binding, bool) {
	key := c.Key
	if len([]rune(key)) == 1 {
		key = strings.ToLower(key)
	}
	for _, b := range bindings {
		if b.Key != key {
			continue
		}
		switch {
		case b.Modifier:
			if !c.Modified() {
				continue
			}
		case c.Modified():
			continue
		case b.Shift && !c.Shift:
			continue
		}
		return b, true
	}
	return Binding{}, false
}
