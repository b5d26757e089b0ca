package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/textlens/internal/controller"
)

// keyMap holds the host-level bindings. Analysis shortcuts are owned by the
// controller and only appear here for help rendering.
type keyMap struct {
	Quit      key.Binding
	Save      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Activate  key.Binding
	Shortcuts key.Binding
	Theme     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save snapshot"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next control"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous control"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "activate"),
		),
		Shortcuts: key.NewBinding(
			key.WithKeys("ctrl+k", "alt+k"),
			key.WithHelp("?/ctrl+k", "shortcuts"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+l", "alt+l"),
			key.WithHelp("ctrl+l", "theme"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shortcuts, k.Next, k.Activate, k.Save, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate},
		{k.Shortcuts, k.Theme},
		{k.Save, k.Quit},
	}
}

// chordFromKey translates a Bubble Tea key into a controller chord. Alt
// stands in for the command key; terminals cannot send ctrl+m or ctrl+;.
func chordFromKey(msg tea.KeyMsg, editing bool) (controller.Chord, bool) {
	s := msg.String()
	switch s {
	case "esc":
		return controller.Chord{Key: "Escape", Editing: editing}, true
	case "tab":
		return controller.Chord{Key: "Tab", Editing: editing}, true
	case "shift+tab":
		return controller.Chord{Key: "Tab", Shift: true, Editing: editing}, true
	}
	if rest, ok := strings.CutPrefix(s, "alt+"); ok {
		if len([]rune(rest)) != 1 {
			return controller.Chord{}, false
		}
		return controller.Chord{Key: rest, Meta: true, Editing: editing}, true
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		if len([]rune(rest)) != 1 {
			return controller.Chord{}, false
		}
		return controller.Chord{Key: rest, Ctrl: true, Editing: editing}, true
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		r := msg.Runes[0]
		return controller.Chord{Key: string(r), Shift: r == '?', Editing: editing}, true
	}
	return controller.Chord{}, false
}
