package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/textlens/internal/model"
)

type palette struct {
	fg      lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	danger  lipgloss.Color
	warn    lipgloss.Color
	border  lipgloss.Color
	primary lipgloss.Color
}

var (
	darkPalette = palette{
		fg:      lipgloss.Color("#F0F0F0"),
		muted:   lipgloss.Color("#8C8C8C"),
		accent:  lipgloss.Color("#C89A3A"),
		danger:  lipgloss.Color("#FF4D4F"),
		warn:    lipgloss.Color("#E0B341"),
		border:  lipgloss.Color("#4A4A4A"),
		primary: lipgloss.Color("#7C6FF0"),
	}
	lightPalette = palette{
		fg:      lipgloss.Color("#1F1F1F"),
		muted:   lipgloss.Color("#6E6E6E"),
		accent:  lipgloss.Color("#9A6B12"),
		danger:  lipgloss.Color("#C62828"),
		warn:    lipgloss.Color("#8A6100"),
		border:  lipgloss.Color("#BDBDBD"),
		primary: lipgloss.Color("#4B3FD1"),
	}
)

type styles struct {
	title         lipgloss.Style
	subtitle      lipgloss.Style
	text          lipgloss.Style
	muted         lipgloss.Style
	warning       lipgloss.Style
	editor        lipgloss.Style
	editorFocused lipgloss.Style
	control       lipgloss.Style
	focused       lipgloss.Style
	button        lipgloss.Style
	buttonFocused lipgloss.Style
	card          lipgloss.Style
	cardValue     lipgloss.Style
	cardLabel     lipgloss.Style
	section       lipgloss.Style
	letter        lipgloss.Style
	bar           lipgloss.Style
	link          lipgloss.Style
	modal         lipgloss.Style
	status        lipgloss.Style
	statusError   lipgloss.Style
}

var themeStyles = map[model.Theme]styles{
	model.ThemeDark:  newStyles(darkPalette),
	model.ThemeLight: newStyles(lightPalette),
}

func stylesFor(t model.Theme) styles {
	if s, ok := themeStyles[t]; ok {
		return s
	}
	return themeStyles[model.ThemeDark]
}

func newStyles(p palette) styles {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).Padding(0, 1)
	button := lipgloss.NewStyle().Foreground(p.fg).Padding(0, 1).Border(lipgloss.RoundedBorder(), true).BorderForeground(p.border)
	return styles{
		title:         lipgloss.NewStyle().Foreground(p.fg).Bold(true),
		subtitle:      lipgloss.NewStyle().Foreground(p.muted),
		text:          lipgloss.NewStyle().Foreground(p.fg),
		muted:         lipgloss.NewStyle().Foreground(p.muted),
		warning:       lipgloss.NewStyle().Foreground(p.warn).Bold(true),
		editor:        box.BorderForeground(p.border),
		editorFocused: box.BorderForeground(p.accent),
		control:       lipgloss.NewStyle().Foreground(p.fg),
		focused:       lipgloss.NewStyle().Foreground(p.accent).Bold(true).Underline(true),
		button:        button,
		buttonFocused: button.BorderForeground(p.accent).Foreground(p.accent).Bold(true),
		card:          box.BorderForeground(p.border).Align(lipgloss.Center),
		cardValue:     lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		cardLabel:     lipgloss.NewStyle().Foreground(p.muted),
		section:       lipgloss.NewStyle().Foreground(p.muted).Bold(true),
		letter:        lipgloss.NewStyle().Foreground(p.fg).Bold(true),
		bar:           lipgloss.NewStyle().Foreground(p.primary),
		link:          lipgloss.NewStyle().Foreground(p.accent).Underline(true),
		modal:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(p.accent).Padding(1, 2),
		status:        lipgloss.NewStyle().Foreground(p.muted),
		statusError:   lipgloss.NewStyle().Foreground(p.danger),
	}
}
