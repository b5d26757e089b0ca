package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/textlens/internal/controller"
	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/stats"
)

const defaultViewWidth = 80

// View implements tea.Model.
func (m *Model) View() string {
	s := stylesFor(m.ctrl.UI().Theme)
	if m.ctrl.UI().ShortcutsOpen {
		return m.renderOverlay(s)
	}
	width := m.contentWidth()

	sections := []string{
		m.renderHeader(s),
		m.renderEditor(s),
	}
	if warning := m.renderLimitWarning(s, width); warning != "" {
		sections = append(sections, warning)
	}
	sections = append(sections,
		m.renderControls(s),
		m.renderButtons(s),
		m.renderCards(s, width),
		m.renderLetters(s, width),
	)
	if m.status != "" {
		style := s.status
		if m.statusError {
			style = s.statusError
		}
		sections = append(sections, style.Render(wrapText(m.status, width)))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return defaultViewWidth
	}
	if m.width > maxEditorWidth+4 {
		return maxEditorWidth + 4
	}
	return m.width
}

func (m *Model) renderHeader(s styles) string {
	title := s.title.Render("Character Counter")
	sub := s.subtitle.Render("Analyze your text in real-time.")
	return title + "  " + sub
}

func (m *Model) renderEditor(s styles) string {
	style := s.editor
	if m.focus.Active() == controller.FocusTextInput {
		style = s.editorFocused
	}
	return style.Render(m.editor.View())
}

func (m *Model) renderLimitWarning(s styles, width int) string {
	st := m.ctrl.Stats()
	if !st.ExceedsLimit {
		return ""
	}
	limit, _ := m.ctrl.LimitValue()
	return s.warning.Render(wrapText(fmt.Sprintf("Your text exceeds the character limit of %d!", limit), width))
}

func (m *Model) renderControls(s styles) string {
	cfg := m.ctrl.Config()
	parts := []string{
		m.checkbox(s, focusExclude, cfg.ExcludeSpaces, "Exclude Spaces"),
		m.checkbox(s, focusCharLimit, m.ctrl.LimitEnabled(), "Set Character Limit"),
	}
	if m.ctrl.LimitEnabled() {
		input := m.limit.View()
		if m.focus.Active() == controller.FocusLimitInput {
			input = s.focused.Render("›") + input
		}
		parts = append(parts, input+s.muted.Render(" chars"))
	}
	parts = append(parts, s.muted.Render("Approx. reading time: "+m.ctrl.Stats().ReadingTime))
	return strings.Join(parts, "   ")
}

func (m *Model) checkbox(s styles, id controller.FocusID, checked bool, label string) string {
	mark := "[ ]"
	if checked {
		mark = "[x]"
	}
	text := mark + " " + label
	if m.focus.Active() == id {
		return s.focused.Render(text)
	}
	return s.control.Render(text)
}

func (m *Model) renderButtons(s styles) string {
	themeLabel := "Light mode"
	if m.ctrl.UI().Theme == model.ThemeLight {
		themeLabel = "Dark mode"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.button(s, focusCopy, m.ctrl.CopyFeedback().Label()),
		m.button(s, focusClear, "Clear"),
		m.button(s, focusTheme, themeLabel),
		m.button(s, controller.FocusShortcutsBtn, "Shortcuts"),
	)
}

func (m *Model) button(s styles, id controller.FocusID, label string) string {
	if m.focus.Active() == id {
		return s.buttonFocused.Render(label)
	}
	return s.button.Render(label)
}

func (m *Model) renderCards(s styles, width int) string {
	st := m.ctrl.Stats()
	cardWidth := width/3 - 2
	if cardWidth < 12 {
		cardWidth = 12
	}
	card := func(value int, label string) string {
		body := s.cardValue.Render(fmt.Sprintf("%d", value)) + "\n" + s.cardLabel.Render(truncate(label, cardWidth))
		return s.card.Width(cardWidth).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(st.CharCount, "Total Characters"),
		card(st.WordCount, "Word Count"),
		card(st.SentenceCount, "Sentence Count"),
	)
}

func (m *Model) renderLetters(s styles, width int) string {
	st := m.ctrl.Stats()
	ui := m.ctrl.UI()
	toggleLabel := "Show All"
	if ui.ShowAllLetters {
		toggleLabel = "Show Less"
	}
	lines := []string{s.section.Render("Letter Density") + "  " + m.button(s, focusShowAll, toggleLabel)}

	visible := stats.VisibleLetters(st.LetterFrequencies, ui.ShowAllLetters)
	if len(visible) == 0 {
		lines = append(lines, s.muted.Render("No letters yet. Start typing to see letter density."))
		return strings.Join(lines, "\n")
	}
	counts := make([]string, len(visible))
	for i, f := range visible {
		counts[i] = fmt.Sprintf("%d (%s)", f.Count, f.Percentage)
	}
	countWidth := columnWidth(counts)
	barWidth := width - countWidth - 6
	if barWidth < 10 {
		barWidth = 10
	}
	for i, f := range visible {
		letter := s.letter.Render(padRight(strings.ToUpper(f.Letter), 2))
		bar := s.bar.Render(padRight(stats.Bar(f.Percentage, barWidth), barWidth))
		lines = append(lines, letter+" "+bar+" "+s.muted.Render(counts[i]))
	}
	if !ui.ShowAllLetters && len(st.LetterFrequencies) > stats.CollapsedLetters {
		link := s.link.Render("See more")
		if m.focus.Active() == focusSeeMore {
			link = s.focused.Render("› See more")
		}
		lines = append(lines, link)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderOverlay(s styles) string {
	bindings := m.ctrl.Bindings()
	labels := make([]string, len(bindings))
	for i, b := range bindings {
		labels[i] = b.Label
	}
	labelWidth := columnWidth(append(labels, "Shortcut"))

	title := s.title.Render("Keyboard Shortcuts")
	if m.focus.Active() == focusOverlayTitle {
		title = s.focused.Render("Keyboard Shortcuts")
	}
	lines := []string{
		title + "  " + m.button(s, controller.FocusOverlayClose, "Close"),
		"",
		s.section.Render(padRight("Shortcut", labelWidth) + "  Description"),
	}
	for i, b := range bindings {
		row := padRight(b.Label, labelWidth) + "  " + b.Description
		if m.focus.Active() == shortcutRowID(i) {
			lines = append(lines, s.focused.Render(row))
			continue
		}
		lines = append(lines, s.text.Render(row))
	}
	lines = append(lines, "", s.muted.Render("esc to close"))
	box := s.modal.Render(strings.Join(lines, "\n"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
