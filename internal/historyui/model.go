// Package historyui provides the Bubble Tea snapshot history browser.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/stats"
	"github.com/verte-zerg/textlens/internal/store"
)

const (
	tabOverview = iota
	tabSnapshots
	tabLetters
)

const (
	letterBarWidth = 20
	loadTimeout    = 5 * time.Second
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the history browser.
type Model struct {
	store *store.Store
	cfg   model.HistoryConfig

	history stats.History
	errMsg  string

	tabs        []string
	activeTab   int
	overview    viewport.Model
	snapTable   table.Model
	letterTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a history browser and loads the first page of data.
func NewModel(st *store.Store, cfg model.HistoryConfig) *Model {
	m := &Model{
		store:       st,
		cfg:         cfg,
		tabs:        []string{"Overview", "Snapshots", "Letters"},
		overview:    viewport.New(0, 0),
		snapTable:   newTable(snapshotColumns()),
		letterTable: newTable(letterColumns()),
	}
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
	}
	m.setInputsFromConfig()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "r":
			m.refresh()
			return m, nil
		case "g", "home":
			m.gotoEdge(true)
			return m, nil
		case "G", "end":
			m.gotoEdge(false)
			return m, nil
		}
		return m.forward(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// History returns the snapshots currently shown.
func (m *Model) History() stats.History {
	return m.history
}

func (m *Model) forward(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabSnapshots:
		m.snapTable, cmd = m.snapTable.Update(msg)
	case tabLetters:
		m.letterTable, cmd = m.letterTable.Update(msg)
	default:
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

func (m *Model) gotoEdge(top bool) {
	switch m.activeTab {
	case tabSnapshots:
		if top {
			m.snapTable.GotoTop()
		} else {
			m.snapTable.GotoBottom()
		}
	case tabLetters:
		if top {
			m.letterTable.GotoTop()
		} else {
			m.letterTable.GotoBottom()
		}
	default:
		if top {
			m.overview.GotoTop()
		} else {
			m.overview.GotoBottom()
		}
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.snapTable.Blur()
	m.letterTable.Blur()
	switch m.activeTab {
	case tabSnapshots:
		m.snapTable.Focus()
	case tabLetters:
		m.letterTable.Focus()
	}
}

func (m *Model) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	h, err := stats.BuildHistory(ctx, m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.history = stats.History{}
		m.overview.SetContent("Failed to load history.")
		m.snapTable.SetRows(nil)
		m.letterTable.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.history = h
	m.snapTable.SetRows(snapshotRows(h.Snapshots))
	if len(h.Snapshots) > 0 {
		m.snapTable.GotoBottom()
	}
	m.letterTable.SetRows(letterRows(stats.LettersFromTotals(h.LetterTotals)))
	m.letterTable.GotoTop()
	m.renderOverview()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.history.Snapshots, width))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.snapTable.SetWidth(m.width)
	m.snapTable.SetHeight(bodyHeight)
	m.letterTable.SetWidth(m.width)
	m.letterTable.SetHeight(bodyHeight)
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
	m.renderOverview()
}

func (m *Model) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := truncateLine(fmt.Sprintf("Filters: since=%s  last=%s  snapshots=%d", since, last, len(m.history.Snapshots)), m.width)
	return tabs + "\n" + headerStyle.Render(summary)
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Filters (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.errMsg == "" && len(m.history.Snapshots) == 0 {
		return "No snapshots found."
	}
	switch m.activeTab {
	case tabSnapshots:
		return tableMutedStyle.Render(m.snapTable.View())
	case tabLetters:
		if len(m.history.LetterTotals) == 0 {
			return "No letters recorded."
		}
		return tableMutedStyle.Render(m.letterTable.View())
	}
	return m.overview.View()
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Filters: /  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(snaps []model.Snapshot, width int) string {
	if len(snaps) == 0 {
		return "No snapshots found."
	}
	var totalWords, totalChars, maxWords, overLimit int
	words := make([]float64, len(snaps))
	chars := make([]float64, len(snaps))
	for i, s := range snaps {
		totalWords += s.WordCount
		totalChars += s.CharCount
		if s.WordCount > maxWords {
			maxWords = s.WordCount
		}
		if s.ExceedsLimit {
			overLimit++
		}
		words[i] = float64(s.WordCount)
		chars[i] = float64(s.CharCount)
	}
	count := float64(len(snaps))
	cards := []string{
		metricCard("Snapshots", strconv.Itoa(len(snaps))),
		metricCard("Avg Words", fmt.Sprintf("%.1f", float64(totalWords)/count)),
		metricCard("Max Words", strconv.Itoa(maxWords)),
		metricCard("Avg Chars", fmt.Sprintf("%.1f", float64(totalChars)/count)),
		metricCard("Over Limit", strconv.Itoa(overLimit)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	trends := []string{
		headerStyle.Render("Words trend: ") + "[" + stats.Sparkline(words) + "]",
		headerStyle.Render("Chars trend: ") + "[" + stats.Sparkline(chars) + "]",
	}
	return summary + "\n\n" + strings.Join(trends, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func snapshotColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Saved", Width: 16},
		{Title: "Source", Width: 20},
		{Title: "Chars", Width: 7},
		{Title: "Words", Width: 7},
		{Title: "Sentences", Width: 9},
		{Title: "Reading", Width: 20},
		{Title: "Limit", Width: 6},
	}
}

func snapshotRows(snaps []model.Snapshot) []table.Row {
	rows := make([]table.Row, 0, len(snaps))
	for _, s := range snaps {
		limit := "-"
		if s.CharLimit != nil {
			limit = strconv.Itoa(*s.CharLimit)
			if s.ExceedsLimit {
				limit += "!"
			}
		}
		chars := strconv.Itoa(s.CharCount)
		if s.ExcludeSpaces {
			chars += "*"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncateLine(s.Source, 20),
			chars,
			strconv.Itoa(s.WordCount),
			strconv.Itoa(s.SentenceCount),
			s.ReadingTime,
			limit,
		})
	}
	return rows
}

func letterColumns() []table.Column {
	return []table.Column{
		{Title: "Letter", Width: 6},
		{Title: "Count", Width: 8},
		{Title: "Share", Width: 8},
		{Title: "", Width: letterBarWidth},
	}
}

func letterRows(letters []model.LetterStat) []table.Row {
	rows := make([]table.Row, 0, len(letters))
	for _, l := range letters {
		rows = append(rows, table.Row{
			strings.ToUpper(l.Letter),
			strconv.Itoa(l.Count),
			l.Percentage,
			stats.Bar(l.Percentage, letterBarWidth),
		})
	}
	return rows
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if m.cfg.Since != nil {
		m.filterInputs[0].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[0].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[1].SetValue("")
	}
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(m.filterInputs[0].Value(), m.filterInputs[1].Value())
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func parseFilter(sinceInput, lastInput string) (model.HistoryConfig, error) {
	var cfg model.HistoryConfig
	if s := strings.TrimSpace(sinceInput); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	if s := strings.TrimSpace(lastInput); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 0 {
			return model.HistoryConfig{}, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}
	return cfg, nil
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
