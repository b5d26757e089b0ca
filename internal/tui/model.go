// Package tui provides the Bubble Tea text analysis interface.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/textlens/internal/controller"
	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/stats"
	"github.com/verte-zerg/textlens/internal/store"
	"github.com/verte-zerg/textlens/internal/watcher"
)

const (
	editorRows     = 5
	maxEditorWidth = 100
	statusTimeout  = 3 * time.Second
	saveTimeout    = 5 * time.Second
)

// Options configures the TUI.
type Options struct {
	Text   string
	Source string
	Config model.AnalysisConfig
	Theme  model.Theme
	// Store enables ctrl+s snapshots when set.
	Store *store.Store
	// Changes delivers file content in watch mode.
	Changes     <-chan watcher.Event
	WatchErrors <-chan error
	Clipboard   controller.Clipboard
	Logger      *slog.Logger
}

type taskMsg struct{ id int }

type copyDoneMsg struct {
	seq int
	err error
}

type fileChangedMsg watcher.Event

type watchErrMsg struct{ err error }

type snapshotSavedMsg struct {
	id  int64
	err error
}

type statusClearMsg struct{ seq int }

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Model implements the Bubble Tea text analysis UI.
type Model struct {
	ctrl  *controller.Controller
	queue *controller.TaskQueue
	focus *focusRing
	keys  keyMap
	help  help.Model

	editor          textarea.Model
	limit           textinput.Model
	limitWasEnabled bool

	store     *store.Store
	source    string
	clipboard controller.Clipboard
	log       *slog.Logger

	changes     <-chan watcher.Event
	watchErrors <-chan error

	// tick arms a timer that delivers msg after d.
	tick func(d time.Duration, msg tea.Msg) tea.Cmd

	width  int
	height int

	status      string
	statusError bool
	statusSeq   int
}

// NewModel constructs the TUI model with the text area focused.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cb := opts.Clipboard
	if cb == nil {
		cb = systemClipboard{}
	}
	queue := controller.NewTaskQueue()

	editor := textarea.New()
	editor.Placeholder = "Enter your text here..."
	editor.ShowLineNumbers = false
	editor.Prompt = ""
	editor.CharLimit = 0
	editor.SetHeight(editorRows)
	editor.SetWidth(maxEditorWidth)
	editor.SetValue(opts.Text)

	limit := textinput.New()
	limit.Placeholder = "Limit"
	limit.Prompt = ""
	limit.CharLimit = 9
	limit.Width = 8

	m := &Model{
		queue:       queue,
		keys:        defaultKeyMap(),
		help:        help.New(),
		editor:      editor,
		limit:       limit,
		store:       opts.Store,
		source:      opts.Source,
		clipboard:   cb,
		log:         logger,
		changes:     opts.Changes,
		watchErrors: opts.WatchErrors,
		tick:        tickAfter,
	}
	m.focus = &focusRing{m: m}
	m.ctrl = controller.New(controller.Options{
		Text:      opts.Text,
		Config:    opts.Config,
		Theme:     opts.Theme,
		Focus:     m.focus,
		Scheduler: queue,
		Logger:    logger,
	})
	m.syncLimitInput()
	m.focus.Focus(controller.FocusTextInput)
	return m
}

// Controller exposes the interaction state, mainly for tests.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForChange(), m.waitForWatchError())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case taskMsg:
		m.queue.Run(msg.id)
		return m, m.settle()
	case copyDoneMsg:
		m.ctrl.CopyFinished(msg.seq, msg.err)
		return m, m.settle()
	case fileChangedMsg:
		m.ctrl.SetText(msg.Text)
		m.log.Debug("watched file changed", "path", msg.Path, "chars", m.ctrl.Stats().CharCount)
		return m, tea.Batch(m.settle(), m.waitForChange())
	case watchErrMsg:
		m.log.Warn("watch error", "error", msg.err)
		return m, tea.Batch(m.setStatus("Watch error: "+msg.err.Error(), true), m.waitForWatchError())
	case snapshotSavedMsg:
		if msg.err != nil {
			m.log.Error("save snapshot", "error", msg.err)
			return m, m.setStatus("Snapshot failed: "+msg.err.Error(), true)
		}
		m.log.Info("snapshot saved", "id", msg.id)
		return m, m.setStatus(fmt.Sprintf("Snapshot #%d saved", msg.id), false)
	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusError = false
		}
		return m, nil
	default:
		return m.forward(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		m.queue.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		return m, m.saveSnapshot()
	}

	if chord, ok := chordFromKey(msg, m.editing()); ok {
		if m.ctrl.Dispatch(chord) {
			return m, m.settle()
		}
		if chord.Key == "Tab" && !chord.Modified() {
			m.focus.move(chord.Shift)
			return m, m.settle()
		}
	}

	if key.Matches(msg, m.keys.Activate) && !m.editing() {
		m.activate(m.focus.Active())
		return m, m.settle()
	}
	// The overlay is modal.
	if m.ctrl.UI().ShortcutsOpen {
		return m, nil
	}
	return m.forward(msg)
}

// forward hands a message to the focused input and feeds its value back.
func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus.Active() {
	case controller.FocusTextInput:
		m.editor, cmd = m.editor.Update(msg)
		m.ctrl.SetText(m.editor.Value())
	case controller.FocusLimitInput:
		before := m.limit.Value()
		m.limit, cmd = m.limit.Update(msg)
		if m.limit.Value() != before {
			m.ctrl.SetCharLimit(m.limit.Value())
		}
	default:
		return m, nil
	}
	return m, tea.Batch(cmd, m.settle())
}

func (m *Model) activate(id controller.FocusID) {
	switch id {
	case focusExclude:
		m.ctrl.ToggleExcludeSpaces()
	case focusCharLimit:
		m.ctrl.ToggleCharLimit()
	case focusCopy:
		m.ctrl.CopyText()
	case focusClear:
		m.ctrl.ClearText()
	case focusTheme:
		m.ctrl.ToggleTheme()
	case controller.FocusShortcutsBtn:
		m.ctrl.ToggleShortcutsOverlay()
	case focusShowAll, focusSeeMore:
		m.ctrl.ToggleShowAllLetters()
	case controller.FocusOverlayClose:
		m.ctrl.CloseShortcuts()
	}
}

func (m *Model) editing() bool {
	switch m.focus.Active() {
	case controller.FocusTextInput, controller.FocusLimitInput:
		return true
	}
	return false
}

// settle brings widgets in line with the controller and turns deferred work
// into commands.
func (m *Model) settle() tea.Cmd {
	if m.editor.Value() != m.ctrl.Text() {
		m.editor.SetValue(m.ctrl.Text())
	}
	m.syncLimitInput()
	m.focus.repair()

	var cmds []tea.Cmd
	for _, p := range m.queue.Drain() {
		cmds = append(cmds, m.tick(p.Delay, taskMsg{id: p.ID}))
	}
	if job, ok := m.ctrl.PendingCopy(); ok {
		cmds = append(cmds, copyCmd(m.clipboard, job))
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncLimitInput() {
	enabled := m.ctrl.LimitEnabled()
	if enabled && !m.limitWasEnabled {
		if v, ok := m.ctrl.LimitValue(); ok {
			m.limit.SetValue(strconv.Itoa(v))
		} else {
			m.limit.SetValue("")
		}
	}
	m.limitWasEnabled = enabled
}

func (m *Model) applyFocus() {
	if m.focus.Active() == controller.FocusTextInput {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
	if m.focus.Active() == controller.FocusLimitInput {
		m.limit.Focus()
	} else {
		m.limit.Blur()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	w := width - 4
	if w > maxEditorWidth {
		w = maxEditorWidth
	}
	if w < 10 {
		w = 10
	}
	m.editor.SetWidth(w)
	m.help.Width = width
}

func copyCmd(cb controller.Clipboard, job controller.CopyJob) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{seq: job.Seq, err: job.Run(cb)}
	}
}

func (m *Model) saveSnapshot() tea.Cmd {
	if m.store == nil {
		return m.setStatus("History is disabled", true)
	}
	snap, letters := stats.SnapshotOf(m.ctrl.Stats(), m.ctrl.Config(), m.source, time.Now())
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		id, err := st.InsertSnapshot(ctx, snap, letters)
		return snapshotSavedMsg{id: id, err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.status = text
	m.statusError = isErr
	return m.tick(statusTimeout, statusClearMsg{seq: seq})
}

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg(ev)
	}
}

func (m *Model) waitForWatchError() tea.Cmd {
	ch := m.watchErrors
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return watchErrMsg{err: err}
	}
}
