// Package controller owns the interactive state of the text analyser: the
// buffer, analysis settings, presentation toggles, the shortcuts overlay with
// its focus trap, and the transient copy feedback.
//
// The controller is single-threaded. Every method must be called from the
// host's event loop; asynchronous work (timers, clipboard writes) is handed
// back to the host and its completion is reported through Run/CopyFinished.
package controller

import (
	"log/slog"
	"time"
	"unicode"

	"github.com/verte-zerg/textlens/internal/model"
	"github.com/verte-zerg/textlens/internal/stats"
)

// Delays for deferred work.
const (
	FocusDelay        = 10 * time.Millisecond
	OverlayFocusDelay = 50 * time.Millisecond
	CopyFeedbackDelay = 2 * time.Second
)

// SampleText seeds the buffer when no input is given.
const SampleText = "Design is the silent ambassador of your brand. Simplicity is key to effective communication, creating clarity in every interaction. A great design transforms complex ideas into elegant solutions, making them easy to understand. It blends aesthetics and functionality seamlessly."

// CopyFeedback is the transient state of the copy control.
type CopyFeedback int

const (
	CopyIdle CopyFeedback = iota
	CopyCopied
	CopyFailed
)

// Label is the text shown on the copy control.
func (f CopyFeedback) Label() string {
	switch f {
	case CopyCopied:
		return "Copied!"
	case CopyFailed:
		return "Copy failed"
	default:
		return "Copy"
	}
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// CopyJob is a clipboard write the host performs off the event loop.
type CopyJob struct {
	Seq  int
	Text string
}

// Run performs the write.
func (j CopyJob) Run(cb Clipboard) error {
	return cb.WriteAll(j.Text)
}

// Options configures a Controller.
type Options struct {
	Text      string
	Config    model.AnalysisConfig
	Theme     model.Theme
	Focus     FocusQuery
	Selection SelectionQuery
	Scheduler Scheduler
	Bindings  []Binding
	Logger    *slog.Logger
}

// Controller is the interaction state machine.
type Controller struct {
	focus     FocusQuery
	selection SelectionQuery
	sched     Scheduler
	bindings  []Binding
	log       *slog.Logger

	text          string
	excludeSpaces bool
	wpm           int
	limitEnabled  bool
	limitValue    *int

	ui      model.UIState
	derived model.DerivedStats

	opener            FocusID
	cancelOverlayMove func()
	// restorePending is set between a close and its focus restore.
	restorePending bool

	copySeq        int
	pendingCopy    *CopyJob
	copyFeedback   CopyFeedback
	cancelFeedback func()

	taskSeq int
	cancels map[int]func()
	closed  bool
}

// New returns a controller with stats computed for the initial text.
func New(opts Options) *Controller {
	c := &Controller{
		focus:         opts.Focus,
		selection:     opts.Selection,
		sched:         opts.Scheduler,
		bindings:      opts.Bindings,
		log:           opts.Logger,
		text:          opts.Text,
		excludeSpaces: opts.Config.ExcludeSpaces,
		wpm:           opts.Config.WordsPerMinute,
		ui:            model.UIState{Theme: opts.Theme},
		cancels:       map[int]func(){},
	}
	if opts.Config.CharLimit != nil {
		v := *opts.Config.CharLimit
		c.limitEnabled = true
		c.limitValue = &v
	}
	if c.selection == nil {
		c.selection = NoSelection{}
	}
	if c.sched == nil {
		c.sched = NewTaskQueue()
	}
	if c.bindings == nil {
		c.bindings = DefaultBindings
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	c.recompute()
	return c
}

// SetFocusQuery attaches the host focus capability after construction.
func (c *Controller) SetFocusQuery(fq FocusQuery) {
	c.focus = fq
}

// Text returns the current buffer.
func (c *Controller) Text() string { return c.text }

// Stats returns the derived statistics for the current buffer and config.
func (c *Controller) Stats() model.DerivedStats { return c.derived }

// UI returns the presentation state.
func (c *Controller) UI() model.UIState { return c.ui }

// Bindings returns the shortcut table in use.
func (c *Controller) Bindings() []Binding { return c.bindings }

// CopyFeedback returns the copy control state.
func (c *Controller) CopyFeedback() CopyFeedback { return c.copyFeedback }

// Config returns the effective analysis config. CharLimit is nil unless the
// limit is enabled and has a value.
func (c *Controller) Config() model.AnalysisConfig {
	cfg := model.AnalysisConfig{ExcludeSpaces: c.excludeSpaces, WordsPerMinute: c.wpm}
	if c.limitEnabled && c.limitValue != nil {
		v := *c.limitValue
		cfg.CharLimit = &v
	}
	return cfg
}

// LimitEnabled reports whether the character limit feature is on.
func (c *Controller) LimitEnabled() bool { return c.limitEnabled }

// LimitValue returns the stored limit value, which survives disabling.
func (c *Controller) LimitValue() (int, bool) {
	if c.limitValue == nil {
		return 0, false
	}
	return *c.limitValue, true
}

// SetText replaces the buffer.
func (c *Controller) SetText(text string) {
	if text == c.text {
		return
	}
	c.text = text
	c.recompute()
}

// ToggleTheme flips between light and dark.
func (c *Controller) ToggleTheme() {
	c.ui.Theme = c.ui.Theme.Toggle()
}

// ToggleExcludeSpaces flips whitespace exclusion for the character count.
func (c *Controller) ToggleExcludeSpaces() {
	c.excludeSpaces = !c.excludeSpaces
	c.recompute()
}

// ToggleShowAllLetters flips between the top rows and the full distribution.
func (c *Controller) ToggleShowAllLetters() {
	c.ui.ShowAllLetters = !c.ui.ShowAllLetters
}

// ClearText empties the buffer and returns focus to the text input.
func (c *Controller) ClearText() {
	c.SetText("")
	c.scheduleFocus(FocusDelay, FocusTextInput)
}

// ToggleCharLimit enables or disables the limit. Enabling seeds the default
// value when none exists and focuses the limit input.
func (c *Controller) ToggleCharLimit() {
	c.limitEnabled = !c.limitEnabled
	if c.limitEnabled {
		if c.limitValue == nil {
			v := model.DefaultCharLimit
			c.limitValue = &v
		}
		c.scheduleFocus(FocusDelay, FocusLimitInput)
	}
	c.recompute()
}

// SetCharLimit parses raw input the way a number field does: a leading
// integer is accepted, anything else unsets the value.
func (c *Controller) SetCharLimit(raw string) {
	if v, ok := parseLeadingInt(raw); ok {
		c.limitValue = &v
	} else {
		c.limitValue = nil
	}
	c.recompute()
}

// ToggleShortcutsOverlay opens or closes the shortcuts overlay.
func (c *Controller) ToggleShortcutsOverlay() {
	if c.ui.ShortcutsOpen {
		c.closeOverlay()
		return
	}
	c.openOverlay()
}

// CloseShortcuts closes the overlay if it is open.
func (c *Controller) CloseShortcuts() {
	if c.ui.ShortcutsOpen {
		c.closeOverlay()
	}
}

// openOverlay records the opener unless a previous close has not yet
// restored focus, in which case that close's opener is still the one to
// return to.
func (c *Controller) openOverlay() {
	if !c.restorePending {
		c.opener = c.pageFocus()
	}
	c.restorePending = false
	c.ui.ShortcutsOpen = true
	c.ui.FocusTrapActive = true
	c.moveOverlayFocus(func() {
		c.focusFirst(FocusOverlayClose)
	})
}

func (c *Controller) closeOverlay() {
	c.ui.ShortcutsOpen = false
	c.ui.FocusTrapActive = false
	target := c.opener
	c.restorePending = true
	c.moveOverlayFocus(func() {
		c.restorePending = false
		// The opener may have unmounted while the overlay was open.
		c.focusFirst(target, FocusShortcutsBtn, FocusTextInput)
	})
}

// pageFocus returns the active control if it belongs to the page.
func (c *Controller) pageFocus() FocusID {
	if c.focus == nil {
		return FocusShortcutsBtn
	}
	active := c.focus.Active()
	if active == FocusNone || indexOf(c.focus.Focusable(ScopePage), active) < 0 {
		return FocusShortcutsBtn
	}
	return active
}

func (c *Controller) moveOverlayFocus(task func()) {
	if c.cancelOverlayMove != nil {
		c.cancelOverlayMove()
	}
	c.cancelOverlayMove = c.schedule(OverlayFocusDelay, task)
}

// HandleTab applies the overlay focus trap. It returns true when the key was
// consumed; false means the host should move focus normally.
func (c *Controller) HandleTab(shift bool) bool {
	if !c.ui.ShortcutsOpen || !c.ui.FocusTrapActive || c.focus == nil {
		return false
	}
	return trapTab(c.focus, c.focus.Focusable(ScopeOverlay), shift)
}

// Dispatch routes a key chord to its action. It returns true when the key was
// handled and default processing must be suppressed.
func (c *Controller) Dispatch(chord Chord) bool {
	if chord.Key == "Tab" && !chord.Modified() {
		return c.HandleTab(chord.Shift)
	}
	b, ok := Lookup(c.bindings, chord)
	if !ok {
		return false
	}
	if b.NeedsNoSelection && c.selection.HasSelection() {
		return false
	}
	if !b.Modifier && chord.Editing && b.Action == ActionToggleShortcuts {
		return false
	}
	if b.Action == ActionCloseShortcuts && !c.ui.ShortcutsOpen {
		return false
	}
	c.log.Debug("shortcut", "action", b.Action.String(), "key", chord.Key)
	return c.Perform(b.Action)
}

// Perform runs a named action. Copy returns the job through PendingCopy.
func (c *Controller) Perform(a Action) bool {
	switch a {
	case ActionToggleTheme:
		c.ToggleTheme()
	case ActionToggleExcludeSpaces:
		c.ToggleExcludeSpaces()
	case ActionCopyText:
		c.CopyText()
	case ActionClearText:
		c.ClearText()
	case ActionToggleShortcuts:
		c.ToggleShortcutsOverlay()
	case ActionCloseShortcuts:
		c.CloseShortcuts()
	case ActionToggleShowAllLetters:
		c.ToggleShowAllLetters()
	case ActionToggleCharLimit:
		c.ToggleCharLimit()
	default:
		return false
	}
	return true
}

// CopyText queues a clipboard write of the buffer. The host collects it with
// PendingCopy and reports the outcome through CopyFinished.
func (c *Controller) CopyText() CopyJob {
	c.copySeq++
	job := CopyJob{Seq: c.copySeq, Text: c.text}
	c.pendingCopy = &job
	return job
}

// PendingCopy returns and clears the most recent unstarted copy job.
func (c *Controller) PendingCopy() (CopyJob, bool) {
	if c.pendingCopy == nil {
		return CopyJob{}, false
	}
	job := *c.pendingCopy
	c.pendingCopy = nil
	return job, true
}

// CopyFinished records the result of a clipboard write and schedules the
// feedback to revert. Results of superseded jobs are ignored.
func (c *Controller) CopyFinished(seq int, err error) {
	if c.closed || seq != c.copySeq {
		return
	}
	if err != nil {
		c.log.Warn("clipboard write failed", "error", err)
		c.copyFeedback = CopyFailed
	} else {
		c.copyFeedback = CopyCopied
	}
	if c.cancelFeedback != nil {
		c.cancelFeedback()
	}
	c.cancelFeedback = c.schedule(CopyFeedbackDelay, func() {
		c.copyFeedback = CopyIdle
		c.cancelFeedback = nil
	})
}

// Close cancels every deferred task. The controller ignores later copy
// results and schedules nothing further.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for id, cancel := range c.cancels {
		cancel()
		delete(c.cancels, id)
	}
}

// schedule tracks a task until it runs or is cancelled so Close can drop it.
func (c *Controller) schedule(delay time.Duration, task func()) func() {
	if c.closed {
		return func() {}
	}
	c.taskSeq++
	id := c.taskSeq
	cancel := c.sched.Schedule(delay, func() {
		delete(c.cancels, id)
		task()
	})
	c.cancels[id] = cancel
	return func() {
		delete(c.cancels, id)
		cancel()
	}
}

func (c *Controller) scheduleFocus(delay time.Duration, target FocusID) func() {
	return c.schedule(delay, func() {
		c.focusFirst(target)
	})
}

// focusFirst focuses the first mounted target.
func (c *Controller) focusFirst(targets ...FocusID) {
	if c.focus == nil {
		return
	}
	for _, target := range targets {
		if target == FocusNone {
			continue
		}
		if c.focus.Focus(target) {
			return
		}
		c.log.Debug("focus target not mounted", "target", string(target))
	}
}

func (c *Controller) recompute() {
	c.derived = stats.Recompute(c.text, c.Config())
}

// parseLeadingInt accepts optional leading whitespace, an optional sign and
// at least one digit; trailing characters are ignored.
func parseLeadingInt(raw string) (int, bool) {
	runes := []rune(raw)
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	neg := false
	if i < len(runes) && (runes[i] == '+' || runes[i] == '-') {
		neg = runes[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
		if n > (1<<31-1)/10 {
			return 0, false
		}
		n = n*10 + int(runes[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
