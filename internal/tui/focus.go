package tui

import (
	"fmt"

	"github.com/verte-zerg/textlens/internal/controller"
	"github.com/verte-zerg/textlens/internal/stats"
)

// Page and overlay controls beyond the ones the controller targets itself.
const (
	focusExclude      controller.FocusID = "exclude-spaces"
	focusCharLimit    controller.FocusID = "char-limit"
	focusCopy         controller.FocusID = "copy-button"
	focusClear        controller.FocusID = "clear-button"
	focusTheme        controller.FocusID = "theme-button"
	focusShowAll      controller.FocusID = "show-all"
	focusSeeMore      controller.FocusID = "see-more"
	focusOverlayTitle controller.FocusID = "overlay-title"
)

func shortcutRowID(i int) controller.FocusID {
	return controller.FocusID(fmt.Sprintf("shortcut-%d", i))
}

// focusRing tracks the focused control and implements controller.FocusQuery
// over what the model currently renders.
type focusRing struct {
	m      *Model
	active controller.FocusID
	// inOverlay is set while the active control belongs to the overlay.
	inOverlay bool
}

// Focusable implements controller.FocusQuery.
func (f *focusRing) Focusable(scope controller.Scope) []controller.FocusID {
	c := f.m.ctrl
	if scope == controller.ScopeOverlay {
		if !c.UI().ShortcutsOpen {
			return nil
		}
		ring := []controller.FocusID{focusOverlayTitle, controller.FocusOverlayClose}
		for i := range c.Bindings() {
			ring = append(ring, shortcutRowID(i))
		}
		return ring
	}
	ring := []controller.FocusID{controller.FocusTextInput, focusExclude, focusCharLimit}
	if c.LimitEnabled() {
		ring = append(ring, controller.FocusLimitInput)
	}
	ring = append(ring, focusCopy, focusClear, focusTheme, controller.FocusShortcutsBtn, focusShowAll)
	if !c.UI().ShowAllLetters && len(c.Stats().LetterFrequencies) > stats.CollapsedLetters {
		ring = append(ring, focusSeeMore)
	}
	return ring
}

// Active implements controller.FocusQuery.
func (f *focusRing) Active() controller.FocusID {
	return f.active
}

// Focus implements controller.FocusQuery.
func (f *focusRing) Focus(id controller.FocusID) bool {
	if !f.mounted(id) {
		return false
	}
	f.active = id
	f.inOverlay = f.m.ctrl.UI().ShortcutsOpen && indexOf(f.Focusable(controller.ScopeOverlay), id) >= 0
	f.m.applyFocus()
	return true
}

func (f *focusRing) mounted(id controller.FocusID) bool {
	return indexOf(f.Focusable(controller.ScopePage), id) >= 0 ||
		indexOf(f.Focusable(controller.ScopeOverlay), id) >= 0
}

// move advances focus within the current scope, wrapping at both ends.
func (f *focusRing) move(back bool) {
	scope := controller.ScopePage
	if f.m.ctrl.UI().ShortcutsOpen {
		scope = controller.ScopeOverlay
	}
	ring := f.Focusable(scope)
	if len(ring) == 0 {
		return
	}
	idx := indexOf(ring, f.active)
	switch {
	case idx < 0 && back:
		idx = len(ring) - 1
	case idx < 0:
		idx = 0
	case back:
		idx = (idx - 1 + len(ring)) % len(ring)
	default:
		idx = (idx + 1) % len(ring)
	}
	f.Focus(ring[idx])
}

// repair moves focus off a control that is no longer rendered.
func (f *focusRing) repair() {
	if f.active == controller.FocusNone || f.mounted(f.active) {
		return
	}
	if f.inOverlay && f.m.ctrl.UI().ShortcutsOpen {
		return
	}
	fallback := controller.FocusTextInput
	switch {
	case f.inOverlay:
		// Parked on the shortcuts button until the controller restores the opener.
		fallback = controller.FocusShortcutsBtn
	case f.active == controller.FocusLimitInput:
		fallback = focusCharLimit
	case f.active == focusSeeMore:
		fallback = focusShowAll
	}
	f.inOverlay = false
	if !f.Focus(fallback) {
		f.Focus(controller.FocusTextInput)
	}
}

func indexOf(ring []controller.FocusID, id controller.FocusID) int {
	for i, candidate := range ring {
		if candidate == id {
			return i
		}
	}
	return -1
}
