package controller

// FocusID names a focusable control in the host.
type FocusID string

// Controls the controller moves focus to.
const (
	FocusNone         FocusID = ""
	FocusTextInput    FocusID = "text-input"
	FocusLimitInput   FocusID = "limit-input"
	FocusShortcutsBtn FocusID = "shortcuts-button"
	FocusOverlayClose FocusID = "overlay-close"
)

// Scope selects a group of focusable controls.
type Scope int

const (
	ScopePage Scope = iota
	ScopeOverlay
)

// FocusQuery gives access to the host's focus state.
type FocusQuery interface {
	// Focusable returns the mounted focusable controls of a scope in tab order.
	Focusable(scope Scope) []FocusID
	// Active returns the focused control, or FocusNone.
	Active() FocusID
	// Focus moves focus to id. It returns false when id is not mounted.
	Focus(id FocusID) bool
}

// SelectionQuery reports whether the host has a non-empty text selection.
type SelectionQuery interface {
	HasSelection() bool
}

// NoSelection is a SelectionQuery for hosts without text selection.
type NoSelection struct{}

// HasSelection implements SelectionQuery.
func (NoSelection) HasSelection() bool { return false }

// trapTab constrains Tab/Shift+Tab to the given ring. It returns true when it
// moved focus itself and the host must not apply its default Tab handling.
func trapTab(fq FocusQuery, ring []FocusID, shift bool) bool {
	if len(ring) == 0 {
		return true
	}
	first := ring[0]
	last := ring[len(ring)-1]
	active := fq.Active()
	if indexOf(ring, active) < 0 {
		if shift {
			fq.Focus(last)
		} else {
			fq.Focus(first)
		}
		return true
	}
	switch {
	case shift && active == first:
		fq.Focus(last)
		return true
	case !shift && active == last:
		fq.Focus(first)
		return true
	}
	return false
}

func indexOf(ring []FocusID, id FocusID) int {
	for i, f := range ring {
		if f == id {
			return i
		}
	}
	return -1
}
