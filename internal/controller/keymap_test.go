package controller

import "testing"

func TestLookupModifiers(t *testing.T) {
	cases := []struct {
		chord Chord
		want  Action
		ok    bool
	}{
		{Chord{Key: "e", Ctrl: true}, ActionToggleExcludeSpaces, true},
		{Chord{Key: "E", Meta: true}, ActionToggleExcludeSpaces, true},
		{Chord{Key: ";", Meta: true}, ActionToggleCharLimit, true},
		{Chord{Key: "k", Ctrl: true, Shift: true}, ActionToggleShortcuts, true},
		{Chord{Key: "?", Shift: true}, ActionToggleShortcuts, true},
		{Chord{Key: "?"}, ActionNone, false},
		{Chord{Key: "?", Ctrl: true, Shift: true}, ActionNone, false},
		{Chord{Key: "Escape"}, ActionCloseShortcuts, true},
		{Chord{Key: "Escape", Ctrl: true}, ActionNone, false},
		{Chord{Key: "e"}, ActionNone, false},
	}
	for _, tc := range cases {
		b, ok := Lookup(DefaultBindings, tc.chord)
		if ok != tc.ok || b.Action != tc.want {
			t.Fatalf("Lookup(%+v) = %s, %v; want %s, %v", tc.chord, b.Action, ok, tc.want, tc.ok)
		}
	}
}

func TestDefaultBindingsHaveLabels(t *testing.T) {
	for _, b := range DefaultBindings {
		if b.Label == "" || b.Description == "" {
			t.Fatalf("binding %q missing label or description", b.Key)
		}
		if b.Action == ActionNone {
			t.Fatalf("binding %q has no action", b.Key)
		}
	}
}
