package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	drillkey "github.com/verte-zerg/keydrill/internal/key"
)

func TestToEvent(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want drillkey.Event
	}{
		{
			name: "lowercase rune",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}},
			want: drillkey.Event{Code: drillkey.Letter('q'), Text: "q"},
		},
		{
			name: "uppercase rune implies shift",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}},
			want: drillkey.Event{Code: drillkey.Letter('q'), Text: "q", Modifiers: drillkey.ModShift},
		},
		{
			name: "shifted digit",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}},
			want: drillkey.Event{Code: drillkey.Exclam, Text: "!", Modifiers: drillkey.ModShift},
		},
		{
			name: "ctrl letter",
			msg:  tea.KeyMsg{Type: tea.KeyCtrlS},
			want: drillkey.Event{Code: drillkey.Letter('s'), Text: "\x13", Modifiers: drillkey.ModCtrl},
		},
		{
			name: "shift tab",
			msg:  tea.KeyMsg{Type: tea.KeyShiftTab},
			want: drillkey.Event{Code: drillkey.Backtab, Modifiers: drillkey.ModShift},
		},
		{
			name: "alt function key",
			msg:  tea.KeyMsg{Type: tea.KeyF4, Alt: true},
			want: drillkey.Event{Code: drillkey.F4, Modifiers: drillkey.ModAlt},
		},
		{
			name: "space",
			msg:  tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
			want: drillkey.Event{Code: drillkey.Space, Text: " "},
		},
		{
			name: "tab",
			msg:  tea.KeyMsg{Type: tea.KeyTab},
			want: drillkey.Event{Code: drillkey.Tab, Text: "\t"},
		},
		{
			name: "escape",
			msg:  tea.KeyMsg{Type: tea.KeyEsc},
			want: drillkey.Event{Code: drillkey.Escape},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toEvent(tc.msg)
			if !ok {
				t.Fatalf("expected event")
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestToEventSkipsPaste(t *testing.T) {
	if _, ok := toEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("qwer"), Paste: true}); ok {
		t.Fatalf("pasted text should not become an event")
	}
}
