package tui

import (
	"strings"
	"testing"

	drillkey "github.com/verte-zerg/keydrill/internal/key"
)

func TestCapStateFor(t *testing.T) {
	lit := map[string]bool{"Ctrl": true, "S": true}
	cases := []struct {
		label string
		mods  drillkey.Modifier
		want  capState
	}{
		{label: "S", mods: drillkey.ModCtrl, want: capLit},
		{label: "Ctrl", mods: drillkey.ModCtrl, want: capHeld},
		{label: "Ctrl", mods: drillkey.ModNone, want: capLit},
		{label: "Shift", mods: drillkey.ModCtrl, want: capPlain},
		{label: "Q", mods: drillkey.ModNone, want: capPlain},
	}
	for _, tc := range cases {
		if got := capStateFor(tc.label, lit, tc.mods); got != tc.want {
			t.Fatalf("%s with %v: expected %d, got %d", tc.label, tc.mods, tc.want, got)
		}
	}
}

func TestRenderKeyboardLayout(t *testing.T) {
	st := newStyles(true)
	out := renderKeyboard([]string{"S"}, drillkey.ModCtrl, st)
	for _, label := range []string{"F8", "Tab", "Caps", "Space", "B", "`"} {
		if !strings.Contains(out, label) {
			t.Fatalf("expected %q in keyboard", label)
		}
	}
	// Each row is three lines tall because of the key borders.
	if lines := strings.Count(out, "\n") + 1; lines != 3*len(keyboardRows) {
		t.Fatalf("expected %d lines, got %d", 3*len(keyboardRows), lines)
	}
}
