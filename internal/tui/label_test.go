package tui

import (
	"strings"
	"testing"
)

func TestBuildLabelRunesProgress(t *testing.T) {
	st := newStyles(true)
	runes := buildLabelRunes("QWER", 2, st)
	if len(runes) != 4 {
		t.Fatalf("expected 4 runes, got %d", len(runes))
	}
	if runes[0].s != st.good.Render("Q") || runes[1].s != st.good.Render("W") {
		t.Fatalf("expected typed runes in good style")
	}
	if runes[2].s != st.cursor.Render("E") {
		t.Fatalf("expected cursor on next rune")
	}
	if runes[3].s != st.pending.Render("R") {
		t.Fatalf("expected pending style for remaining rune")
	}
}

func TestBuildLabelRunesPlain(t *testing.T) {
	st := newStyles(false)
	runes := buildLabelRunes("Ctrl+S", -1, st)
	for i, r := range runes {
		if r.s != st.accent.Render(string("Ctrl+S"[i])) {
			t.Fatalf("expected accent style at %d", i)
		}
	}
}

func TestWrapStyledRunesBreaksOnSpace(t *testing.T) {
	runes := []styledRune{
		{s: "a", width: 1}, {s: "b", width: 1}, {s: " ", width: 1, isSpace: true},
		{s: "c", width: 1}, {s: "d", width: 1},
	}
	got := wrapStyledRunes(runes, 3)
	if got != "ab\ncd" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapStyledRunesHardBreak(t *testing.T) {
	runes := make([]styledRune, 5)
	for i := range runes {
		runes[i] = styledRune{s: "x", width: 1}
	}
	got := wrapStyledRunes(runes, 2)
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("expected two breaks, got %q", got)
	}
}
