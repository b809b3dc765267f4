package tui

import (
	"github.com/charmbracelet/lipgloss"

	drillkey "github.com/verte-zerg/keydrill/internal/key"
)

// Left-hand half of a US keyboard, top row first.
var keyboardRows = [][]string{
	{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8"},
	{"`", "1", "2", "3", "4", "5", "6"},
	{"Tab", "Q", "W", "E", "R", "T"},
	{"Caps", "A", "S", "D", "F", "G"},
	{"Shift", "Z", "X", "C", "V", "B"},
	{"Ctrl", "Alt", "Space"},
}

var modifierCaps = map[string]drillkey.Modifier{
	"Shift": drillkey.ModShift,
	"Ctrl":  drillkey.ModCtrl,
	"Alt":   drillkey.ModAlt,
}

// renderKeyboard draws the keyboard with the given keycaps lit. Held
// modifiers get their own style so the combo reads at a glance.
func renderKeyboard(highlight []string, mods drillkey.Modifier, st styles) string {
	lit := make(map[string]bool, len(highlight))
	for _, h := range highlight {
		lit[h] = true
	}
	rows := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		caps := make([]string, 0, len(row))
		for _, label := range row {
			style := st.key
			switch capStateFor(label, lit, mods) {
			case capHeld:
				style = st.keyMod
			case capLit:
				style = st.keyHi
			}
			caps = append(caps, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, caps...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

type capState int

const (
	capPlain capState = iota
	capLit
	capHeld
)

func capStateFor(label string, lit map[string]bool, mods drillkey.Modifier) capState {
	if mod, ok := modifierCaps[label]; ok && mods.Has(mod) {
		return capHeld
	}
	if lit[label] {
		return capLit
	}
	return capPlain
}
