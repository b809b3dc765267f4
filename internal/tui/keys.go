package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	drillkey "github.com/verte-zerg/keydrill/internal/key"
)

type keyMap struct {
	Start        key.Binding
	Pause        key.Binding
	Skip         key.Binding
	Stop         key.Binding
	Difficulty   key.Binding
	Mode         key.Binding
	ParamDown    key.Binding
	ParamUp      key.Binding
	Theme        key.Binding
	Sound        key.Binding
	Keyboard     key.Binding
	ToggleSingle key.Binding
	ToggleSpec   key.Binding
	ToggleCombo  key.Binding
	ToggleSeq    key.Binding
	Reset        key.Binding
	Confirm      key.Binding
	Quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:        key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start")),
		Pause:        key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pause")),
		Skip:         key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "skip")),
		Stop:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Difficulty:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Mode:         key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
		ParamDown:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "less")),
		ParamUp:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more")),
		Theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Sound:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		Keyboard:     key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "keyboard")),
		ToggleSingle: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "singles")),
		ToggleSpec:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "special")),
		ToggleCombo:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "combos")),
		ToggleSeq:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "sequences")),
		Reset:        key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "reset history")),
		Confirm:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// idleKeys is shown when no session is active.
type idleKeys keyMap

func (k idleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Difficulty, k.Mode, k.ParamDown, k.ParamUp, k.Quit}
}

func (k idleKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Difficulty, k.Mode, k.ParamDown, k.ParamUp},
		{k.Theme, k.Sound, k.Keyboard, k.Reset},
		{k.ToggleSingle, k.ToggleSpec, k.ToggleCombo, k.ToggleSeq},
		{k.Quit},
	}
}

// sessionKeys is shown while drilling.
type sessionKeys keyMap

func (k sessionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Pause, k.Skip}
}

func (k sessionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

const shiftedSymbols = "~!@#$%^&*()_+{}|:\"<>?"

var functionKeys = map[tea.KeyType]int{
	tea.KeyF1: 1, tea.KeyF2: 2, tea.KeyF3: 3, tea.KeyF4: 4,
	tea.KeyF5: 5, tea.KeyF6: 6, tea.KeyF7: 7, tea.KeyF8: 8,
	tea.KeyF9: 9, tea.KeyF10: 10, tea.KeyF11: 11, tea.KeyF12: 12,
}

// toEvent converts a terminal key message into a drill event. Terminals do
// not report bare modifier or Caps Lock presses, so those never appear.
func toEvent(msg tea.KeyMsg) (drillkey.Event, bool) {
	if msg.Paste {
		return drillkey.Event{}, false
	}
	var mods drillkey.Modifier
	if msg.Alt {
		mods = mods.With(drillkey.ModAlt)
	}

	switch msg.Type {
	case tea.KeyEsc:
		return drillkey.NewEvent(drillkey.Escape, "", mods), true
	case tea.KeyTab:
		return drillkey.NewEvent(drillkey.Tab, "\t", mods), true
	case tea.KeyShiftTab:
		return drillkey.NewEvent(drillkey.Backtab, "", mods.With(drillkey.ModShift)), true
	case tea.KeyEnter:
		return drillkey.NewEvent(drillkey.Enter, "", mods), true
	case tea.KeyBackspace:
		return drillkey.NewEvent(drillkey.Backspace, "", mods), true
	case tea.KeySpace:
		return drillkey.NewEvent(drillkey.Space, " ", mods), true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return drillkey.Event{}, false
		}
		r := msg.Runes[0]
		if unicode.IsUpper(r) || strings.ContainsRune(shiftedSymbols, r) {
			mods = mods.With(drillkey.ModShift)
		}
		return drillkey.NewEvent(drillkey.FromRune(r), string(r), mods), true
	}

	if n, ok := functionKeys[msg.Type]; ok {
		return drillkey.NewEvent(drillkey.Function(n), "", mods), true
	}
	// Ctrl+letter carries its control character as text, so it counts as a
	// wrong key when a character is expected.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		letter := rune('a' + int(msg.Type-tea.KeyCtrlA))
		return drillkey.NewEvent(drillkey.Letter(letter), string(rune(msg.Type)), mods.With(drillkey.ModCtrl)), true
	}
	return drillkey.Event{}, false
}
