package key

import (
	"strings"
	"unicode/utf8"
)

// Event is a single resolved key press.
type Event struct {
	Code      Code
	Text      string
	Modifiers Modifier
}

// NewEvent builds an Event, lowercasing the produced text.
func NewEvent(code Code, text string, mods Modifier) Event {
	return Event{
		Code:      code,
		Text:      strings.ToLower(text),
		Modifiers: mods,
	}
}

// IsModifierOnly reports whether the event is a bare modifier key-down.
func (e Event) IsModifierOnly() bool {
	return e.Code.IsModifier()
}

// FirstRune returns the first produced character, lowercased.
func (e Event) FirstRune() (rune, bool) {
	if e.Text == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(e.Text)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// String returns a combo-style name such as "Ctrl+S" or "Alt+F4".
func (e Event) String() string {
	parts := e.Modifiers.Names()
	parts = append(parts, e.Code.String())
	return strings.Join(parts, "+")
}
