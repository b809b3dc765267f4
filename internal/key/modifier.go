package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

// ModNone indicates no modifiers.
const ModNone Modifier = 0

const (
	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl indicates the Control key.
	ModCtrl
	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
	// ModKeypad marks keys coming from the numeric keypad.
	ModKeypad
)

// ComboMask selects the modifiers that take part in combo matching.
const ComboMask = ModShift | ModCtrl | ModAlt | ModMeta

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Relevant returns only the bits used for combo matching.
func (m Modifier) Relevant() Modifier {
	return m & ComboMask
}

// Names lists the held modifiers in display order.
func (m Modifier) Names() []string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	return parts
}

// String returns a representation like "Ctrl+Alt".
func (m Modifier) String() string {
	return strings.Join(m.Names(), "+")
}
