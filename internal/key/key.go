package key

import (
	"fmt"
	"unicode"
)

// Code identifies a physical key.
type Code uint32

// CodeNone is the zero key.
const CodeNone Code = 0

// Printable keys that have no letter or digit form.
const (
	Space      Code = ' '
	Exclam     Code = '!'
	At         Code = '@'
	NumberSign Code = '#'
	Dollar     Code = '$'
	Percent    Code = '%'
	Backquote  Code = '`'
)

// Named keys.
const (
	Escape Code = 0x01000000 + iota
	Tab
	Backtab
	Backspace
	Enter
	CapsLock
	Shift
	Control
	Alt
	Meta
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

var namedKeys = map[Code]string{
	Space:     "Space",
	Escape:    "Esc",
	Tab:       "Tab",
	Backtab:   "Backtab",
	Backspace: "Backspace",
	Enter:     "Enter",
	CapsLock:  "Caps",
	Shift:     "Shift",
	Control:   "Ctrl",
	Alt:       "Alt",
	Meta:      "Meta",
}

// shiftedDigits maps the symbols produced by Shift+digit on a US layout
// back to the digit printed on the keycap.
var shiftedDigits = map[Code]string{
	Exclam:     "1",
	At:         "2",
	NumberSign: "3",
	Dollar:     "4",
	Percent:    "5",
	'^':        "6",
	'&':        "7",
	'*':        "8",
	'(':        "9",
	')':        "0",
}

// Letter returns the code of a letter key. Case is ignored.
func Letter(r rune) Code {
	return Code(unicode.ToUpper(r))
}

// Digit returns the code of a digit key 0-9.
func Digit(n int) Code {
	return Code('0' + n%10)
}

// Function returns the code of function key Fn for n in 1..12.
func Function(n int) Code {
	if n < 1 || n > 12 {
		return CodeNone
	}
	return F1 + Code(n-1)
}

// FromRune returns the code for the key that produces r.
func FromRune(r rune) Code {
	if r == '\t' {
		return Tab
	}
	return Code(unicode.ToUpper(r))
}

// IsModifier reports whether c is a pure modifier key.
func (c Code) IsModifier() bool {
	switch c {
	case Shift, Control, Alt, Meta:
		return true
	default:
		return false
	}
}

// IsFunction reports whether c is one of F1..F12.
func (c Code) IsFunction() bool {
	return c >= F1 && c <= F12
}

// IsPrintable reports whether c is a printable ASCII key.
func (c Code) IsPrintable() bool {
	return c > ' ' && c < 0x7f
}

// String returns a readable key name such as "Q", "F4", "Space" or "!".
func (c Code) String() string {
	if name, ok := namedKeys[c]; ok {
		return name
	}
	if c.IsFunction() {
		return fmt.Sprintf("F%d", int(c-F1)+1)
	}
	if c.IsPrintable() {
		return string(rune(c))
	}
	if c == CodeNone {
		return ""
	}
	return fmt.Sprintf("0x%x", uint32(c))
}

// Keycap returns the label printed on the physical key, so Shift symbols
// map back to their digit ("!" becomes "1").
func (c Code) Keycap() string {
	if digit, ok := shiftedDigits[c]; ok {
		return digit
	}
	return c.String()
}
