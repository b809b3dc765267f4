// Package catalog defines the drillable items and the difficulty filter.
package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/model"
)

// Kind tags the match rule an item uses.
type Kind int

const (
	// SingleKey matches the first produced character.
	SingleKey Kind = iota
	// Combo matches a key code plus an exact modifier set.
	Combo
	// SpecialKey matches a named key code, ignoring modifiers.
	SpecialKey
	// Sequence matches several characters typed in order.
	Sequence
)

func (k Kind) String() string {
	switch k {
	case SingleKey:
		return "single"
	case Combo:
		return "combo"
	case SpecialKey:
		return "special"
	case Sequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Item is one drillable challenge. Build items with the New* constructors;
// each sets only the fields its kind uses.
type Item struct {
	Kind          Kind
	Label         string
	Sequence      string
	Code          key.Code
	Modifiers     key.Modifier
	MinDifficulty model.Difficulty
}

// NewSingleKey returns an item for one printable character.
func NewSingleKey(ch rune, diff model.Difficulty) Item {
	s := string(ch)
	return Item{
		Kind:          SingleKey,
		Label:         strings.ToUpper(s),
		Sequence:      strings.ToLower(s),
		MinDifficulty: diff,
	}
}

// NewSequence returns an item for characters typed in order.
func NewSequence(text string, diff model.Difficulty) Item {
	return Item{
		Kind:          Sequence,
		Label:         strings.ToUpper(text),
		Sequence:      strings.ToLower(text),
		MinDifficulty: diff,
	}
}

// NewCombo returns an item for a key pressed with modifiers.
func NewCombo(mods key.Modifier, code key.Code, label string, diff model.Difficulty) Item {
	return Item{
		Kind:          Combo,
		Label:         label,
		Code:          code,
		Modifiers:     mods.Relevant(),
		MinDifficulty: diff,
	}
}

// NewSpecialKey returns an item for a named key.
func NewSpecialKey(code key.Code, label string, diff model.Difficulty) Item {
	return Item{
		Kind:          SpecialKey,
		Label:         label,
		Code:          code,
		MinDifficulty: diff,
	}
}

// ID identifies the item within the catalog.
func (it Item) ID() string {
	return it.Kind.String() + ":" + it.Label
}

// Length returns the number of characters to type for text items.
func (it Item) Length() int {
	return utf8.RuneCountInString(it.Sequence)
}

// IsCloseIntent reports whether the item is the window-close combo. The host
// may swallow this combo before it becomes a key event.
func (it Item) IsCloseIntent() bool {
	return it.Kind == Combo && it.Code == CloseCombo.Code && it.Modifiers.Has(CloseCombo.Modifiers)
}

// CloseCombo is the conventional close-window shortcut (Alt+F4).
var CloseCombo = struct {
	Code      key.Code
	Modifiers key.Modifier
}{Code: key.F4, Modifiers: key.ModAlt}
