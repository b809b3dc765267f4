package catalog

import (
	"fmt"

	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/model"
)

const (
	beginnerKeys     = "12345qwertasdfgzxcvb"
	intermediateKeys = "67yhun"
)

var shortSequences = []string{
	"1a", "2a", "3a",
	"1s", "2s", "3s",
	"1d", "2d", "3d",
	"1q", "2q", "3q",
}

var longSequences = []string{
	"1aa", "2aa", "3aa",
	"1ss", "2ss", "3ss",
	"1qqqq", "2ww", "3ee",
	"qwer", "asdf", "zxcv",
	"wasd", "1a2a", "1s2s",
	"4sd", "5vv", "1a2a3a",
	"qqqq", "aaaa", "ssss",
	"1234", "5432", "qwert",
	"asdfg", "zxcvb",
}

// Build returns every drillable item in a fixed order.
func Build() []Item {
	items := make([]Item, 0, 128)

	for _, ch := range beginnerKeys {
		items = append(items, NewSingleKey(ch, model.Beginner))
	}
	for _, ch := range intermediateKeys {
		items = append(items, NewSingleKey(ch, model.Intermediate))
	}

	items = append(items,
		NewSpecialKey(key.Space, "Space", model.Beginner),
		NewSpecialKey(key.Tab, "Tab", model.Intermediate),
		NewSpecialKey(key.CapsLock, "Caps", model.Intermediate),
	)
	for n := 1; n <= 8; n++ {
		diff := model.Intermediate
		if n > 4 {
			diff = model.Advanced
		}
		items = append(items, NewSpecialKey(key.Function(n), fmt.Sprintf("F%d", n), diff))
	}

	// Control groups.
	for n := 1; n <= 9; n++ {
		diff := model.Intermediate
		if n > 5 {
			diff = model.Advanced
		}
		items = append(items, NewCombo(key.ModCtrl, key.Digit(n), fmt.Sprintf("Ctrl+%d", n), diff))
	}
	items = append(items, NewCombo(key.ModCtrl, key.Digit(0), "Ctrl+0", model.Advanced))

	// Shift+digit arrives as the shifted symbol.
	shiftDigits := []key.Code{key.Exclam, key.At, key.NumberSign, key.Dollar, key.Percent}
	for i, code := range shiftDigits {
		items = append(items, NewCombo(key.ModShift, code, fmt.Sprintf("Shift+%d", i+1), model.Intermediate))
	}

	for _, ch := range "qwerasdfzxcv" {
		items = append(items, letterCombo(key.ModCtrl, "Ctrl", ch, model.Intermediate))
	}

	for _, ch := range "qweras" {
		items = append(items, letterCombo(key.ModShift, "Shift", ch, model.Advanced))
	}

	for n := 1; n <= 4; n++ {
		items = append(items, NewCombo(key.ModAlt, key.Function(n), fmt.Sprintf("Alt+F%d", n), model.Advanced))
	}

	for _, seq := range shortSequences {
		items = append(items, NewSequence(seq, model.Intermediate))
	}
	for _, seq := range longSequences {
		items = append(items, NewSequence(seq, model.Advanced))
	}
	return items
}

func letterCombo(mods key.Modifier, prefix string, ch rune, diff model.Difficulty) Item {
	code := key.Letter(ch)
	return NewCombo(mods, code, prefix+"+"+code.String(), diff)
}
