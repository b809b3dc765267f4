// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects which catalog items are eligible.
type Difficulty int

const (
	// Beginner allows single keys only.
	Beginner Difficulty = iota
	// Intermediate adds special keys, simple combos and short sequences.
	Intermediate
	// Advanced allows every item.
	Advanced
	// Custom selects items by category toggles instead of tier.
	Custom
)

var difficultyNames = []string{"beginner", "intermediate", "advanced", "custom"}

// Difficulties returns all difficulty values in cycle order.
func Difficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced, Custom}
}

func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// Title returns the capitalized name for display.
func (d Difficulty) Title() string {
	return capitalize(d.String())
}

// Next returns the following difficulty, wrapping around.
func (d Difficulty) Next() Difficulty {
	return Difficulty((int(d) + 1) % len(difficultyNames))
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d >= Beginner && d <= Custom
}

// ParseDifficulty parses a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	return Beginner, fmt.Errorf("unknown difficulty %q (use %s)", s, strings.Join(difficultyNames, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Mode selects how a session ends.
type Mode int

const (
	// Endless runs until stopped.
	Endless Mode = iota
	// Timed counts down a fixed time limit.
	Timed
	// Challenge ends after a target number of correct rounds.
	Challenge
	// Zen hides statistics and records no history.
	Zen
)

var modeNames = []string{"endless", "timed", "challenge", "zen"}

// Modes returns all modes in cycle order.
func Modes() []Mode {
	return []Mode{Endless, Timed, Challenge, Zen}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Title returns the capitalized name for display.
func (m Mode) Title() string {
	return capitalize(m.String())
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= Endless && m <= Zen
}

// ParseMode parses a mode name (case-insensitive).
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return Endless, fmt.Errorf("unknown mode %q (use %s)", s, strings.Join(modeNames, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Categories toggles item kinds for the Custom difficulty.
type Categories struct {
	Single   bool
	Special  bool
	Combo    bool
	Sequence bool
}

// AllCategories enables every kind.
func AllCategories() Categories {
	return Categories{Single: true, Special: true, Combo: true, Sequence: true}
}

// Settings bounds.
const (
	MinTimeLimitSeconds = 10
	MaxTimeLimitSeconds = 600
	MinTargetRounds     = 5
	MaxTargetRounds     = 500
)

// Settings holds the persisted user preferences.
type Settings struct {
	Difficulty       Difficulty
	Mode             Mode
	TimeLimitSeconds int
	TargetRounds     int
	DarkTheme        bool
	Sound            bool
	ShowKeyboard     bool
	Custom           Categories
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:       Intermediate,
		Mode:             Endless,
		TimeLimitSeconds: 60,
		TargetRounds:     50,
		DarkTheme:        true,
		Sound:            true,
		ShowKeyboard:     true,
		Custom:           AllCategories(),
	}
}

// Clamped returns s with out-of-range values pulled into bounds.
func (s Settings) Clamped() Settings {
	if !s.Difficulty.Valid() {
		s.Difficulty = Intermediate
	}
	if !s.Mode.Valid() {
		s.Mode = Endless
	}
	s.TimeLimitSeconds = clampInt(s.TimeLimitSeconds, MinTimeLimitSeconds, MaxTimeLimitSeconds)
	s.TargetRounds = clampInt(s.TargetRounds, MinTargetRounds, MaxTargetRounds)
	return s
}

// MaxHistoryRecords caps the stored session history.
const MaxHistoryRecords = 100

// SessionRecord summarizes one finished session.
type SessionRecord struct {
	ID              string     `json:"id" yaml:"id"`
	Timestamp       time.Time  `json:"timestamp" yaml:"timestamp"`
	TotalRounds     int        `json:"total_rounds" yaml:"total_rounds"`
	CorrectRounds   int        `json:"correct_rounds" yaml:"correct_rounds"`
	DurationSeconds float64    `json:"duration_seconds" yaml:"duration_seconds"`
	Difficulty      Difficulty `json:"difficulty" yaml:"difficulty"`
	Mode            Mode       `json:"mode" yaml:"mode"`
}

// HistoryConfig defines filters for history queries.
type HistoryConfig struct {
	Difficulty *Difficulty
	Mode       *Mode
	Since      *time.Time
	Last       int
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
