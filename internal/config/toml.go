// Package config provides settings persistence, file watching and XDG path helpers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/keydrill/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
}

// PracticeConfig maps practice-related settings. Nil fields are unset.
type PracticeConfig struct {
	Difficulty     *string `toml:"difficulty"`
	Mode           *string `toml:"mode"`
	TimeLimit      *int    `toml:"time-limit"`
	TargetRounds   *int    `toml:"target-rounds"`
	DarkTheme      *bool   `toml:"dark-theme"`
	Sound          *bool   `toml:"sound"`
	Keyboard       *bool   `toml:"keyboard"`
	CustomSingle   *bool   `toml:"custom-single"`
	CustomSpecial  *bool   `toml:"custom-special"`
	CustomCombo    *bool   `toml:"custom-combo"`
	CustomSequence *bool   `toml:"custom-sequence"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the set fields onto base and clamps the result.
// Unparseable values are skipped and reported in the returned error;
// the settings are usable either way.
func (c FileConfig) Apply(base model.Settings) (model.Settings, error) {
	p := c.Practice
	s := base
	var errs []error
	if p.Difficulty != nil {
		if d, err := model.ParseDifficulty(*p.Difficulty); err != nil {
			errs = append(errs, err)
		} else {
			s.Difficulty = d
		}
	}
	if p.Mode != nil {
		if m, err := model.ParseMode(*p.Mode); err != nil {
			errs = append(errs, err)
		} else {
			s.Mode = m
		}
	}
	if p.TimeLimit != nil {
		s.TimeLimitSeconds = *p.TimeLimit
	}
	if p.TargetRounds != nil {
		s.TargetRounds = *p.TargetRounds
	}
	applyBool(&s.DarkTheme, p.DarkTheme)
	applyBool(&s.Sound, p.Sound)
	applyBool(&s.ShowKeyboard, p.Keyboard)
	applyBool(&s.Custom.Single, p.CustomSingle)
	applyBool(&s.Custom.Special, p.CustomSpecial)
	applyBool(&s.Custom.Combo, p.CustomCombo)
	applyBool(&s.Custom.Sequence, p.CustomSequence)
	return s.Clamped(), errors.Join(errs...)
}

// FromSettings builds a fully populated FileConfig.
func FromSettings(s model.Settings) FileConfig {
	difficulty := s.Difficulty.String()
	mode := s.Mode.String()
	return FileConfig{Practice: PracticeConfig{
		Difficulty:     &difficulty,
		Mode:           &mode,
		TimeLimit:      &s.TimeLimitSeconds,
		TargetRounds:   &s.TargetRounds,
		DarkTheme:      &s.DarkTheme,
		Sound:          &s.Sound,
		Keyboard:       &s.ShowKeyboard,
		CustomSingle:   &s.Custom.Single,
		CustomSpecial:  &s.Custom.Special,
		CustomCombo:    &s.Custom.Combo,
		CustomSequence: &s.Custom.Sequence,
	}}
}

// LoadSettings reads path and resolves it over the defaults.
func LoadSettings(path string) (model.Settings, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return model.DefaultSettings(), err
	}
	return cfg.Apply(model.DefaultSettings())
}

// SaveSettings writes s to path, replacing the file atomically.
func SaveSettings(path string, s model.Settings) (err error) {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := os.Remove(tmp.Name()); rerr != nil {
				// Best-effort temp cleanup.
				_ = rerr
			}
		}
	}()

	if err = toml.NewEncoder(tmp).Encode(FromSettings(s.Clamped())); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
