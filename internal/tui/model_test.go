package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keydrill/internal/catalog"
	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/engine"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/logging"
	"github.com/verte-zerg/keydrill/internal/model"
)

type memRecorder struct {
	records []model.SessionRecord
}

func (r *memRecorder) InsertSession(_ context.Context, rec model.SessionRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *memRecorder) ClearSessions(context.Context) error {
	r.records = nil
	return nil
}

func newTestModel(t *testing.T, items []catalog.Item, mutate func(*model.Settings)) (*Model, *memRecorder, string) {
	t.Helper()
	settings := model.DefaultSettings()
	settings.Difficulty = model.Advanced
	if mutate != nil {
		mutate(&settings)
	}
	rec := &memRecorder{}
	eng := engine.New(engine.Options{
		Settings: settings,
		Catalog:  items,
		Picker:   generator.NewSeeded(1),
		Recorder: rec,
		Logger:   logging.Discard(),
	})
	path := filepath.Join(t.TempDir(), "config.toml")
	return NewModel(eng, path, logging.Discard()), rec, path
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStartAndAnswer(t *testing.T) {
	m, rec, _ := newTestModel(t, []catalog.Item{catalog.NewSingleKey('q', model.Beginner)}, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected tick command after start")
	}
	if m.eng.Phase() != engine.Running {
		t.Fatalf("expected running, got %v", m.eng.Phase())
	}

	m.Update(runes("q"))
	m.Update(runes("w"))
	total, correct := m.eng.Rounds()
	if total != 2 || correct != 1 {
		t.Fatalf("expected 2/1 rounds, got %d/%d", total, correct)
	}
	if !strings.Contains(m.View(), "expected 'Q', got 'W'") {
		t.Fatalf("expected mismatch message in view")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.eng.Phase() != engine.Stopped {
		t.Fatalf("expected stopped, got %v", m.eng.Phase())
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected one saved record, got %d", len(rec.records))
	}
}

func TestStaleTickIsDropped(t *testing.T) {
	m, _, _ := newTestModel(t, []catalog.Item{catalog.NewSingleKey('q', model.Beginner)}, func(s *model.Settings) {
		s.Mode = model.Timed
	})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	staleGen := m.tickGen

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.eng.Phase() != engine.Paused {
		t.Fatalf("expected paused")
	}
	if _, cmd := m.Update(tickMsg{gen: staleGen}); cmd != nil {
		t.Fatalf("stale tick should not reschedule")
	}
	if got := m.eng.Remaining(); got != 60 {
		t.Fatalf("expected countdown untouched, got %d", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil || m.eng.Phase() != engine.Running {
		t.Fatalf("space should resume and restart the ticker")
	}
	if _, cmd := m.Update(tickMsg{gen: m.tickGen}); cmd == nil {
		t.Fatalf("current tick should reschedule")
	}
	if got := m.eng.Remaining(); got != 59 {
		t.Fatalf("expected 59 seconds left, got %d", got)
	}
}

func TestCloseRequest(t *testing.T) {
	m, _, _ := newTestModel(t, []catalog.Item{catalog.NewSingleKey('q', model.Beginner)}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(CloseRequestMsg{})
	if isQuit(cmd) {
		t.Fatalf("close must be blocked while training")
	}
	if !strings.Contains(m.notice, "Cannot close") {
		t.Fatalf("expected warning notice, got %q", m.notice)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = m.Update(CloseRequestMsg{})
	if !isQuit(cmd) {
		t.Fatalf("expected quit when idle")
	}
}

func TestCloseComboCountsRound(t *testing.T) {
	closeCombo := catalog.NewCombo(key.ModAlt, key.F4, "Alt+F4", model.Advanced)
	m, _, _ := newTestModel(t, []catalog.Item{closeCombo}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(CloseRequestMsg{})
	if isQuit(cmd) {
		t.Fatalf("close combo must not quit")
	}
	if _, correct := m.eng.Rounds(); correct != 1 {
		t.Fatalf("expected close combo to count, got %d", correct)
	}
}

func TestSettingsHotkeysSave(t *testing.T) {
	m, _, path := newTestModel(t, nil, nil)
	m.Update(runes("m"))
	m.Update(runes("]"))
	m.Update(runes("s"))

	s := m.eng.Settings()
	if s.Mode != model.Timed || s.TimeLimitSeconds != 70 || s.Sound {
		t.Fatalf("unexpected settings %+v", s)
	}
	saved, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("load saved settings: %v", err)
	}
	if saved != s {
		t.Fatalf("expected saved %+v, got %+v", s, saved)
	}
}

func TestSettingsChangedMsg(t *testing.T) {
	m, _, _ := newTestModel(t, nil, nil)
	s := m.eng.Settings()
	s.Difficulty = model.Beginner
	m.Update(SettingsChangedMsg{Settings: s})
	if got := len(m.eng.WorkingSet()); got != 21 {
		t.Fatalf("expected beginner working set of 21, got %d", got)
	}
	if m.notice != "Settings reloaded" {
		t.Fatalf("expected reload notice, got %q", m.notice)
	}
}

func TestResetHistoryNeedsConfirm(t *testing.T) {
	m, rec, _ := newTestModel(t, []catalog.Item{catalog.NewSingleKey('q', model.Beginner)}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("q"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	m.Update(runes("X"))
	m.Update(runes("n"))
	if len(m.eng.History()) != 1 {
		t.Fatalf("history should survive a cancelled reset")
	}

	m.Update(runes("X"))
	m.Update(runes("y"))
	if len(m.eng.History()) != 0 || len(rec.records) != 0 {
		t.Fatalf("expected history cleared")
	}
}

func TestViewIdle(t *testing.T) {
	m, _, _ := newTestModel(t, nil, nil)
	out := m.View()
	for _, want := range []string{"keydrill", "Difficulty: Advanced", "Press Enter to start", "Items: 112"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestViewIdleShowsBestOfHistory(t *testing.T) {
	history := []model.SessionRecord{
		{ID: "b", TotalRounds: 20, CorrectRounds: 18, DurationSeconds: 30, Difficulty: model.Advanced, Mode: model.Timed},
		{ID: "a", TotalRounds: 10, CorrectRounds: 10, DurationSeconds: 60, Difficulty: model.Beginner, Mode: model.Endless},
	}
	eng := engine.New(engine.Options{
		Settings: model.DefaultSettings(),
		History:  history,
		Picker:   generator.NewSeeded(1),
		Logger:   logging.Discard(),
	})
	m := NewModel(eng, "", logging.Discard())
	out := m.View()
	if !strings.Contains(out, "Sessions: 2  Best speed: 40.0/min  Best accuracy: 100.0%") {
		t.Fatalf("expected best-of line in idle view:\n%s", out)
	}
}

func TestViewAfterStopCountsNewSession(t *testing.T) {
	m, _, _ := newTestModel(t, []catalog.Item{catalog.NewSingleKey('q', model.Beginner)}, nil)
	if strings.Contains(m.View(), "Best speed") {
		t.Fatalf("expected no best-of line without history")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("q"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	out := m.View()
	for _, want := range []string{"1/1 correct", "Accuracy: 100.0%", "Sessions: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
