// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/catalog"
	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/engine"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
)

const (
	timeStep   = 10
	targetStep = 5
)

// CloseRequestMsg asks the UI to close, as a window manager would.
type CloseRequestMsg struct{}

// SettingsChangedMsg carries settings reloaded from disk.
type SettingsChangedMsg struct {
	Settings model.Settings
}

type tickMsg struct {
	gen int
}

// Bell rings the terminal bell on wrong answers.
type Bell struct {
	W io.Writer
}

// Play implements engine.Sounder.
func (b Bell) Play(correct bool) {
	if correct || b.W == nil {
		return
	}
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		// Best-effort bell.
		_ = err
	}
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	eng          *engine.Engine
	settingsPath string
	logger       *slog.Logger

	keys   keyMap
	help   help.Model
	styles styles

	width  int
	height int

	tickGen      int
	notice       string
	confirmReset bool
}

// NewModel constructs a drill TUI model. An empty settingsPath disables saving.
func NewModel(eng *engine.Engine, settingsPath string, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		eng:          eng,
		settingsPath: settingsPath,
		logger:       logger,
		keys:         newKeyMap(),
		help:         help.New(),
		styles:       newStyles(eng.Settings().DarkTheme),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case CloseRequestMsg:
		return m, m.handleClose()
	case SettingsChangedMsg:
		if msg.Settings != m.eng.Settings() {
			m.eng.ApplySettings(msg.Settings)
			m.styles = newStyles(m.eng.Settings().DarkTheme)
			m.notice = "Settings reloaded"
		}
		return m, nil
	case tea.KeyMsg:
		if m.eng.Active() {
			return m, m.handleSessionKey(msg)
		}
		return m, m.handleIdleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.tickGen || m.eng.Phase() != engine.Running {
		return nil
	}
	res := m.eng.Tick()
	if res.Outcome == engine.Ended {
		m.sessionEnded()
		return nil
	}
	return m.scheduleTick()
}

// scheduleTick starts a new tick chain and orphans any pending one.
func (m *Model) scheduleTick() tea.Cmd {
	m.tickGen++
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) handleSessionKey(msg tea.KeyMsg) tea.Cmd {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Pause):
		if m.eng.TogglePause() && m.eng.Phase() == engine.Running {
			return m.scheduleTick()
		}
		m.tickGen++
		return nil
	case key.Matches(msg, m.keys.Skip):
		m.eng.Skip()
		return nil
	case m.eng.Phase() == engine.Paused && key.Matches(msg, m.keys.Stop):
		m.eng.Stop()
		m.sessionEnded()
		return nil
	}

	ev, ok := toEvent(msg)
	if !ok {
		return nil
	}
	res := m.eng.HandleKey(ev)
	switch res.Outcome {
	case engine.Ended:
		m.sessionEnded()
	case engine.Resumed:
		return m.scheduleTick()
	}
	return nil
}

func (m *Model) handleIdleKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirmReset {
		m.confirmReset = false
		if key.Matches(msg, m.keys.Confirm) {
			if err := m.eng.ResetHistory(); err != nil {
				m.notice = "Failed to reset history"
			} else {
				m.notice = "History cleared"
			}
		} else {
			m.notice = "Reset cancelled"
		}
		return nil
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Start):
		if err := m.eng.Start(); err != nil {
			m.logger.Warn("start failed", "err", err)
			return nil
		}
		return m.scheduleTick()
	case key.Matches(msg, m.keys.Quit):
		return m.handleClose()
	case key.Matches(msg, m.keys.Difficulty):
		m.changeSettings(func(s *model.Settings) { s.Difficulty = s.Difficulty.Next() })
	case key.Matches(msg, m.keys.Mode):
		m.changeSettings(func(s *model.Settings) { s.Mode = s.Mode.Next() })
	case key.Matches(msg, m.keys.ParamDown):
		m.changeSettings(func(s *model.Settings) { adjustParam(s, -1) })
	case key.Matches(msg, m.keys.ParamUp):
		m.changeSettings(func(s *model.Settings) { adjustParam(s, 1) })
	case key.Matches(msg, m.keys.Theme):
		m.changeSettings(func(s *model.Settings) { s.DarkTheme = !s.DarkTheme })
	case key.Matches(msg, m.keys.Sound):
		m.changeSettings(func(s *model.Settings) { s.Sound = !s.Sound })
	case key.Matches(msg, m.keys.Keyboard):
		m.changeSettings(func(s *model.Settings) { s.ShowKeyboard = !s.ShowKeyboard })
	case key.Matches(msg, m.keys.ToggleSingle):
		m.changeSettings(func(s *model.Settings) { s.Custom.Single = !s.Custom.Single })
	case key.Matches(msg, m.keys.ToggleSpec):
		m.changeSettings(func(s *model.Settings) { s.Custom.Special = !s.Custom.Special })
	case key.Matches(msg, m.keys.ToggleCombo):
		m.changeSettings(func(s *model.Settings) { s.Custom.Combo = !s.Custom.Combo })
	case key.Matches(msg, m.keys.ToggleSeq):
		m.changeSettings(func(s *model.Settings) { s.Custom.Sequence = !s.Custom.Sequence })
	case key.Matches(msg, m.keys.Reset):
		m.confirmReset = true
		m.notice = "Clear all history? Press y to confirm"
	}
	return nil
}

// handleClose applies the close-request rules: drilling the close combo
// counts as a round, an active session blocks, idle quits.
func (m *Model) handleClose() tea.Cmd {
	decision, res := m.eng.HandleCloseRequest()
	switch decision {
	case engine.CloseConsumed:
		if res.Completion != engine.CompletionNone {
			m.sessionEnded()
		}
		return nil
	case engine.CloseBlock:
		m.notice = "Cannot close while training. Press Esc to stop first"
		return nil
	default:
		m.saveSettings()
		return tea.Quit
	}
}

func (m *Model) sessionEnded() {
	m.tickGen++
	m.notice = ""
}

func (m *Model) changeSettings(fn func(*model.Settings)) {
	s := m.eng.Settings()
	fn(&s)
	m.eng.ApplySettings(s)
	m.styles = newStyles(m.eng.Settings().DarkTheme)
	m.saveSettings()
}

func (m *Model) saveSettings() {
	if m.settingsPath == "" {
		return
	}
	if err := config.SaveSettings(m.settingsPath, m.eng.Settings()); err != nil {
		m.logger.Error("failed to save settings", "path", m.settingsPath, "err", err)
	}
}

func adjustParam(s *model.Settings, dir int) {
	switch s.Mode {
	case model.Timed:
		s.TimeLimitSeconds += dir * timeStep
	case model.Challenge:
		s.TargetRounds += dir * targetStep
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	d := m.eng.Display()
	s := m.eng.Settings()

	sections := []string{m.renderHeader(d, s)}
	if m.eng.Active() {
		sections = append(sections, m.renderSession(d))
	} else {
		sections = append(sections, m.renderIdle(d, s))
	}
	if s.ShowKeyboard {
		sections = append(sections, renderKeyboard(d.Highlight, d.Modifiers, m.styles))
	}
	if m.notice != "" {
		sections = append(sections, m.styles.accent.Render(m.notice))
	}
	sections = append(sections, m.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHeader(d engine.Display, s model.Settings) string {
	parts := []string{
		m.styles.title.Render("keydrill"),
		m.styles.muted.Render(s.Difficulty.Title()),
		m.styles.muted.Render(d.Mode.Title()),
	}
	return strings.Join(parts, m.styles.footer.Render(" · "))
}

func (m *Model) renderSession(d engine.Display) string {
	var label string
	if d.HasItem {
		progress := -1
		if d.Kind == catalog.Sequence {
			progress = d.Progress
		}
		width := 0
		if m.width > 0 {
			width = m.width * 7 / 10
		}
		label = wrapStyledRunes(buildLabelRunes(d.Text, progress, m.styles), width)
		if d.Kind == catalog.Sequence {
			label += m.styles.muted.Render(fmt.Sprintf(" (%d/%d)", d.Progress, d.Length))
		}
	}
	lines := []string{m.styles.label.Render(label)}

	if d.Phase == engine.Paused {
		lines = append(lines, m.styles.accent.Render("Paused. Press Space to resume"))
	}
	if d.Error != "" {
		lines = append(lines, m.styles.bad.Render(d.Error))
	} else {
		lines = append(lines, "")
	}

	status := []string{d.Timer}
	if d.Challenge != "" {
		status = append(status, "Goal "+d.Challenge)
	}
	status = append(status, d.Stats)
	lines = append(lines, m.styles.footer.Render(strings.Join(status, "  ")))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderIdle(d engine.Display, s model.Settings) string {
	var lines []string
	if d.Phase == engine.Stopped {
		lines = append(lines, m.renderSummary(d))
	}

	param := ""
	switch s.Mode {
	case model.Timed:
		param = fmt.Sprintf("Time limit: %ds", s.TimeLimitSeconds)
	case model.Challenge:
		param = fmt.Sprintf("Target: %d rounds", s.TargetRounds)
	}
	settings := []string{
		fmt.Sprintf("Difficulty: %s", s.Difficulty.Title()),
		fmt.Sprintf("Mode: %s", s.Mode.Title()),
	}
	if param != "" {
		settings = append(settings, param)
	}
	if s.Difficulty == model.Custom {
		settings = append(settings, "Custom: "+customSummary(s.Custom))
	}
	settings = append(settings,
		fmt.Sprintf("Items: %d", len(m.eng.WorkingSet())),
		fmt.Sprintf("Sound: %s  Keyboard: %s", onOff(s.Sound), onOff(s.ShowKeyboard)),
	)
	lines = append(lines, m.styles.text.Render(strings.Join(settings, "\n")))
	if best := stats.BestOf(m.eng.History()); best.Sessions > 0 {
		lines = append(lines, "", m.styles.muted.Render(bestLine(best)))
	}
	lines = append(lines, "", m.styles.accent.Render("Press Enter to start"))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderSummary(d engine.Display) string {
	title := d.Completion.String()
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}
	lines := []string{m.styles.title.Render(title)}
	if rec, ok := m.eng.LastRecord(); ok {
		lines = append(lines,
			m.styles.text.Render(fmt.Sprintf(
				"%d/%d correct in %.0fs", rec.CorrectRounds, rec.TotalRounds, rec.DurationSeconds)),
			m.styles.muted.Render(fmt.Sprintf("Accuracy: %.1f%%  Speed: %.1f/min",
				stats.RecordAccuracy(rec), stats.RecordSpeed(rec))),
		)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m *Model) renderHelp() string {
	if m.eng.Active() {
		return m.help.View(sessionKeys(m.keys))
	}
	return m.help.View(idleKeys(m.keys))
}

func bestLine(b stats.Best) string {
	return fmt.Sprintf("Sessions: %d  Best speed: %.1f/min  Best accuracy: %.1f%%",
		b.Sessions, b.Speed, b.Accuracy)
}

func customSummary(c model.Categories) string {
	var parts []string
	if c.Single {
		parts = append(parts, "single")
	}
	if c.Special {
		parts = append(parts, "special")
	}
	if c.Combo {
		parts = append(parts, "combo")
	}
	if c.Sequence {
		parts = append(parts, "sequence")
	}
	if len(parts) == 0 {
		return "none (all items)"
	}
	return strings.Join(parts, ", ")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
