// Package engine runs drill sessions: it judges key events against the
// current item and owns the session counters, clock and mode completion.
//
// An Engine is confined to one goroutine. The host feeds it key events,
// one-second ticks and settings changes in order.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/keydrill/internal/catalog"
	"github.com/verte-zerg/keydrill/internal/generator"
	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
)

// ErrSessionActive is returned by Start while a session is running or paused.
var ErrSessionActive = errors.New("session already active")

// Phase is the session lifecycle state.
type Phase int

const (
	// Idle means no session has started yet.
	Idle Phase = iota
	// Running accepts key events and ticks.
	Running
	// Paused freezes the clock and ignores everything but the resume key.
	Paused
	// Stopped means the last session ended. Start may be called again.
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Completion says why a session stopped.
type Completion int

const (
	// CompletionNone means the session has not stopped.
	CompletionNone Completion = iota
	// CompletionUser is an explicit stop (Escape or host request).
	CompletionUser
	// CompletionTimeUp ends a Timed session.
	CompletionTimeUp
	// CompletionChallenge ends a Challenge session at its target.
	CompletionChallenge
)

func (c Completion) String() string {
	switch c {
	case CompletionUser:
		return "stopped"
	case CompletionTimeUp:
		return "time's up"
	case CompletionChallenge:
		return "challenge complete"
	default:
		return ""
	}
}

// Picker chooses an index in [0, n).
type Picker interface {
	Pick(n int) int
}

// Sounder receives a fire-and-forget verdict per round.
type Sounder interface {
	Play(correct bool)
}

// Recorder persists session history.
type Recorder interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) error
	ClearSessions(ctx context.Context) error
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Settings  model.Settings
	History   []model.SessionRecord
	Catalog   []catalog.Item
	Picker    Picker
	Clock     func() time.Time
	Sounder   Sounder
	Recorder  Recorder
	Logger    *slog.Logger
	ResumeKey key.Code
}

// session holds state that only lives between Start and Stop.
type session struct {
	mode        model.Mode
	difficulty  model.Difficulty
	timeLimit   int
	target      int
	total       int
	correct     int
	progress    int
	remaining   int
	startedAt   time.Time
	resumedAt   time.Time
	pausedTotal time.Duration
	frozen      time.Duration
}

// Engine is the training state machine.
type Engine struct {
	settings  model.Settings
	items     []catalog.Item
	working   []catalog.Item
	current   int
	lastError string

	phase      Phase
	sess       session
	completion Completion
	lastRecord *model.SessionRecord
	history    []model.SessionRecord

	picker    Picker
	now       func() time.Time
	sounder   Sounder
	recorder  Recorder
	logger    *slog.Logger
	resumeKey key.Code
}

// New builds an Engine from opts.
func New(opts Options) *Engine {
	e := &Engine{
		settings:  opts.Settings.Clamped(),
		items:     opts.Catalog,
		current:   -1,
		picker:    opts.Picker,
		now:       opts.Clock,
		sounder:   opts.Sounder,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
		resumeKey: opts.ResumeKey,
	}
	if len(e.items) == 0 {
		e.items = catalog.Build()
	}
	if e.picker == nil {
		e.picker = generator.New()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.resumeKey == key.CodeNone {
		e.resumeKey = key.Space
	}
	if len(opts.History) > model.MaxHistoryRecords {
		opts.History = opts.History[:model.MaxHistoryRecords]
	}
	e.history = append([]model.SessionRecord(nil), opts.History...)
	e.refilter()
	return e
}

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Active reports whether a session is running or paused.
func (e *Engine) Active() bool {
	return e.phase == Running || e.phase == Paused
}

// Settings returns the current settings.
func (e *Engine) Settings() model.Settings {
	return e.settings
}

// WorkingSet returns a copy of the eligible items.
func (e *Engine) WorkingSet() []catalog.Item {
	return append([]catalog.Item(nil), e.working...)
}

// CurrentItem returns the item being drilled.
func (e *Engine) CurrentItem() (catalog.Item, bool) {
	if e.current < 0 || e.current >= len(e.working) {
		return catalog.Item{}, false
	}
	return e.working[e.current], true
}

// Rounds returns the total and correct round counts of the current or last session.
func (e *Engine) Rounds() (total, correct int) {
	return e.sess.total, e.sess.correct
}

// SequenceProgress returns how many characters of the current sequence were typed.
func (e *Engine) SequenceProgress() int {
	return e.sess.progress
}

// Remaining returns the Timed countdown in seconds.
func (e *Engine) Remaining() int {
	return e.sess.remaining
}

// Completion returns why the last session stopped.
func (e *Engine) Completion() Completion {
	return e.completion
}

// LastRecord returns the record emitted by the last stop, if any.
func (e *Engine) LastRecord() (model.SessionRecord, bool) {
	if e.lastRecord == nil {
		return model.SessionRecord{}, false
	}
	return *e.lastRecord, true
}

// History returns the in-memory history, most recent first.
func (e *Engine) History() []model.SessionRecord {
	return append([]model.SessionRecord(nil), e.history...)
}

// Elapsed returns session time excluding pauses.
func (e *Engine) Elapsed() time.Duration {
	switch e.phase {
	case Running:
		return e.sess.pausedTotal + e.now().Sub(e.sess.resumedAt)
	case Paused:
		return e.sess.pausedTotal
	case Stopped:
		return e.sess.frozen
	default:
		return 0
	}
}

// Start begins a session using a snapshot of the current settings.
func (e *Engine) Start() error {
	if e.Active() {
		return ErrSessionActive
	}
	now := e.now()
	e.sess = session{
		mode:       e.settings.Mode,
		difficulty: e.settings.Difficulty,
		timeLimit:  e.settings.TimeLimitSeconds,
		target:     e.settings.TargetRounds,
		startedAt:  now,
		resumedAt:  now,
	}
	if e.sess.mode == model.Timed {
		e.sess.remaining = e.sess.timeLimit
	}
	e.completion = CompletionNone
	e.lastRecord = nil
	e.lastError = ""
	e.phase = Running
	e.refilter()
	e.advance()
	e.logger.Debug("session started", "mode", e.sess.mode, "difficulty", e.sess.difficulty, "items", len(e.working))
	return nil
}

// Pause freezes the clock. It reports whether the phase changed.
func (e *Engine) Pause() bool {
	if e.phase != Running {
		return false
	}
	e.sess.pausedTotal += e.now().Sub(e.sess.resumedAt)
	e.phase = Paused
	return true
}

// Resume restarts the clock after Pause. It reports whether the phase changed.
func (e *Engine) Resume() bool {
	if e.phase != Paused {
		return false
	}
	e.sess.resumedAt = e.now()
	e.phase = Running
	return true
}

// TogglePause pauses a running session or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.phase == Paused {
		return e.Resume()
	}
	return e.Pause()
}

// Stop ends the session as a user stop. It reports whether a session was active.
func (e *Engine) Stop() bool {
	return e.finish(CompletionUser)
}

// Tick advances the Timed countdown by one second. It is inert unless running.
func (e *Engine) Tick() Result {
	if e.phase != Running || e.sess.mode != model.Timed {
		return Result{Outcome: Ignored}
	}
	e.sess.remaining--
	if e.sess.remaining <= 0 {
		e.sess.remaining = 0
		e.finish(CompletionTimeUp)
		return Result{Outcome: Ended, Completion: CompletionTimeUp}
	}
	return Result{Outcome: Ignored}
}

// Skip moves to another item without counting a round.
func (e *Engine) Skip() bool {
	if e.phase != Running {
		return false
	}
	e.lastError = ""
	e.advance()
	return true
}

// ApplySettings replaces the settings and re-derives the working set. The
// current item survives when it is still eligible; otherwise a new one is
// picked. Mode parameters of an active session are not changed.
func (e *Engine) ApplySettings(s model.Settings) {
	var currentID string
	if it, ok := e.CurrentItem(); ok {
		currentID = it.ID()
	}
	e.settings = s.Clamped()
	e.refilter()
	if !e.Active() {
		e.current = -1
		return
	}
	if idx := catalog.IndexOf(e.working, currentID); idx >= 0 {
		e.current = idx
		return
	}
	e.advance()
}

// ResetHistory clears the in-memory and persisted history.
func (e *Engine) ResetHistory() error {
	e.history = nil
	if e.recorder == nil {
		return nil
	}
	if err := e.recorder.ClearSessions(context.Background()); err != nil {
		e.logger.Error("failed to clear history", "err", err)
		return err
	}
	return nil
}

func (e *Engine) refilter() {
	e.working = catalog.Filter(e.items, e.settings.Difficulty, e.settings.Custom)
}

// advance picks the next item uniformly at random and resets sequence progress.
func (e *Engine) advance() {
	e.sess.progress = 0
	e.current = e.picker.Pick(len(e.working))
	if e.current >= len(e.working) {
		e.current = -1
	}
}

func (e *Engine) finish(c Completion) bool {
	if !e.Active() {
		return false
	}
	e.sess.frozen = e.Elapsed()
	e.phase = Stopped
	e.completion = c
	e.current = -1
	e.sess.progress = 0
	e.logger.Info("session stopped",
		"reason", c.String(),
		"mode", e.sess.mode,
		"rounds", e.sess.total,
		"correct", e.sess.correct,
		"elapsed", e.sess.frozen.Round(time.Millisecond),
	)
	if e.sess.total > 0 && e.sess.mode != model.Zen {
		e.record()
	}
	return true
}

func (e *Engine) record() {
	rec := model.SessionRecord{
		ID:              uuid.NewString(),
		Timestamp:       e.now(),
		TotalRounds:     e.sess.total,
		CorrectRounds:   e.sess.correct,
		DurationSeconds: e.sess.frozen.Seconds(),
		Difficulty:      e.sess.difficulty,
		Mode:            e.sess.mode,
	}
	e.lastRecord = &rec
	e.history = stats.AppendHistory(e.history, rec)
	if e.recorder == nil {
		return
	}
	if err := e.recorder.InsertSession(context.Background(), rec); err != nil {
		e.logger.Error("failed to save session", "id", rec.ID, "err", err)
	}
}
