package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/keydrill/internal/catalog"
	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/stats"
)

// ZenStatsText replaces live statistics in Zen mode.
const ZenStatsText = "Zen mode: no score, just keys"

// Display is what the host needs to draw one frame.
type Display struct {
	Phase      Phase
	Mode       model.Mode
	Kind       catalog.Kind
	HasItem    bool
	Text       string
	Label      string
	Progress   int
	Length     int
	Highlight  []string
	Modifiers  key.Modifier
	Error      string
	Stats      string
	Live       stats.Live
	Timer      string
	Challenge  string
	Total      int
	Correct    int
	Completion Completion
}

// Display snapshots the engine for rendering.
func (e *Engine) Display() Display {
	// Outside a session the settings describe what the next one will be.
	mode := e.settings.Mode
	if e.Active() {
		mode = e.sess.mode
	}
	d := Display{
		Phase:      e.phase,
		Mode:       mode,
		Error:      e.lastError,
		Total:      e.sess.total,
		Correct:    e.sess.correct,
		Completion: e.completion,
	}

	if it, ok := e.CurrentItem(); ok && e.Active() {
		d.HasItem = true
		d.Kind = it.Kind
		d.Text = it.Label
		d.Label = it.Label
		d.Highlight, d.Modifiers = highlightFor(it, e.sess.progress)
		if it.Kind == catalog.Sequence {
			d.Progress = e.sess.progress
			d.Length = it.Length()
			d.Label = fmt.Sprintf("%s (%d/%d)", it.Label, d.Progress, d.Length)
		}
	}

	elapsed := e.Elapsed()
	d.Live = stats.ComputeLiveStats(e.sess.total, e.sess.correct, elapsed.Milliseconds())
	if mode == model.Zen {
		d.Stats = ZenStatsText
	} else {
		d.Stats = fmt.Sprintf("Accuracy: %.1f%%  Speed: %.1f/min  Rounds: %d/%d",
			d.Live.Accuracy, d.Live.RoundsPerMinute, e.sess.correct, e.sess.total)
	}

	if mode == model.Timed {
		remaining := e.settings.TimeLimitSeconds
		if e.Active() {
			remaining = e.sess.remaining
		}
		d.Timer = formatClock(time.Duration(remaining) * time.Second)
	} else {
		d.Timer = formatClock(elapsed)
	}

	if mode == model.Challenge {
		target := e.settings.TargetRounds
		if e.Active() {
			target = e.sess.target
		}
		d.Challenge = fmt.Sprintf("%d/%d", e.sess.correct, target)
	}
	return d
}

// highlightFor returns the keycaps to light up and the modifiers held.
func highlightFor(it catalog.Item, progress int) ([]string, key.Modifier) {
	switch it.Kind {
	case catalog.SingleKey:
		return []string{strings.ToUpper(it.Sequence)}, key.ModNone
	case catalog.Sequence:
		runes := []rune(it.Sequence)
		if progress < 0 || progress >= len(runes) {
			progress = 0
		}
		return []string{strings.ToUpper(string(runes[progress]))}, key.ModNone
	case catalog.SpecialKey:
		return []string{it.Code.Keycap()}, key.ModNone
	case catalog.Combo:
		caps := append(it.Modifiers.Names(), it.Code.Keycap())
		return caps, it.Modifiers
	default:
		return nil, key.ModNone
	}
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
