package engine

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/keydrill/internal/catalog"
	"github.com/verte-zerg/keydrill/internal/key"
	"github.com/verte-zerg/keydrill/internal/model"
)

// Outcome is the verdict for one input.
type Outcome int

const (
	// Ignored means no counter changed.
	Ignored Outcome = iota
	// Correct means a round was won and a new item picked.
	Correct
	// Incorrect means a round was lost.
	Incorrect
	// Progress means a sequence character matched.
	Progress
	// Ended means the session stopped.
	Ended
	// Resumed means a paused session continued.
	Resumed
)

// Result describes what an input did.
type Result struct {
	Outcome    Outcome
	Error      string
	Completion Completion
}

// HandleKey judges one key event against the current item.
func (e *Engine) HandleKey(ev key.Event) Result {
	switch e.phase {
	case Paused:
		if ev.Code == e.resumeKey && ev.Modifiers.Relevant() == key.ModNone {
			e.Resume()
			return Result{Outcome: Resumed}
		}
		return Result{Outcome: Ignored}
	case Running:
	default:
		return Result{Outcome: Ignored}
	}

	if ev.IsModifierOnly() {
		return Result{Outcome: Ignored}
	}
	if ev.Code == key.Escape {
		e.finish(CompletionUser)
		return Result{Outcome: Ended, Completion: CompletionUser}
	}

	item, ok := e.CurrentItem()
	if !ok {
		e.advance()
		return Result{Outcome: Ignored}
	}

	var res Result
	switch item.Kind {
	case catalog.SingleKey:
		res = e.matchSingle(item, ev)
	case catalog.SpecialKey:
		res = e.matchSpecial(item, ev)
	case catalog.Combo:
		res = e.matchCombo(item, ev)
	case catalog.Sequence:
		res = e.matchSequence(item, ev)
	default:
		e.advance()
		return Result{Outcome: Ignored}
	}
	if res.Outcome == Ignored {
		return res
	}
	return e.afterRound(res)
}

func (e *Engine) matchSingle(item catalog.Item, ev key.Event) Result {
	got, ok := ev.FirstRune()
	if !ok {
		return Result{Outcome: Ignored}
	}
	want, _ := utf8.DecodeRuneInString(item.Sequence)
	if foldASCII(got) == want {
		return e.win()
	}
	return e.lose(mismatchText(want, got))
}

func (e *Engine) matchSpecial(item catalog.Item, ev key.Event) Result {
	if ev.Code == item.Code {
		return e.win()
	}
	return e.lose("press " + item.Label)
}

func (e *Engine) matchCombo(item catalog.Item, ev key.Event) Result {
	// The close combo only arrives through HandleCloseRequest.
	if item.IsCloseIntent() {
		return Result{Outcome: Ignored}
	}
	if ev.Code == item.Code && ev.Modifiers.Relevant() == item.Modifiers {
		return e.win()
	}
	return e.lose("press " + item.Label)
}

func (e *Engine) matchSequence(item catalog.Item, ev key.Event) Result {
	got, ok := ev.FirstRune()
	if !ok {
		return Result{Outcome: Ignored}
	}
	want := []rune(item.Sequence)
	if len(want) == 0 {
		e.advance()
		return Result{Outcome: Ignored}
	}
	if e.sess.progress < 0 || e.sess.progress >= len(want) {
		e.sess.progress = 0
	}
	expected := want[e.sess.progress]
	if foldASCII(got) != expected {
		e.sess.progress = 0
		return e.lose(mismatchText(expected, got))
	}
	e.sess.progress++
	if e.sess.progress == len(want) {
		return e.win()
	}
	e.lastError = ""
	return Result{Outcome: Progress}
}

// win counts a correct round and moves to a new item.
func (e *Engine) win() Result {
	e.sess.total++
	e.sess.correct++
	e.lastError = ""
	e.play(true)
	e.advance()
	return Result{Outcome: Correct}
}

// lose counts a failed round; the item stays current.
func (e *Engine) lose(msg string) Result {
	e.sess.total++
	e.lastError = msg
	e.play(false)
	return Result{Outcome: Incorrect, Error: msg}
}

// afterRound checks mode completion once a key changed the counters.
func (e *Engine) afterRound(res Result) Result {
	if e.sess.mode == model.Challenge && e.sess.correct >= e.sess.target {
		e.finish(CompletionChallenge)
		res.Completion = CompletionChallenge
	}
	return res
}

func (e *Engine) play(correct bool) {
	if e.sounder != nil && e.settings.Sound {
		e.sounder.Play(correct)
	}
}

func foldASCII(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToLower(r)
	}
	return r
}

func mismatchText(want, got rune) string {
	return fmt.Sprintf("expected '%s', got '%s'", runeName(want), runeName(got))
}

func runeName(r rune) string {
	switch r {
	case ' ':
		return "Space"
	case '\t':
		return "Tab"
	}
	if r > 0 && r < 0x20 {
		return "Ctrl+" + string('@'+r)
	}
	return string(unicode.ToUpper(r))
}
