package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeLiveStats(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		correct   int
		elapsedMs int64
		accuracy  float64
		rpm       float64
	}{
		{name: "empty", total: 0, correct: 0, elapsedMs: 0, accuracy: 0, rpm: 0},
		{name: "floored elapsed", total: 2, correct: 1, elapsedMs: 200, accuracy: 50, rpm: 120},
		{name: "one minute", total: 30, correct: 27, elapsedMs: 60_000, accuracy: 90, rpm: 30},
		{name: "no correct", total: 4, correct: 0, elapsedMs: 2_000, accuracy: 0, rpm: 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			live := ComputeLiveStats(tc.total, tc.correct, tc.elapsedMs)
			if !almostEqual(live.Accuracy, tc.accuracy) {
				t.Fatalf("accuracy: expected %v, got %v", tc.accuracy, live.Accuracy)
			}
			if !almostEqual(live.RoundsPerMinute, tc.rpm) {
				t.Fatalf("rpm: expected %v, got %v", tc.rpm, live.RoundsPerMinute)
			}
		})
	}
}

func TestAppendHistoryCaps(t *testing.T) {
	var history []model.SessionRecord
	for i := 0; i < model.MaxHistoryRecords+1; i++ {
		history = AppendHistory(history, model.SessionRecord{TotalRounds: i + 1})
	}
	if len(history) != model.MaxHistoryRecords {
		t.Fatalf("expected %d records, got %d", model.MaxHistoryRecords, len(history))
	}
	if history[0].TotalRounds != model.MaxHistoryRecords+1 {
		t.Fatalf("expected newest record first, got %d", history[0].TotalRounds)
	}
	if history[len(history)-1].TotalRounds != 2 {
		t.Fatalf("expected oldest record dropped, last is %d", history[len(history)-1].TotalRounds)
	}
}

func TestAppendHistoryDoesNotAliasInput(t *testing.T) {
	history := []model.SessionRecord{{ID: "old"}}
	out := AppendHistory(history, model.SessionRecord{ID: "new"})
	out[1].ID = "changed"
	if history[0].ID != "old" {
		t.Fatalf("input history was modified")
	}
}

func TestBestOf(t *testing.T) {
	best := BestOf([]model.SessionRecord{{TotalRounds: 10, CorrectRounds: 10, DurationSeconds: 10}})
	if !almostEqual(best.Speed, 60) || !almostEqual(best.Accuracy, 100) || best.Sessions != 1 {
		t.Fatalf("unexpected best: %+v", best)
	}

	best = BestOf([]model.SessionRecord{
		{TotalRounds: 10, CorrectRounds: 5, DurationSeconds: 0},
		{TotalRounds: 20, CorrectRounds: 15, DurationSeconds: 60},
	})
	if !almostEqual(best.Speed, 20) {
		t.Fatalf("zero-duration record should not count toward speed, got %v", best.Speed)
	}
	if !almostEqual(best.Accuracy, 75) {
		t.Fatalf("expected best accuracy 75, got %v", best.Accuracy)
	}

	if empty := BestOf(nil); empty != (Best{}) {
		t.Fatalf("expected zero best for empty history, got %+v", empty)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 1}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); len(got) != 3 {
		t.Fatalf("flat sparkline should keep length, got %q", got)
	}
}

func TestSpeedTrendIsOldestFirst(t *testing.T) {
	history := []model.SessionRecord{
		{TotalRounds: 30, DurationSeconds: 60},
		{TotalRounds: 10, DurationSeconds: 60},
	}
	trend := SpeedTrend(history, 1)
	if !almostEqual(trend[0], 10) || !almostEqual(trend[1], 30) {
		t.Fatalf("unexpected trend %v", trend)
	}
}

func TestRenderSummaryAndTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	history := []model.SessionRecord{{
		Timestamp:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
		TotalRounds:     10,
		CorrectRounds:   9,
		DurationSeconds: 30,
		Difficulty:      model.Advanced,
		Mode:            model.Challenge,
	}}
	buf.Reset()
	if err := RenderSummary(&buf, history); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "Best speed: 20.0 rounds/min") {
		t.Fatalf("missing best speed in %q", buf.String())
	}

	buf.Reset()
	if err := RenderHistoryTable(&buf, history, 20); err != nil {
		t.Fatalf("render table: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Difficulty", "Advanced", "Challenge", "9/10", "90.0%", "20.0/min", "2024-03-01 12:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
