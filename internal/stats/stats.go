// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/keydrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Live holds the running numbers shown during a session.
type Live struct {
	Accuracy        float64
	RoundsPerMinute float64
}

// Best summarizes a history.
type Best struct {
	Speed    float64
	Accuracy float64
	Sessions int
}

// ComputeLiveStats computes accuracy (percent) and rounds per minute.
// Elapsed time is floored at one second so the first rounds do not spike.
func ComputeLiveStats(total, correct int, elapsedMs int64) Live {
	var live Live
	if total > 0 && correct > 0 {
		live.Accuracy = 100 * float64(correct) / float64(total)
	}
	seconds := math.Max(float64(elapsedMs)/1000.0, 1)
	live.RoundsPerMinute = 60 * float64(total) / seconds
	return live
}

// RecordSpeed returns rounds per minute for a record, 0 when it has no duration.
func RecordSpeed(rec model.SessionRecord) float64 {
	if rec.DurationSeconds <= 0 {
		return 0
	}
	return 60 * float64(rec.TotalRounds) / rec.DurationSeconds
}

// RecordAccuracy returns the accuracy percent for a record.
func RecordAccuracy(rec model.SessionRecord) float64 {
	if rec.TotalRounds <= 0 {
		return 0
	}
	return 100 * float64(rec.CorrectRounds) / float64(rec.TotalRounds)
}

// AppendHistory prepends rec and keeps the most recent MaxHistoryRecords.
func AppendHistory(history []model.SessionRecord, rec model.SessionRecord) []model.SessionRecord {
	n := len(history) + 1
	if n > model.MaxHistoryRecords {
		n = model.MaxHistoryRecords
	}
	out := make([]model.SessionRecord, 0, n)
	out = append(out, rec)
	for _, r := range history {
		if len(out) == n {
			break
		}
		out = append(out, r)
	}
	return out
}

// BestOf returns the best speed and accuracy over a history.
func BestOf(history []model.SessionRecord) Best {
	best := Best{Sessions: len(history)}
	for _, rec := range history {
		if rec.DurationSeconds > 0 {
			best.Speed = math.Max(best.Speed, RecordSpeed(rec))
		}
		if rec.TotalRounds > 0 {
			best.Accuracy = math.Max(best.Accuracy, RecordAccuracy(rec))
		}
	}
	return best
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// SpeedTrend returns a smoothed speed series oldest-first for a
// most-recent-first history.
func SpeedTrend(history []model.SessionRecord, window int) []float64 {
	values := make([]float64, len(history))
	for i, rec := range history {
		values[len(history)-1-i] = RecordSpeed(rec)
	}
	return MovingAverage(values, window)
}

// RenderSummary prints the best-of summary for a history.
func RenderSummary(w io.Writer, history []model.SessionRecord) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	best := BestOf(history)
	var totalSpeed, totalAcc float64
	for _, rec := range history {
		totalSpeed += RecordSpeed(rec)
		totalAcc += RecordAccuracy(rec)
	}
	count := float64(len(history))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", best.Sessions),
		fmt.Sprintf("Best speed: %.1f rounds/min", best.Speed),
		fmt.Sprintf("Best accuracy: %.1f%%", best.Accuracy),
		fmt.Sprintf("Avg speed: %.1f rounds/min", totalSpeed/count),
		fmt.Sprintf("Avg accuracy: %.1f%%", totalAcc/count),
		fmt.Sprintf("Trend: %s", Sparkline(SpeedTrend(history, 5))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistoryTable prints up to limit records, most recent first.
func RenderHistoryTable(w io.Writer, history []model.SessionRecord, limit int) error {
	if len(history) == 0 {
		return nil
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	rows := make([][]string, 0, len(history))
	for _, rec := range history {
		rows = append(rows, HistoryRow(rec))
	}
	for _, line := range alignRows(HistoryColumns, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// HistoryRow formats one record as table cells.
func HistoryRow(rec model.SessionRecord) []string {
	return []string{
		rec.Timestamp.Local().Format("2006-01-02 15:04"),
		rec.Difficulty.Title(),
		rec.Mode.Title(),
		fmt.Sprintf("%d/%d", rec.CorrectRounds, rec.TotalRounds),
		fmt.Sprintf("%.1f%%", RecordAccuracy(rec)),
		fmt.Sprintf("%.1f/min", RecordSpeed(rec)),
	}
}
