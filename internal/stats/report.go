package stats

import (
	"context"

	"github.com/verte-zerg/keydrill/internal/model"
)

// TrendWindow is the moving-average window applied to the speed trend.
const TrendWindow = 5

// Source lists stored session records, most recent first.
type Source interface {
	ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Records []model.SessionRecord
	Best    Best
	Trend   []float64
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, src Source, cfg model.HistoryConfig) (Report, error) {
	records, err := src.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[:cfg.Last]
	}
	return Report{
		Records: records,
		Best:    BestOf(records),
		Trend:   SpeedTrend(records, TrendWindow),
	}, nil
}
