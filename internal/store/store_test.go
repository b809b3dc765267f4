package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "keydrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func record(i int, base time.Time) model.SessionRecord {
	return model.SessionRecord{
		ID:              fmt.Sprintf("rec-%03d", i),
		Timestamp:       base.Add(time.Duration(i) * time.Second),
		TotalRounds:     10 + i,
		CorrectRounds:   i,
		DurationSeconds: 12.5,
		Difficulty:      model.Advanced,
		Mode:            model.Timed,
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := st.InsertSession(ctx, record(i, base)); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	records, err := st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].ID != "rec-002" || records[2].ID != "rec-000" {
		t.Fatalf("expected most recent first, got %s..%s", records[0].ID, records[2].ID)
	}
	got := records[0]
	if got.TotalRounds != 12 || got.CorrectRounds != 2 || got.DurationSeconds != 12.5 {
		t.Fatalf("unexpected counters: %+v", got)
	}
	if got.Difficulty != model.Advanced || got.Mode != model.Timed {
		t.Fatalf("unexpected enums: %+v", got)
	}
	if !got.Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Fatalf("unexpected timestamp %v", got.Timestamp)
	}
}

func TestInsertSessionTrimsHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < model.MaxHistoryRecords+5; i++ {
		if err := st.InsertSession(ctx, record(i, base)); err != nil {
			t.Fatalf("insert session %d: %v", i, err)
		}
	}
	records, err := st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != model.MaxHistoryRecords {
		t.Fatalf("expected %d records, got %d", model.MaxHistoryRecords, len(records))
	}
	if records[len(records)-1].ID != "rec-005" {
		t.Fatalf("expected oldest kept record rec-005, got %s", records[len(records)-1].ID)
	}
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	recs := []model.SessionRecord{record(0, base), record(1, base), record(2, base)}
	recs[0].Difficulty = model.Beginner
	recs[1].Mode = model.Challenge
	for _, rec := range recs {
		if err := st.InsertSession(ctx, rec); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	beginner := model.Beginner
	records, err := st.ListSessions(ctx, model.HistoryConfig{Difficulty: &beginner})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-000" {
		t.Fatalf("unexpected difficulty filter result: %+v", records)
	}

	challenge := model.Challenge
	records, err = st.ListSessions(ctx, model.HistoryConfig{Mode: &challenge})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-001" {
		t.Fatalf("unexpected mode filter result: %+v", records)
	}

	since := base.Add(time.Second)
	records, err = st.ListSessions(ctx, model.HistoryConfig{Since: &since, Last: 1})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-002" {
		t.Fatalf("unexpected since/last result: %+v", records)
	}
}

func TestClearSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.InsertSession(ctx, record(0, time.Now())); err != nil {
		t.Fatalf("insert session: %v", err)
	}
	if err := st.ClearSessions(ctx); err != nil {
		t.Fatalf("clear sessions: %v", err)
	}
	records, err := st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d", len(records))
	}
}

func TestInsertSessionRequiresID(t *testing.T) {
	st := openTestStore(t)
	if err := st.InsertSession(context.Background(), model.SessionRecord{}); err == nil {
		t.Fatalf("expected error for record without id")
	}
}
