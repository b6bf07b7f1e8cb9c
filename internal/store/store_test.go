package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/metric"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tenboard.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func TestInsertAndListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	run := Run{
		StartedAt:   now.Add(-time.Minute),
		EndedAt:     now,
		Policy:      "hill_climb",
		CorpusName:  "english",
		Alphabet:    26,
		Rounds:      500,
		Evaluations: 4001,
		BestScore:   -1.25,
		SeedScore:   -2.5,
		Stopped:     "iterations",
		RandSeed:    42,
	}
	metrics := []metric.Result{
		{Name: "effort", Value: 1.5, Direction: metric.LowerIsBetter},
		{Name: "alternation", Value: 0.6, Direction: metric.HigherIsBetter},
	}
	id, err := s.InsertRun(ctx, run, metrics, layout.ASETNIOP())
	if err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected nonzero run id")
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != id || got.Policy != run.Policy || got.BestScore != run.BestScore {
		t.Fatalf("unexpected run %+v", got)
	}
	if !got.EndedAt.Equal(run.EndedAt) {
		t.Fatalf("end time round trip broke: %v vs %v", got.EndedAt, run.EndedAt)
	}
}

func TestRunMetricsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	metrics := []metric.Result{
		{Name: "effort", Value: 2.25, Direction: metric.LowerIsBetter},
		{Name: "alternation", Value: 0.4, Direction: metric.HigherIsBetter},
	}
	id, err := s.InsertRun(ctx, Run{StartedAt: time.Now(), EndedAt: time.Now()}, metrics, nil)
	if err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	got, err := s.RunMetrics(ctx, id)
	if err != nil {
		t.Fatalf("failed to read metrics: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(got))
	}
	// Ordered by name: alternation first.
	if got[0].Name != "alternation" || got[0].Direction != metric.HigherIsBetter {
		t.Fatalf("unexpected metric %+v", got[0])
	}
	if got[1].Name != "effort" || got[1].Value != 2.25 || got[1].Direction != metric.LowerIsBetter {
		t.Fatalf("unexpected metric %+v", got[1])
	}
}

func TestRunLayoutRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	best := layout.ASETNIOP()
	id, err := s.InsertRun(ctx, Run{StartedAt: time.Now(), EndedAt: time.Now()}, nil, best)
	if err != nil {
		t.Fatalf("failed to insert run: %v", err)
	}
	got, err := s.RunLayout(ctx, id)
	if err != nil {
		t.Fatalf("failed to restore layout: %v", err)
	}
	if !got.Equal(best) {
		t.Fatalf("restored layout differs from stored one")
	}
}

func TestRunLayoutMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.RunLayout(context.Background(), 999); err == nil {
		t.Fatalf("expected error for unknown run")
	}
}
