package score

import (
	"errors"
	"testing"

	"github.com/verte-zerg/tenboard/internal/board"
	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/metric"
)

func chord(t *testing.T, keys ...board.Key) board.Chord {
	t.Helper()
	c, err := board.NewChord(keys...)
	if err != nil {
		t.Fatalf("failed to build chord: %v", err)
	}
	return c
}

func buildLayout(t *testing.T, assignment map[rune]board.Chord) *layout.Layout {
	t.Helper()
	l, err := layout.Build(assignment)
	if err != nil {
		t.Fatalf("failed to build layout: %v", err)
	}
	return l
}

func TestNewScorerRejectsUnknownMetric(t *testing.T) {
	_, err := NewScorer(Weights{"wpm": 1})
	if !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestDefaultWeightsAreRecognized(t *testing.T) {
	if _, err := NewScorer(DefaultWeights()); err != nil {
		t.Fatalf("default weights rejected: %v", err)
	}
}

func TestMissingWeightsExcludeFromScalar(t *testing.T) {
	s, err := NewScorer(Weights{})
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	l := buildLayout(t, map[rune]board.Chord{'a': chord(t, 0), 'b': chord(t, 1)})
	c, err := corpus.FromFrequencies(map[rune]float64{'a': 1, 'b': 1}, nil)
	if err != nil {
		t.Fatalf("failed to build corpus: %v", err)
	}
	v := s.Score(l, c)
	if v.Score != 0 {
		t.Fatalf("zero weights produced scalar %v", v.Score)
	}
	if len(v.Metrics) != len(metric.Names()) {
		t.Fatalf("expected all metrics reported, got %d", len(v.Metrics))
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	s, err := NewScorer(DefaultWeights())
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	l := layout.ASETNIOP()
	c := corpus.English()
	a := s.Score(l, c)
	b := s.Score(l, c)
	if a.Score != b.Score {
		t.Fatalf("scalar differs: %v vs %v", a.Score, b.Score)
	}
	for i := range a.Metrics {
		if a.Metrics[i] != b.Metrics[i] {
			t.Fatalf("metric %d differs: %v vs %v", i, a.Metrics[i], b.Metrics[i])
		}
	}
}

// With weights {effort: -1}, moving the most frequent character to the
// cheapest key must strictly raise the score.
func TestNegativeEffortWeightRewardsCheapKeys(t *testing.T) {
	s, err := NewScorer(Weights{"effort": -1})
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	c, err := corpus.FromFrequencies(map[rune]float64{'a': 0.9, 'b': 0.1}, nil)
	if err != nil {
		t.Fatalf("failed to build corpus: %v", err)
	}
	// Thumb (key 4) is cheaper than pinky (key 0).
	good := buildLayout(t, map[rune]board.Chord{'a': chord(t, 4), 'b': chord(t, 0)})
	bad := buildLayout(t, map[rune]board.Chord{'a': chord(t, 0), 'b': chord(t, 4)})
	vGood := s.Score(good, c)
	vBad := s.Score(bad, c)
	if vGood.Score <= vBad.Score {
		t.Fatalf("expected cheap placement to score higher: %v vs %v", vGood.Score, vBad.Score)
	}
	if Compare(vGood, vBad) != 1 {
		t.Fatalf("expected Compare to prefer cheap placement")
	}
}

func TestCompareTieBreaksByMetricName(t *testing.T) {
	a := Vector{
		Score: 1,
		Metrics: []metric.Result{
			{Name: "effort", Value: 2, Direction: metric.LowerIsBetter},
			{Name: "alternation", Value: 0.5, Direction: metric.HigherIsBetter},
		},
	}
	b := Vector{
		Score: 1,
		Metrics: []metric.Result{
			{Name: "effort", Value: 1, Direction: metric.LowerIsBetter},
			{Name: "alternation", Value: 0.9, Direction: metric.HigherIsBetter},
		},
	}
	// "alternation" sorts before "effort"; b has the better alternation.
	if Compare(a, b) != -1 {
		t.Fatalf("expected b to win the tie-break")
	}
	if Compare(b, a) != 1 {
		t.Fatalf("expected tie-break to be antisymmetric")
	}
	if Compare(a, a) != 0 {
		t.Fatalf("expected identical vectors to compare equal")
	}
}

// Raising a metric's weight must not lower that metric's contribution to an
// ordering between two fixed vectors.
func TestWeightMonotonicity(t *testing.T) {
	c, err := corpus.FromFrequencies(map[rune]float64{'a': 0.9, 'b': 0.1}, nil)
	if err != nil {
		t.Fatalf("failed to build corpus: %v", err)
	}
	good := buildLayout(t, map[rune]board.Chord{'a': chord(t, 4), 'b': chord(t, 0)})
	bad := buildLayout(t, map[rune]board.Chord{'a': chord(t, 0), 'b': chord(t, 4)})

	var prev float64
	for i, w := range []float64{-1, -2, -4} {
		s, err := NewScorer(Weights{"effort": w})
		if err != nil {
			t.Fatalf("failed to build scorer: %v", err)
		}
		gap := s.Score(good, c).Score - s.Score(bad, c).Score
		if gap <= 0 {
			t.Fatalf("expected positive gap at weight %v", w)
		}
		if i > 0 && gap < prev {
			t.Fatalf("gap shrank as the weight magnitude grew: %v -> %v", prev, gap)
		}
		prev = gap
	}
}
