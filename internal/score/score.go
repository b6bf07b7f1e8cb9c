// Package score combines metric results into one comparable scalar under
// configurable weights.
package score

import (
	"errors"
	"fmt"
	"sort"

	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/metric"
)

// ErrUnknownMetric is returned when the weights reference a metric name the
// evaluator set does not recognize.
var ErrUnknownMetric = errors.New("unknown metric name")

// Weights maps metric names to signed weights. A positive weight rewards a
// higher value and a negative weight rewards a lower one, so lower-is-better
// metrics conventionally carry negative weights. Metrics missing from the
// map weigh zero: they are still computed and reported but excluded from the
// scalar.
type Weights map[string]float64

// DefaultWeights returns a balanced weight set following the sign
// convention: negative on every lower-is-better metric.
func DefaultWeights() Weights {
	return Weights{
		"effort":       -1,
		"same_finger":  -3,
		"load_balance": -5,
		"alternation":  1,
		"travel":       -0.5,
	}
}

// Vector holds all metric results for one layout, in the canonical
// evaluator order, plus the combined scalar. Higher scores rank better.
type Vector struct {
	Metrics []metric.Result
	Score   float64
}

// Metric returns the named result from the vector.
func (v Vector) Metric(name string) (metric.Result, bool) {
	for _, r := range v.Metrics {
		if r.Name == name {
			return r, true
		}
	}
	return metric.Result{}, false
}

// Scorer evaluates all metrics and reduces them to a scalar. It is
// stateless after construction and safe for concurrent use.
type Scorer struct {
	evaluators []metric.Evaluator
	weights    Weights
}

// NewScorer validates the weight names against the evaluator set and builds
// a scorer over the full canonical evaluator list.
func NewScorer(weights Weights) (*Scorer, error) {
	recognized := make(map[string]struct{})
	for _, name := range metric.Names() {
		recognized[name] = struct{}{}
	}
	w := make(Weights, len(weights))
	for name, value := range weights {
		if _, ok := recognized[name]; !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
		}
		w[name] = value
	}
	return &Scorer{evaluators: metric.All(), weights: w}, nil
}

// Score evaluates every metric for the layout and combines the weighted
// values into the scalar.
func (s *Scorer) Score(l *layout.Layout, c *corpus.Corpus) Vector {
	v := Vector{Metrics: make([]metric.Result, 0, len(s.evaluators))}
	for _, e := range s.evaluators {
		r := e.Evaluate(l, c)
		v.Metrics = append(v.Metrics, r)
		v.Score += s.weights[r.Name] * r.Value
	}
	return v
}

// Compare orders two score vectors: 1 if a ranks strictly better, -1 if b
// does, 0 if equal. Scalar score decides first; ties break by comparing
// metric values in lexicographic name order, honoring each metric's
// direction, so rankings are reproducible.
func Compare(a, b Vector) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return 1
		}
		return -1
	}
	names := make([]string, 0, len(a.Metrics))
	for _, r := range a.Metrics {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	for _, name := range names {
		ra, okA := a.Metric(name)
		rb, okB := b.Metric(name)
		if !okA || !okB || ra.Value == rb.Value {
			continue
		}
		better := ra.Value > rb.Value
		if ra.Direction == metric.LowerIsBetter {
			better = ra.Value < rb.Value
		}
		if better {
			return 1
		}
		return -1
	}
	return 0
}
