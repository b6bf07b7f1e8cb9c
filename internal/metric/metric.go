// Package metric contains the layout quality evaluators. Each evaluator is a
// pure function of a layout and a corpus; evaluators run independently and
// in any order.
package metric

import (
	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
)

// Direction states which way a metric value improves.
type Direction int

// Metric directions.
const (
	LowerIsBetter Direction = iota
	HigherIsBetter
)

// String returns a human-readable direction label.
func (d Direction) String() string {
	if d == HigherIsBetter {
		return "higher is better"
	}
	return "lower is better"
}

// Result is one named metric value for one (layout, corpus) pair.
type Result struct {
	Name      string
	Value     float64
	Direction Direction
}

// Evaluator computes one metric. Implementations are stateless.
type Evaluator interface {
	// Name is the stable identifier used in weight configuration.
	Name() string
	// Direction states which way the value improves.
	Direction() Direction
	// Evaluate reduces the layout and corpus to one value. It is total over
	// valid inputs and never fails.
	Evaluate(l *layout.Layout, c *corpus.Corpus) Result
}

// All returns the full evaluator set in canonical order.
func All() []Evaluator {
	return []Evaluator{
		Effort{},
		SameFingerBigrams{},
		LoadBalance{},
		HandAlternation{},
		TravelDistance{},
	}
}

// Names returns the recognized metric names in canonical order.
func Names() []string {
	evals := All()
	names := make([]string, len(evals))
	for i, e := range evals {
		names[i] = e.Name()
	}
	return names
}
