// Package search explores the space of valid layouts with a scorer as the
// objective.
package search

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/tenboard/internal/layout"
)

// ErrEmptySearchSpace is returned when the alphabet has fewer than two
// characters, so no swap move exists.
var ErrEmptySearchSpace = errors.New("alphabet admits no swap")

// ErrInvalidBudget is returned when the iteration and time budgets are both
// zero.
var ErrInvalidBudget = errors.New("iteration and time budgets are both zero")

// Default option values.
const (
	DefaultNeighbors   = 8
	DefaultParallelism = 1
)

// Options configures one search run.
type Options struct {
	// Seed is the starting layout. When nil, a uniform random layout over
	// Alphabet is sampled instead.
	Seed *layout.Layout

	// Alphabet is the character set to lay out when Seed is nil.
	Alphabet []rune

	// Iterations caps the number of rounds. Zero means unlimited, in which
	// case TimeLimit must be set.
	Iterations int

	// TimeLimit caps the wall-clock duration, checked at round boundaries.
	// Zero means no deadline.
	TimeLimit time.Duration

	// Stagnation stops the run after this many consecutive rounds without
	// improving the best score. Zero disables the cutoff.
	Stagnation int

	// Policy decides whether a neighbor replaces the current layout.
	// Defaults to HillClimb.
	Policy Policy

	// Neighbors is the number of candidate swaps generated and scored per
	// round. Defaults to DefaultNeighbors.
	Neighbors int

	// Parallelism bounds concurrent neighbor scoring. Defaults to
	// DefaultParallelism; runs are fully reproducible at any value since
	// neighbor generation happens before scoring fans out.
	Parallelism int

	// RandSeed seeds the run's RNG. Zero picks a time-based seed.
	RandSeed int64

	// Logger receives progress events. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) alphabet() []rune {
	if o.Seed != nil {
		return o.Seed.Alphabet()
	}
	return o.Alphabet
}

func (o *Options) applyDefaults() {
	if o.Policy == nil {
		o.Policy = HillClimb{}
	}
	if o.Neighbors <= 0 {
		o.Neighbors = DefaultNeighbors
	}
	if o.Parallelism <= 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.RandSeed == 0 {
		o.RandSeed = time.Now().UnixNano()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

func (o Options) validate() error {
	if o.Iterations == 0 && o.TimeLimit == 0 {
		return ErrInvalidBudget
	}
	if len(o.alphabet()) < 2 {
		return ErrEmptySearchSpace
	}
	return nil
}
