package search

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/score"
)

// Result is the outcome of a completed search run. Best is the best layout
// observed anywhere in the run, which under probabilistic acceptance is not
// necessarily the final current layout.
type Result struct {
	Best       *layout.Layout
	BestVector score.Vector
	Seed       *layout.Layout
	SeedVector score.Vector

	// Rounds is the number of explore/accept rounds executed.
	Rounds int
	// Evaluations counts scored layouts, seed included.
	Evaluations int
	// History records the best score after each round.
	History []float64
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Stopped names what ended the run: "iterations", "time" or "stagnation".
	Stopped string
	// RandSeed is the resolved RNG seed, useful for replaying a run that was
	// started with a time-based seed.
	RandSeed int64
}

// Engine runs local search over layouts with a fixed scorer. Preconditions
// are checked at construction; Run never fails afterwards.
type Engine struct {
	scorer *score.Scorer
	opts   Options
}

// New validates the options and builds an engine.
func New(scorer *score.Scorer, opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()
	return &Engine{scorer: scorer, opts: opts}, nil
}

type candidate struct {
	layout *layout.Layout
	vector score.Vector
}

// Run explores the layout space until the budget is exhausted and returns
// the best layout observed. Context cancellation is honored at round
// boundaries.
func (e *Engine) Run(ctx context.Context, c *corpus.Corpus) (Result, error) {
	start := time.Now()
	rnd := rand.New(rand.NewSource(e.opts.RandSeed))
	log := e.opts.Logger

	seed := e.opts.Seed
	if seed == nil {
		var err error
		seed, err = layout.Random(e.opts.alphabet(), rnd)
		if err != nil {
			return Result{}, fmt.Errorf("failed to sample seed layout: %w", err)
		}
	}

	current := seed
	currentVector := e.scorer.Score(current, c)
	res := Result{
		Best:        current,
		BestVector:  currentVector,
		Seed:        seed,
		SeedVector:  currentVector,
		Evaluations: 1,
		RandSeed:    e.opts.RandSeed,
	}

	alphabet := current.Alphabet()
	var deadline time.Time
	if e.opts.TimeLimit > 0 {
		deadline = start.Add(e.opts.TimeLimit)
	}

	log.Info("search started",
		zap.String("policy", e.opts.Policy.Name()),
		zap.Int("alphabet", len(alphabet)),
		zap.Int("iterations", e.opts.Iterations),
		zap.Duration("time_limit", e.opts.TimeLimit),
		zap.Int64("rand_seed", e.opts.RandSeed),
		zap.Float64("seed_score", currentVector.Score),
	)

	stagnant := 0
	for {
		if e.opts.Iterations > 0 && res.Rounds >= e.opts.Iterations {
			res.Stopped = "iterations"
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			res.Stopped = "time"
			break
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		// Explore: draw the round's swap moves up front so the RNG stream is
		// independent of scoring concurrency, then score the batch in
		// parallel.
		neighbors := make([]candidate, e.opts.Neighbors)
		for i := range neighbors {
			a := alphabet[rnd.Intn(len(alphabet))]
			b := alphabet[rnd.Intn(len(alphabet))]
			for b == a {
				b = alphabet[rnd.Intn(len(alphabet))]
			}
			n, err := current.Swap(a, b)
			if err != nil {
				return Result{}, fmt.Errorf("failed to mutate layout: %w", err)
			}
			neighbors[i].layout = n
		}
		eg := new(errgroup.Group)
		eg.SetLimit(e.opts.Parallelism)
		for i := range neighbors {
			eg.Go(func() error {
				neighbors[i].vector = e.scorer.Score(neighbors[i].layout, c)
				return nil
			})
		}
		// Scoring is total over valid inputs; the group exists for bounded
		// fan-out, not error propagation.
		_ = eg.Wait()
		res.Evaluations += len(neighbors)

		// Deterministic reduction: best vector wins, first index on ties.
		bestIdx := 0
		for i := 1; i < len(neighbors); i++ {
			if score.Compare(neighbors[i].vector, neighbors[bestIdx].vector) > 0 {
				bestIdx = i
			}
		}
		pick := neighbors[bestIdx]

		// Accept: the single serialization point of the round.
		delta := pick.vector.Score - currentVector.Score
		if e.opts.Policy.Accept(delta, res.Rounds, rnd) {
			current = pick.layout
			currentVector = pick.vector
		}

		improved := score.Compare(pick.vector, res.BestVector) > 0
		if improved {
			res.Best = pick.layout
			res.BestVector = pick.vector
			stagnant = 0
		} else {
			stagnant++
		}
		res.Rounds++
		res.History = append(res.History, res.BestVector.Score)

		if res.Rounds%1000 == 0 {
			log.Debug("search progress",
				zap.Int("round", res.Rounds),
				zap.Float64("best_score", res.BestVector.Score),
				zap.Float64("current_score", currentVector.Score),
			)
		}

		if e.opts.Stagnation > 0 && stagnant >= e.opts.Stagnation {
			res.Stopped = "stagnation"
			break
		}
	}

	res.Duration = time.Since(start)
	log.Info("search finished",
		zap.Int("rounds", res.Rounds),
		zap.Int("evaluations", res.Evaluations),
		zap.Float64("best_score", res.BestVector.Score),
		zap.String("stopped", res.Stopped),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
