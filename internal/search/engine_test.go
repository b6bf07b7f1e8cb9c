package search

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/score"
)

func newScorer(t *testing.T) *score.Scorer {
	t.Helper()
	s, err := score.NewScorer(score.DefaultWeights())
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}
	return s
}

func TestNewRejectsZeroBudget(t *testing.T) {
	_, err := New(newScorer(t), Options{Alphabet: []rune("abc")})
	if !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}

func TestNewRejectsTinyAlphabet(t *testing.T) {
	_, err := New(newScorer(t), Options{Alphabet: []rune("a"), Iterations: 10})
	if !errors.Is(err, ErrEmptySearchSpace) {
		t.Fatalf("expected ErrEmptySearchSpace, got %v", err)
	}
	_, err = New(newScorer(t), Options{Iterations: 10})
	if !errors.Is(err, ErrEmptySearchSpace) {
		t.Fatalf("expected ErrEmptySearchSpace for empty alphabet, got %v", err)
	}
}

func TestRunImprovesOnSeed(t *testing.T) {
	engine, err := New(newScorer(t), Options{
		Alphabet:   []rune(corpusAlphabet()),
		Iterations: 300,
		RandSeed:   42,
	})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	res, err := engine.Run(context.Background(), corpus.English())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.BestVector.Score < res.SeedVector.Score {
		t.Fatalf("best score %v below seed score %v", res.BestVector.Score, res.SeedVector.Score)
	}
	if res.Rounds != 300 || res.Stopped != "iterations" {
		t.Fatalf("unexpected termination: rounds=%d stopped=%q", res.Rounds, res.Stopped)
	}
	if len(res.History) != res.Rounds {
		t.Fatalf("history has %d entries for %d rounds", len(res.History), res.Rounds)
	}
	for i := 1; i < len(res.History); i++ {
		if res.History[i] < res.History[i-1] {
			t.Fatalf("best-score history regressed at round %d", i)
		}
	}
}

func TestRunWithExplicitSeedLayout(t *testing.T) {
	seed := layout.ASETNIOP()
	engine, err := New(newScorer(t), Options{
		Seed:       seed,
		Iterations: 100,
		RandSeed:   1,
	})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	res, err := engine.Run(context.Background(), corpus.English())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !res.Seed.Equal(seed) {
		t.Fatalf("seed layout not preserved in result")
	}
	if res.BestVector.Score < res.SeedVector.Score {
		t.Fatalf("best score fell below the seed")
	}
}

func TestRunIsReproducible(t *testing.T) {
	run := func(parallelism int) Result {
		engine, err := New(newScorer(t), Options{
			Alphabet:    []rune(corpusAlphabet()),
			Iterations:  200,
			RandSeed:    7,
			Parallelism: parallelism,
		})
		if err != nil {
			t.Fatalf("failed to build engine: %v", err)
		}
		res, err := engine.Run(context.Background(), corpus.English())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return res
	}
	serial := run(1)
	parallel := run(4)
	if serial.BestVector.Score != parallel.BestVector.Score {
		t.Fatalf("parallelism changed the outcome: %v vs %v",
			serial.BestVector.Score, parallel.BestVector.Score)
	}
	if !serial.Best.Equal(parallel.Best) {
		t.Fatalf("parallelism changed the best layout")
	}
}

func TestRunStopsOnStagnation(t *testing.T) {
	engine, err := New(newScorer(t), Options{
		Alphabet:   []rune(corpusAlphabet()),
		Iterations: 100000,
		Stagnation: 50,
		RandSeed:   3,
	})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	res, err := engine.Run(context.Background(), corpus.English())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Stopped != "stagnation" {
		t.Fatalf("expected stagnation stop, got %q after %d rounds", res.Stopped, res.Rounds)
	}
}

func TestRunHonorsTimeLimit(t *testing.T) {
	engine, err := New(newScorer(t), Options{
		Alphabet:  []rune(corpusAlphabet()),
		TimeLimit: 50 * time.Millisecond,
		RandSeed:  5,
	})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	start := time.Now()
	res, err := engine.Run(context.Background(), corpus.English())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Stopped != "time" {
		t.Fatalf("expected time stop, got %q", res.Stopped)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatalf("time-limited run overshot its budget")
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	engine, err := New(newScorer(t), Options{
		Alphabet:   []rune(corpusAlphabet()),
		Iterations: 100000,
		RandSeed:   5,
	})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := engine.Run(ctx, corpus.English()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnnealingAcceptsRegressionsEarly(t *testing.T) {
	p := SimulatedAnnealing{InitialTemp: 10, Cooling: 0.5}
	rnd := rand.New(rand.NewSource(1))
	accepted := 0
	for i := 0; i < 1000; i++ {
		if p.Accept(-0.1, 0, rnd) {
			accepted++
		}
	}
	if accepted == 0 {
		t.Fatalf("hot annealing never accepted a small regression")
	}
	// After many rounds the temperature is effectively zero.
	cold := 0
	for i := 0; i < 1000; i++ {
		if p.Accept(-0.1, 200, rnd) {
			cold++
		}
	}
	if cold != 0 {
		t.Fatalf("cold annealing accepted %d regressions", cold)
	}
}

func TestHillClimbRejectsNonImprovement(t *testing.T) {
	p := HillClimb{}
	rnd := rand.New(rand.NewSource(1))
	if p.Accept(0, 0, rnd) {
		t.Fatalf("hill climb accepted a tie")
	}
	if p.Accept(-1, 0, rnd) {
		t.Fatalf("hill climb accepted a regression")
	}
	if !p.Accept(0.001, 0, rnd) {
		t.Fatalf("hill climb rejected an improvement")
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("", 0, 0)
	if err != nil || p.Name() != PolicyHillClimb {
		t.Fatalf("empty name should default to hill climb, got %v, %v", p, err)
	}
	p, err = PolicyByName(PolicyAnnealing, 0, 0)
	if err != nil {
		t.Fatalf("failed to build annealing policy: %v", err)
	}
	sa, ok := p.(SimulatedAnnealing)
	if !ok {
		t.Fatalf("unexpected policy type %T", p)
	}
	if sa.InitialTemp != DefaultInitialTemp || sa.Cooling != DefaultCooling {
		t.Fatalf("defaults not applied: %+v", sa)
	}
	if _, err := PolicyByName("tabu", 0, 0); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func corpusAlphabet() string {
	return "abcdefghijklmnopqrstuvwxyz"
}
