package search

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrUnknownPolicy is returned when a policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown acceptance policy")

// Policy names recognized by PolicyByName.
const (
	PolicyHillClimb = "hill_climb"
	PolicyAnnealing = "annealing"
)

// Policy decides whether the best neighbor of a round replaces the current
// layout. delta is the candidate score minus the current score (positive is
// an improvement), round counts from zero. Implementations are stateless;
// any schedule derives from the round number so runs stay reproducible.
type Policy interface {
	Name() string
	Accept(delta float64, round int, rnd *rand.Rand) bool
}

// HillClimb accepts only strict improvements.
type HillClimb struct{}

// Name implements Policy.
func (HillClimb) Name() string { return PolicyHillClimb }

// Accept implements Policy.
func (HillClimb) Accept(delta float64, _ int, _ *rand.Rand) bool {
	return delta > 0
}

// SimulatedAnnealing accepts improvements always and regressions with
// probability exp(delta/T), where T decays geometrically per round. This
// lets the search walk out of local optima early on.
type SimulatedAnnealing struct {
	// InitialTemp is the starting temperature. Must be positive.
	InitialTemp float64
	// Cooling is the per-round temperature multiplier in (0, 1).
	Cooling float64
}

// Default annealing schedule.
const (
	DefaultInitialTemp = 1.0
	DefaultCooling     = 0.995
)

// Name implements Policy.
func (SimulatedAnnealing) Name() string { return PolicyAnnealing }

// Accept implements Policy.
func (p SimulatedAnnealing) Accept(delta float64, round int, rnd *rand.Rand) bool {
	if delta > 0 {
		return true
	}
	temp := p.InitialTemp * math.Pow(p.Cooling, float64(round))
	if temp <= 0 {
		return false
	}
	return rnd.Float64() < math.Exp(delta/temp)
}

// PolicyByName builds a policy from its configuration name. temp and cooling
// apply to annealing only; non-positive values fall back to the defaults.
func PolicyByName(name string, temp, cooling float64) (Policy, error) {
	switch name {
	case PolicyHillClimb, "":
		return HillClimb{}, nil
	case PolicyAnnealing:
		if temp <= 0 {
			temp = DefaultInitialTemp
		}
		if cooling <= 0 || cooling >= 1 {
			cooling = DefaultCooling
		}
		return SimulatedAnnealing{InitialTemp: temp, Cooling: cooling}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
	}
}
