package metric

import (
	"math"

	"github.com/verte-zerg/tenboard/internal/board"
	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
)

// Effort sums character frequency times the press cost of the assigned
// chord. Characters the layout does not cover contribute nothing.
type Effort struct{}

// Name implements Evaluator.
func (Effort) Name() string { return "effort" }

// Direction implements Evaluator.
func (Effort) Direction() Direction { return LowerIsBetter }

// Evaluate implements Evaluator.
func (e Effort) Evaluate(l *layout.Layout, c *corpus.Corpus) Result {
	var total float64
	for _, cf := range c.CharFrequencies() {
		if chord, ok := l.ChordFor(cf.Char); ok {
			total += cf.Freq * chord.Effort()
		}
	}
	return Result{Name: e.Name(), Value: total, Direction: e.Direction()}
}

// SameFingerBigrams sums the bigram mass whose two chords reuse a finger
// without being the same chord. Repeating a chord is a plain double-tap and
// does not count.
type SameFingerBigrams struct{}

// Name implements Evaluator.
func (SameFingerBigrams) Name() string { return "same_finger" }

// Direction implements Evaluator.
func (SameFingerBigrams) Direction() Direction { return LowerIsBetter }

// Evaluate implements Evaluator.
func (e SameFingerBigrams) Evaluate(l *layout.Layout, c *corpus.Corpus) Result {
	var total float64
	for _, bf := range c.BigramFrequencies() {
		c1, ok1 := l.ChordFor(bf.First)
		c2, ok2 := l.ChordFor(bf.Second)
		if !ok1 || !ok2 {
			continue
		}
		if c1 != c2 && c1.SharesFinger(c2) {
			total += bf.Freq
		}
	}
	return Result{Name: e.Name(), Value: total, Direction: e.Direction()}
}

// LoadBalance is the population variance of the per-finger frequency load.
// Lower variance means typing work spreads evenly over the ten fingers.
type LoadBalance struct{}

// Name implements Evaluator.
func (LoadBalance) Name() string { return "load_balance" }

// Direction implements Evaluator.
func (LoadBalance) Direction() Direction { return LowerIsBetter }

// Loads returns the total character frequency carried by each finger.
func (LoadBalance) Loads(l *layout.Layout, c *corpus.Corpus) [board.KeyCount]float64 {
	var loads [board.KeyCount]float64
	for _, cf := range c.CharFrequencies() {
		chord, ok := l.ChordFor(cf.Char)
		if !ok {
			continue
		}
		for f := board.Finger(0); f < board.KeyCount; f++ {
			if chord.UsesFinger(f) {
				loads[f] += cf.Freq
			}
		}
	}
	return loads
}

// Evaluate implements Evaluator.
func (e LoadBalance) Evaluate(l *layout.Layout, c *corpus.Corpus) Result {
	loads := e.Loads(l, c)
	var mean float64
	for _, v := range loads {
		mean += v
	}
	mean /= float64(len(loads))
	var variance float64
	for _, v := range loads {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(loads))
	return Result{Name: e.Name(), Value: variance, Direction: e.Direction()}
}

// HandAlternation is the fraction of bigram mass typed by strictly opposite
// hands. A chord spanning both hands shares a hand with everything and never
// alternates.
type HandAlternation struct{}

// Name implements Evaluator.
func (HandAlternation) Name() string { return "alternation" }

// Direction implements Evaluator.
func (HandAlternation) Direction() Direction { return HigherIsBetter }

// Evaluate implements Evaluator.
func (e HandAlternation) Evaluate(l *layout.Layout, c *corpus.Corpus) Result {
	var total float64
	for _, bf := range c.BigramFrequencies() {
		c1, ok1 := l.ChordFor(bf.First)
		c2, ok2 := l.ChordFor(bf.Second)
		if !ok1 || !ok2 {
			continue
		}
		if alternates(c1, c2) {
			total += bf.Freq
		}
	}
	return Result{Name: e.Name(), Value: total, Direction: e.Direction()}
}

func alternates(c1, c2 board.Chord) bool {
	shareLeft := c1.UsesHand(board.Left) && c2.UsesHand(board.Left)
	shareRight := c1.UsesHand(board.Right) && c2.UsesHand(board.Right)
	return !shareLeft && !shareRight
}

// TravelDistance sums bigram frequency times the euclidean distance between
// chord centroids for bigrams that reuse a finger; other bigrams cost
// nothing since the finger starts fresh.
type TravelDistance struct{}

// Name implements Evaluator.
func (TravelDistance) Name() string { return "travel" }

// Direction implements Evaluator.
func (TravelDistance) Direction() Direction { return LowerIsBetter }

// Evaluate implements Evaluator.
func (e TravelDistance) Evaluate(l *layout.Layout, c *corpus.Corpus) Result {
	var total float64
	for _, bf := range c.BigramFrequencies() {
		c1, ok1 := l.ChordFor(bf.First)
		c2, ok2 := l.ChordFor(bf.Second)
		if !ok1 || !ok2 {
			continue
		}
		if !c1.SharesFinger(c2) {
			continue
		}
		p1, p2 := c1.Position(), c2.Position()
		total += bf.Freq * math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
	}
	return Result{Name: e.Name(), Value: total, Direction: e.Direction()}
}
