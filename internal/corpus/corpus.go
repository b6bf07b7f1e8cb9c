// Package corpus models the character and bigram frequency workload that
// layouts are scored against.
package corpus

import (
	"errors"
	"sort"
)

// ErrEmptyCorpus is returned when the input carries no character mass, since
// normalization would divide by zero.
var ErrEmptyCorpus = errors.New("corpus has no character occurrences")

// Bigram is an ordered pair of adjacent characters.
type Bigram struct {
	First  rune
	Second rune
}

// CharFreq is one normalized character frequency.
type CharFreq struct {
	Char rune
	Freq float64
}

// BigramFreq is one normalized bigram frequency.
type BigramFreq struct {
	First  rune
	Second rune
	Freq   float64
}

// Corpus holds normalized character and bigram frequencies. It is read-only
// after construction and safe to share across concurrent evaluations.
type Corpus struct {
	chars   map[rune]float64
	bigrams map[Bigram]float64

	// Deterministically ordered views for cheap metric iteration.
	charList   []CharFreq
	bigramList []BigramFreq
}

// FromText counts single characters and adjacent pairs in the text.
func FromText(text string) (*Corpus, error) {
	chars := make(map[rune]float64)
	bigrams := make(map[Bigram]float64)
	var prev rune
	var hasPrev bool
	for _, r := range text {
		chars[r]++
		if hasPrev {
			bigrams[Bigram{First: prev, Second: r}]++
		}
		prev = r
		hasPrev = true
	}
	return FromFrequencies(chars, bigrams)
}

// FromFrequencies builds a corpus from pre-aggregated counts. Counts need
// not be normalized; both domains are scaled to sum to one. An empty bigram
// table is allowed, an all-zero character table is not.
func FromFrequencies(chars map[rune]float64, bigrams map[Bigram]float64) (*Corpus, error) {
	var charTotal float64
	for _, n := range chars {
		if n > 0 {
			charTotal += n
		}
	}
	if charTotal == 0 {
		return nil, ErrEmptyCorpus
	}
	var bigramTotal float64
	for _, n := range bigrams {
		if n > 0 {
			bigramTotal += n
		}
	}

	c := &Corpus{
		chars:   make(map[rune]float64, len(chars)),
		bigrams: make(map[Bigram]float64, len(bigrams)),
	}
	for ch, n := range chars {
		if n <= 0 {
			continue
		}
		c.chars[ch] = n / charTotal
	}
	for bg, n := range bigrams {
		if n <= 0 || bigramTotal == 0 {
			continue
		}
		c.bigrams[bg] = n / bigramTotal
	}

	c.charList = make([]CharFreq, 0, len(c.chars))
	for ch, f := range c.chars {
		c.charList = append(c.charList, CharFreq{Char: ch, Freq: f})
	}
	sort.Slice(c.charList, func(i, j int) bool { return c.charList[i].Char < c.charList[j].Char })

	c.bigramList = make([]BigramFreq, 0, len(c.bigrams))
	for bg, f := range c.bigrams {
		c.bigramList = append(c.bigramList, BigramFreq{First: bg.First, Second: bg.Second, Freq: f})
	}
	sort.Slice(c.bigramList, func(i, j int) bool {
		a, b := c.bigramList[i], c.bigramList[j]
		if a.First != b.First {
			return a.First < b.First
		}
		return a.Second < b.Second
	})
	return c, nil
}

// Frequency returns the normalized frequency of the character, 0 for unseen.
func (c *Corpus) Frequency(ch rune) float64 {
	return c.chars[ch]
}

// BigramFrequency returns the normalized frequency of the ordered pair,
// 0 for unseen.
func (c *Corpus) BigramFrequency(first, second rune) float64 {
	return c.bigrams[Bigram{First: first, Second: second}]
}

// Alphabet returns the characters seen in the corpus in ascending order.
func (c *Corpus) Alphabet() []rune {
	runes := make([]rune, 0, len(c.charList))
	for _, cf := range c.charList {
		runes = append(runes, cf.Char)
	}
	return runes
}

// CharFrequencies returns the normalized character frequencies in ascending
// rune order. The slice is shared and must not be modified.
func (c *Corpus) CharFrequencies() []CharFreq {
	return c.charList
}

// BigramFrequencies returns the normalized bigram frequencies in ascending
// pair order. The slice is shared and must not be modified.
func (c *Corpus) BigramFrequencies() []BigramFreq {
	return c.bigramList
}
