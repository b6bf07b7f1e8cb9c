// Package layout defines the character-to-chord assignment and its builders.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/verte-zerg/tenboard/internal/board"
)

// ErrInvalidAssignment is returned when a layout violates the bijection
// invariants: empty alphabet, a reused chord, or a chord off the board.
var ErrInvalidAssignment = errors.New("invalid layout assignment")

// ErrUnknownCharacter is returned when a lookup or swap references a
// character absent from the layout.
var ErrUnknownCharacter = errors.New("character not in layout")

// Layout is an immutable bijection between characters and chords. All edits
// produce a new value, so layouts are safe to share across concurrent
// evaluations.
type Layout struct {
	byChar  map[rune]board.Chord
	byChord map[board.Chord]rune
}

// Build validates the assignment and constructs a layout. Every character
// maps to exactly one valid chord and no chord is assigned twice.
func Build(assignment map[rune]board.Chord) (*Layout, error) {
	if len(assignment) == 0 {
		return nil, fmt.Errorf("empty alphabet: %w", ErrInvalidAssignment)
	}
	l := &Layout{
		byChar:  make(map[rune]board.Chord, len(assignment)),
		byChord: make(map[board.Chord]rune, len(assignment)),
	}
	for ch, chord := range assignment {
		if !chord.Valid() {
			return nil, fmt.Errorf("char %q has chord outside the board: %w", ch, ErrInvalidAssignment)
		}
		if prev, ok := l.byChord[chord]; ok {
			return nil, fmt.Errorf("chars %q and %q share chord %v: %w", prev, ch, chord, ErrInvalidAssignment)
		}
		l.byChar[ch] = chord
		l.byChord[chord] = ch
	}
	return l, nil
}

// ChordFor returns the chord assigned to the character.
func (l *Layout) ChordFor(ch rune) (board.Chord, bool) {
	c, ok := l.byChar[ch]
	return c, ok
}

// CharFor returns the character assigned to the chord.
func (l *Layout) CharFor(chord board.Chord) (rune, bool) {
	ch, ok := l.byChord[chord]
	return ch, ok
}

// Len returns the alphabet size.
func (l *Layout) Len() int {
	return len(l.byChar)
}

// Alphabet returns the layout's characters in ascending rune order.
func (l *Layout) Alphabet() []rune {
	runes := make([]rune, 0, len(l.byChar))
	for ch := range l.byChar {
		runes = append(runes, ch)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// Swap returns a new layout with the chords of a and b exchanged. This is
// the primary local-search move.
func (l *Layout) Swap(a, b rune) (*Layout, error) {
	ca, ok := l.byChar[a]
	if !ok {
		return nil, fmt.Errorf("char %q: %w", a, ErrUnknownCharacter)
	}
	cb, ok := l.byChar[b]
	if !ok {
		return nil, fmt.Errorf("char %q: %w", b, ErrUnknownCharacter)
	}
	out := &Layout{
		byChar:  make(map[rune]board.Chord, len(l.byChar)),
		byChord: make(map[board.Chord]rune, len(l.byChord)),
	}
	for ch, chord := range l.byChar {
		out.byChar[ch] = chord
	}
	out.byChar[a] = cb
	out.byChar[b] = ca
	for ch, chord := range out.byChar {
		out.byChord[chord] = ch
	}
	return out, nil
}

// Equal reports whether two layouts assign identical chords to an identical
// alphabet.
func (l *Layout) Equal(other *Layout) bool {
	if len(l.byChar) != len(other.byChar) {
		return false
	}
	for ch, chord := range l.byChar {
		if oc, ok := other.byChar[ch]; !ok || oc != chord {
			return false
		}
	}
	return true
}

// Assignment returns a copy of the character-to-chord table.
func (l *Layout) Assignment() map[rune]board.Chord {
	out := make(map[rune]board.Chord, len(l.byChar))
	for ch, chord := range l.byChar {
		out[ch] = chord
	}
	return out
}
