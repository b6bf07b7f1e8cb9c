package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrEmptyChord is returned when a chord is built without any keys.
var ErrEmptyChord = errors.New("chord has no keys")

// ErrKeyOutOfRange is returned when a chord references a key outside 0-9.
var ErrKeyOutOfRange = errors.New("key index out of range")

// Chord is a non-empty set of keys pressed simultaneously, stored as a bitmask
// over the ten key indices. Chords compare by key-set; press order does not
// exist on a chorded board. The zero value is invalid.
type Chord uint16

// chordMask covers the ten valid key bits.
const chordMask Chord = 1<<KeyCount - 1

// NewChord builds a chord from the given keys. Duplicate keys collapse into
// one press.
func NewChord(keys ...Key) (Chord, error) {
	if len(keys) == 0 {
		return 0, ErrEmptyChord
	}
	var c Chord
	for _, k := range keys {
		if !k.Valid() {
			return 0, fmt.Errorf("key %d: %w", k, ErrKeyOutOfRange)
		}
		c |= 1 << k
	}
	return c, nil
}

// ChordFromMask restores a chord from its raw bitmask, as persisted by the
// run store.
func ChordFromMask(mask uint16) (Chord, error) {
	c := Chord(mask)
	if c == 0 {
		return 0, ErrEmptyChord
	}
	if c&^chordMask != 0 {
		return 0, ErrKeyOutOfRange
	}
	return c, nil
}

// Mask returns the raw bitmask of the chord.
func (c Chord) Mask() uint16 {
	return uint16(c)
}

// Valid reports whether the chord is non-empty and within the board.
func (c Chord) Valid() bool {
	return c != 0 && c&^chordMask == 0
}

// Size returns the number of keys pressed.
func (c Chord) Size() int {
	return bits.OnesCount16(uint16(c))
}

// Contains reports whether the chord presses the given key.
func (c Chord) Contains(k Key) bool {
	return k.Valid() && c&(1<<k) != 0
}

// Keys returns the pressed keys in ascending order.
func (c Chord) Keys() []Key {
	keys := make([]Key, 0, c.Size())
	for k := Key(0); k < KeyCount; k++ {
		if c.Contains(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// SharesFinger reports whether two chords use at least one common finger.
// Keys and fingers are bound one-to-one, so this is a mask intersection.
func (c Chord) SharesFinger(other Chord) bool {
	return c&other != 0
}

// UsesFinger reports whether the chord presses the finger's key.
func (c Chord) UsesFinger(f Finger) bool {
	return c.Contains(Key(f))
}

// UsesHand reports whether any pressed key belongs to the given hand.
func (c Chord) UsesHand(h Hand) bool {
	const leftMask = Chord(1)<<5 - 1
	if h == Left {
		return c&leftMask != 0
	}
	return c&^leftMask != 0
}

// Effort returns the summed press cost of the chord's keys.
func (c Chord) Effort() float64 {
	var total float64
	for _, k := range c.Keys() {
		total += k.Effort()
	}
	return total
}

// Position returns the centroid of the chord's key positions.
func (c Chord) Position() Position {
	var p Position
	keys := c.Keys()
	for _, k := range keys {
		kp := k.Position()
		p.X += kp.X
		p.Y += kp.Y
	}
	n := float64(len(keys))
	if n > 0 {
		p.X /= n
		p.Y /= n
	}
	return p
}

// String renders the chord as pressed/released glyphs per finger, left hand
// then right, e.g. "|.|.. ....." for keys 0 and 2.
func (c Chord) String() string {
	var b strings.Builder
	for k := Key(0); k < KeyCount; k++ {
		if k == KeyCount/2 {
			b.WriteByte(' ')
		}
		if c.Contains(k) {
			b.WriteByte('|')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// AllChords returns every chord with one or two keys pressed, in a fixed
// order. The ten-key board admits 55 such chords.
func AllChords() []Chord {
	chords := make([]Chord, 0, 55)
	for i := Key(0); i < KeyCount; i++ {
		for j := i; j < KeyCount; j++ {
			chords = append(chords, 1<<i|1<<j)
		}
	}
	return chords
}
