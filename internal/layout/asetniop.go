package layout

import "github.com/verte-zerg/tenboard/internal/board"

// asetniopKeys is the ASETNIOP character-to-chord table (the unshifted
// letter plane): home keys spell a-s-e-t on the left and n-i-o-p on the
// right, remaining letters and punctuation are two-key chords, tab and
// newline are full-hand chords. Key indices follow board.Finger order.
var asetniopKeys = map[rune][]board.Key{
	'a': {0},
	'b': {3, 6},
	'c': {1, 3},
	'd': {1, 2},
	'e': {2},
	'f': {0, 3},
	'g': {3, 8},
	'h': {6, 7},
	'i': {7},
	'j': {1, 6},
	'k': {1, 7},
	'l': {7, 8},
	'm': {6, 9},
	'n': {6},
	'o': {8},
	'p': {9},
	'q': {0, 6},
	'r': {2, 3},
	's': {1},
	't': {3},
	'u': {6, 8},
	'v': {3, 7},
	'w': {0, 1},
	'x': {0, 2},
	'y': {2, 6},
	'z': {0, 7},
	'!': {7, 9},
	'\'': {2, 9},
	';': {8, 9},
	',': {2, 7},
	'.': {1, 8},
	'?': {0, 9},
	'(': {0, 8},
	')': {1, 9},
	'-': {2, 8},
	'\t': {0, 1, 2, 3},
	'\n': {6, 7, 8, 9},
}

var asetniop = mustBuildKeys(asetniopKeys)

// ASETNIOP returns the fixed reference layout. It is built through the same
// validated constructor as search candidates and shares their evaluation
// path.
func ASETNIOP() *Layout {
	return asetniop
}

func mustBuildKeys(table map[rune][]board.Key) *Layout {
	assignment := make(map[rune]board.Chord, len(table))
	for ch, keys := range table {
		chord, err := board.NewChord(keys...)
		if err != nil {
			panic(err)
		}
		assignment[ch] = chord
	}
	l, err := Build(assignment)
	if err != nil {
		panic(err)
	}
	return l
}
