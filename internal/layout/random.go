package layout

import (
	"fmt"
	"math/rand"

	"github.com/verte-zerg/tenboard/internal/board"
)

// Random samples a uniform valid layout for the alphabet by shuffling the
// one- and two-key chord inventory and assigning chords in order. Duplicate
// runes in the alphabet are rejected.
func Random(alphabet []rune, rnd *rand.Rand) (*Layout, error) {
	chords := board.AllChords()
	if len(alphabet) > len(chords) {
		return nil, fmt.Errorf("alphabet of %d exceeds the %d-chord inventory: %w",
			len(alphabet), len(chords), ErrInvalidAssignment)
	}
	rnd.Shuffle(len(chords), func(i, j int) {
		chords[i], chords[j] = chords[j], chords[i]
	})
	assignment := make(map[rune]board.Chord, len(alphabet))
	for i, ch := range alphabet {
		if _, ok := assignment[ch]; ok {
			return nil, fmt.Errorf("duplicate char %q in alphabet: %w", ch, ErrInvalidAssignment)
		}
		assignment[ch] = chords[i]
	}
	return Build(assignment)
}
