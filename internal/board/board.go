// Package board models the fixed ten-key, ten-finger board geometry.
package board

// KeyCount is the number of physical keys on the board.
const KeyCount = 10

// Hand identifies the left or right hand.
type Hand int

// Hands, left to right.
const (
	Left Hand = iota
	Right
)

// String returns a short hand label.
func (h Hand) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// Finger identifies one of the ten fingers. Fingers are indexed left pinky
// through left thumb (0-4), then right thumb through right pinky (5-9),
// matching the key order on the board:
//
//	 0 1 2 3 4  5 6 7 8 9
//	   _.-._      _.-._
//	 _| | | |    | | | |_
//	| | | | |_  _|       |
//	|        /  \        |
type Finger int

// Fingers, in key order.
const (
	LeftPinky Finger = iota
	LeftRing
	LeftMiddle
	LeftIndex
	LeftThumb
	RightThumb
	RightIndex
	RightMiddle
	RightRing
	RightPinky
)

var fingerNames = [KeyCount]string{
	"left pinky", "left ring", "left middle", "left index", "left thumb",
	"right thumb", "right index", "right middle", "right ring", "right pinky",
}

// String returns a human-readable finger name.
func (f Finger) String() string {
	if f < 0 || int(f) >= KeyCount {
		return "invalid finger"
	}
	return fingerNames[f]
}

// Hand returns the hand the finger belongs to.
func (f Finger) Hand() Hand {
	if f <= LeftThumb {
		return Left
	}
	return Right
}

// Key identifies one of the ten physical keys. Each key is permanently bound
// to the finger with the same index; the binding is board geometry, not a
// layout property.
type Key int

// Valid reports whether the key index is on the board.
func (k Key) Valid() bool {
	return k >= 0 && int(k) < KeyCount
}

// Finger returns the finger bound to the key.
func (k Key) Finger() Finger {
	return Finger(k)
}

// Hand returns the hand that presses the key.
func (k Key) Hand() Hand {
	return k.Finger().Hand()
}

// Position is a 2D key coordinate in key-width units, used by travel metrics.
type Position struct {
	X float64
	Y float64
}

// Key positions follow a gently arched split board: ring and middle keys sit
// slightly above the pinkies, thumbs sit below, and the hands are separated
// by a two-unit gap.
var keyPositions = [KeyCount]Position{
	{X: 0, Y: 0},     // left pinky
	{X: 1, Y: 0.25},  // left ring
	{X: 2, Y: 0.5},   // left middle
	{X: 3, Y: 0.25},  // left index
	{X: 4, Y: -1},    // left thumb
	{X: 7, Y: -1},    // right thumb
	{X: 8, Y: 0.25},  // right index
	{X: 9, Y: 0.5},   // right middle
	{X: 10, Y: 0.25}, // right ring
	{X: 11, Y: 0},    // right pinky
}

// Per-key press cost. Thumbs and index fingers are the strongest, pinkies
// the weakest; the table is symmetric between hands.
var keyEfforts = [KeyCount]float64{
	3.2, // left pinky
	2.4, // left ring
	1.8, // left middle
	1.4, // left index
	1.0, // left thumb
	1.0, // right thumb
	1.4, // right index
	1.8, // right middle
	2.4, // right ring
	3.2, // right pinky
}

// Position returns the key's fixed 2D coordinate.
func (k Key) Position() Position {
	return keyPositions[k]
}

// Effort returns the fixed press cost of the key.
func (k Key) Effort() float64 {
	return keyEfforts[k]
}
