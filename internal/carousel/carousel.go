// Package carousel runs the projects carousel: a three-slot window over
// N items, rotated by drag gestures, with tilt feedback on the center card.
package carousel

import (
	"errors"
	"fmt"
)

// ErrTooFewItems is returned for carousels with fewer than three items.
var ErrTooFewItems = errors.New("carousel needs at least 3 items")

// Role is a slot in the visible window.
type Role int

const (
	Left Role = iota
	Center
	Right
)

func (r Role) String() string {
	switch r {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// State is the visible window. Order holds item indices for the left,
// center and right slots.
type State struct {
	Order [3]int
	N     int
}

// NewState returns the initial window [N-1, 0, 1].
func NewState(n int) (State, error) {
	if n < 3 {
		return State{}, fmt.Errorf("new carousel with %d items: %w", n, ErrTooFewItems)
	}
	return State{Order: [3]int{n - 1, 0, 1}, N: n}, nil
}

// Next rotates the window one item forward. A state with fewer than three
// items is returned unchanged.
func (s State) Next() State {
	if s.N < 3 {
		return s
	}
	c, r := s.Order[1], s.Order[2]
	s.Order = [3]int{c, r, (r + 1) % s.N}
	return s
}

// Prev rotates the window one item back. A state with fewer than three
// items is returned unchanged.
func (s State) Prev() State {
	if s.N < 3 {
		return s
	}
	l, c := s.Order[0], s.Order[1]
	s.Order = [3]int{(l - 1 + s.N) % s.N, l, c}
	return s
}

// Valid reports whether every index is in range and all three differ.
func (s State) Valid() bool {
	if s.N < 3 {
		return false
	}
	for _, i := range s.Order {
		if i < 0 || i >= s.N {
			return false
		}
	}
	o := s.Order
	return o[0] != o[1] && o[1] != o[2] && o[0] != o[2]
}

// At returns the item index in a slot.
func (s State) At(r Role) int { return s.Order[r] }

// Slot is the fixed rendering recipe for a role.
type Slot struct {
	X      float64 // horizontal offset in px
	Scale  float64
	Alpha  float64
	Depth  float64 // translateZ in px
	ZOrder int
	Rim    float64 // rim-highlight opacity
}

var slots = [3]Slot{
	Left:   {X: -520, Scale: 0.85, Alpha: 0.25, Depth: -150, ZOrder: 1, Rim: 0.6},
	Center: {X: 0, Scale: 1, Alpha: 1, Depth: 0, ZOrder: 3, Rim: 0},
	Right:  {X: 520, Scale: 0.85, Alpha: 0.25, Depth: -150, ZOrder: 1, Rim: 0.6},
}

// SlotFor looks up the rendering recipe for a role.
func SlotFor(r Role) Slot {
	if r < Left || r > Right {
		return Slot{}
	}
	return slots[r]
}
