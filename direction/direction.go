// Package direction implements the directional algebra shared by the codec
// and text packages: conversions between the 4-bit cardinal/diagonal bitmask,
// the 3-bit compact index used by the binary opcode formats, and the
// mouse-target offset encoding.
package direction

import (
	"fmt"

	"github.com/tandemgo/tws/errs"
)

// Direction is a 9-bit value: a 4-bit cardinal/diagonal bitmask, the NIL
// sentinel (0), or a mouse-target encoding (>= MouseBase).
type Direction uint16

// Cardinal bits. Diagonals are the bitwise OR of two non-opposite cardinals.
const (
	Nil Direction = 0
	N   Direction = 1
	W   Direction = 2
	S   Direction = 4
	E   Direction = 8

	NW = N | W
	SW = S | W
	NE = N | E
	SE = S | E
)

// MouseBase is the smallest value a mouse-target encoding can take; any
// Direction >= MouseBase is a mouse move rather than a directional one.
const MouseBase Direction = 16

// MouseOffsetBound is the inclusive bound on |x| and |y| for a mouse target.
const MouseOffsetBound = 9

// compactOrder is the index 0..7 -> Direction table from the container
// format's compact encoding.
var compactOrder = [8]Direction{N, W, S, E, NW, SW, NE, SE}

var compactIndex = func() map[Direction]int {
	m := make(map[Direction]int, len(compactOrder))
	for i, d := range compactOrder {
		m[d] = i
	}
	return m
}()

// ToIndex maps a cardinal or diagonal direction to its 3-bit compact index.
// It errors for Nil and for mouse-target values, neither of which has a
// compact index.
func ToIndex(dir Direction) (int, error) {
	idx, ok := compactIndex[dir]
	if !ok {
		return 0, fmt.Errorf("%w: %d", errs.ErrNonDirectional, dir)
	}
	return idx, nil
}

// FromIndex maps a 3-bit compact index (0..7) back to its direction.
func FromIndex(i int) (Direction, error) {
	if i < 0 || i >= len(compactOrder) {
		return Nil, fmt.Errorf("%w: %d", errs.ErrInvalidIndex, i)
	}
	return compactOrder[i], nil
}

// IsDirectional reports whether dir fits in the 4-bit cardinal/diagonal mask,
// per spec: (dir & ~0b1111) == 0. This is also true of Nil.
func IsDirectional(dir Direction) bool {
	return dir&^0b1111 == 0
}

// IsMouse reports whether dir is a mouse-target encoding.
func IsMouse(dir Direction) bool {
	return !IsDirectional(dir)
}

// IsDiagonal reports whether dir is a directional value with exactly two
// bits set.
func IsDiagonal(dir Direction) bool {
	return IsDirectional(dir) && popcount(dir) == 2
}

// IsCardinal reports whether dir is one of the four single-bit cardinals.
func IsCardinal(dir Direction) bool {
	return IsDirectional(dir) && popcount(dir) == 1
}

func popcount(dir Direction) int {
	n := 0
	for dir != 0 {
		n += int(dir & 1)
		dir >>= 1
	}
	return n
}

// EncodeMouse builds the mouse-target Direction for offset (x, y), each in
// [-MouseOffsetBound, MouseOffsetBound].
func EncodeMouse(x, y int) (Direction, error) {
	if x < -MouseOffsetBound || x > MouseOffsetBound || y < -MouseOffsetBound || y > MouseOffsetBound {
		return Nil, fmt.Errorf("%w: mouse offset (%d,%d) out of range", errs.ErrUnknownDirection, x, y)
	}
	return MouseBase + Direction((y+MouseOffsetBound)*19+(x+MouseOffsetBound)), nil
}

// DecodeMouse extracts the (x, y) offset from a mouse-target Direction.
func DecodeMouse(dir Direction) (x, y int, ok bool) {
	if !IsMouse(dir) {
		return 0, 0, false
	}
	v := int(dir - MouseBase)
	y = v/19 - MouseOffsetBound
	x = v%19 - MouseOffsetBound
	return x, y, true
}

// Valid reports whether dir is a member of the closed set: Nil, a cardinal,
// a diagonal, or an in-range mouse target.
func Valid(dir Direction) bool {
	if dir == Nil {
		return true
	}
	if _, ok := compactIndex[dir]; ok {
		return true
	}
	x, y, ok := DecodeMouse(dir)
	if !ok {
		return false
	}
	return x >= -MouseOffsetBound && x <= MouseOffsetBound && y >= -MouseOffsetBound && y <= MouseOffsetBound
}
