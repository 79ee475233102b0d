package codec

import (
	"fmt"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/errs"
	"github.com/tandemgo/tws/internal/pool"
)

// mouseExtraBytesNeeded returns the minimal N in [0, mouseMaxExtraBytes] such
// that delta fits in the mouse/diagonal form's 2-bit base plus N extra bytes.
func mouseExtraBytesNeeded(delta int32) int {
	for n := 0; n <= mouseMaxExtraBytes; n++ {
		capacity := int32(1) << uint(mouseBaseDeltaBits+mouseExtraByteBits*n)
		if delta < capacity {
			return n
		}
	}
	return mouseMaxExtraBytes
}

// sizeOf returns the number of bytes a single non-triple-packed action with
// the given delta would require, per the pre-pass classification rules.
func sizeOf(dir direction.Direction, delta int32) int {
	switch {
	case direction.IsMouse(dir) || (direction.IsDiagonal(dir) && delta >= shortTwoDeltaBound):
		return 2 + mouseExtraBytesNeeded(delta)
	case delta < shortOneDeltaBound:
		return 1
	case delta < shortTwoDeltaBound:
		return 2
	default:
		return 4
	}
}

// EncodedSizeUpperBound computes a worst-case byte count for encoding
// actions, ignoring any triple-pack opportunities the main pass may later
// find. Callers use it to pre-size the output buffer before the exact
// encoding pass, matching the allocate-then-shrink pattern.
func EncodedSizeUpperBound(actions []action.Action) int {
	total := 0
	cursor := int32(-1)
	for _, a := range actions {
		delta := a.When - cursor - 1
		total += sizeOf(a.Dir, delta)
		cursor = a.When
	}
	return total
}

// Encode compresses actions into the smallest-fitting opcode stream,
// opportunistically using the triple-pack format for three consecutive
// orthogonal cardinals spaced 4 ticks apart.
func Encode(actions []action.Action) ([]byte, error) {
	bb := pool.GetSolutionBuffer()
	defer pool.PutSolutionBuffer(bb)
	bb.Grow(EncodedSizeUpperBound(actions) + 5)

	cursor := int32(-1)
	i := 0
	for i < len(actions) {
		a := actions[i]
		if i > 0 && a.When <= actions[i-1].When {
			return nil, fmt.Errorf("%w: action %d at tick %d does not follow %d", errs.ErrBadDelta, i, a.When, actions[i-1].When)
		}
		if !direction.Valid(a.Dir) {
			return nil, fmt.Errorf("%w: %d", errs.ErrUnknownDirection, a.Dir)
		}

		delta := a.When - cursor - 1

		if tripled := tryEncodeTriple(bb, actions, i, delta); tripled {
			cursor = actions[i+2].When
			i += 3
			continue
		}

		if err := encodeSingle(bb, a.Dir, delta); err != nil {
			return nil, err
		}
		cursor = a.When
		i++
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// tryEncodeTriple emits a triple-pack byte and reports true if actions[i:i+3]
// are three orthogonal cardinals each spaced exactly 4 ticks apart, with
// delta (the gap from the running cursor to actions[i]) also 3.
func tryEncodeTriple(bb *pool.ByteBuffer, actions []action.Action, i int, delta int32) bool {
	if delta != tripleMoveSpacing-1 || i+2 >= len(actions) {
		return false
	}
	a0, a1, a2 := actions[i], actions[i+1], actions[i+2]
	if !direction.IsCardinal(a0.Dir) || !direction.IsCardinal(a1.Dir) || !direction.IsCardinal(a2.Dir) {
		return false
	}
	if a1.When-a0.When != tripleMoveSpacing || a2.When-a1.When != tripleMoveSpacing {
		return false
	}

	idx0, err0 := direction.ToIndex(a0.Dir)
	idx1, err1 := direction.ToIndex(a1.Dir)
	idx2, err2 := direction.ToIndex(a2.Dir)
	if err0 != nil || err1 != nil || err2 != nil {
		return false
	}

	b0 := byte(idx0<<2) | byte(idx1<<4) | byte(idx2<<6)
	bb.MustWrite([]byte{b0})
	return true
}

func encodeSingle(bb *pool.ByteBuffer, dir direction.Direction, delta int32) error {
	switch {
	case direction.IsMouse(dir) || (direction.IsDiagonal(dir) && delta >= shortTwoDeltaBound):
		encodeMouse(bb, dir, delta)
		return nil
	case delta < shortOneDeltaBound:
		return encodeShort1(bb, dir, delta)
	case delta < shortTwoDeltaBound:
		return encodeShort2(bb, dir, delta)
	default:
		return encodeLong(bb, dir, delta)
	}
}

func encodeShort1(bb *pool.ByteBuffer, dir direction.Direction, delta int32) error {
	idx, err := direction.ToIndex(dir)
	if err != nil {
		return err
	}
	b0 := byte(0x01) | byte(idx<<2) | byte((delta<<5)&0xE0)
	bb.MustWrite([]byte{b0})
	return nil
}

func encodeShort2(bb *pool.ByteBuffer, dir direction.Direction, delta int32) error {
	idx, err := direction.ToIndex(dir)
	if err != nil {
		return err
	}
	b0 := byte(0x02) | byte(idx<<2) | byte((delta&0x7)<<5)
	b1 := byte((delta >> 3) & 0xFF)
	bb.MustWrite([]byte{b0, b1})
	return nil
}

func encodeLong(bb *pool.ByteBuffer, dir direction.Direction, delta int32) error {
	idx, err := direction.ToIndex(dir)
	if err != nil {
		return err
	}
	if idx > 3 {
		return fmt.Errorf("%w: diagonal direction cannot use the long orthogonal form", errs.ErrUnknownDirection)
	}
	b0 := byte(0x03) | byte(idx<<2) | byte((delta&0x7)<<5)
	b1 := byte((delta >> 3) & 0xFF)
	b2 := byte((delta >> 11) & 0xFF)
	b3 := byte((delta >> 19) & 0xFF)
	bb.MustWrite([]byte{b0, b1, b2, b3})
	return nil
}

func encodeMouse(bb *pool.ByteBuffer, dir direction.Direction, delta int32) {
	n := mouseExtraBytesNeeded(delta)

	b0 := byte(mouseFormatLowBits) | byte(n<<2) | byte((dir&mouseDirLowBitsMask)<<5)
	b1 := byte((dir>>3)&mouseDirHighBitsMask) | byte((delta&0x3)<<6)
	out := make([]byte, 2+n)
	out[0] = b0
	out[1] = b1
	for k := 0; k < n; k++ {
		out[2+k] = byte((delta >> uint(mouseBaseDeltaBits+mouseExtraByteBits*k)) & 0xFF)
	}
	bb.MustWrite(out)
}
