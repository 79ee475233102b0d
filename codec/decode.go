package codec

import (
	"fmt"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/errs"
)

// Decode expands an opcode stream (the bytes of a level record following the
// 16-byte fixed header) into an action list.
//
// On truncation the returned list is empty and the error wraps
// errs.ErrTruncated, per the propagation policy: the caller treats this as a
// per-level failure and moves on to the next record.
func Decode(data []byte) (*action.List, error) {
	list := action.NewList(len(data))
	when := int32(-1)
	pos := 0

	for pos < len(data) {
		b0 := data[pos]

		switch variantOf(b0) {
		case variantTriple:
			idxs := [3]int{int((b0 >> 2) & 0x3), int((b0 >> 4) & 0x3), int((b0 >> 6) & 0x3)}
			for _, idx := range idxs {
				dir, err := direction.FromIndex(idx)
				if err != nil {
					list.Clear()
					return list, err
				}
				when += tripleMoveSpacing
				list.Append(action.Action{When: when, Dir: dir})
			}
			pos++

		case variantShort1:
			idx := int((b0 >> 2) & 0x7)
			delta := int32((b0 >> 5) & 0x7)
			dir, err := direction.FromIndex(idx)
			if err != nil {
				list.Clear()
				return list, err
			}
			when = when + delta + 1
			list.Append(action.Action{When: when, Dir: dir})
			pos++

		case variantShort2:
			if pos+2 > len(data) {
				list.Clear()
				return list, fmt.Errorf("%w: short-2 opcode at byte %d", errs.ErrTruncated, pos)
			}
			idx := int((b0 >> 2) & 0x7)
			delta := int32((b0>>5)&0x7) | int32(data[pos+1])<<3
			dir, err := direction.FromIndex(idx)
			if err != nil {
				list.Clear()
				return list, err
			}
			when = when + delta + 1
			list.Append(action.Action{When: when, Dir: dir})
			pos += 2

		case variantLong:
			if pos+4 > len(data) {
				list.Clear()
				return list, fmt.Errorf("%w: long opcode at byte %d", errs.ErrTruncated, pos)
			}
			idx := int((b0 >> 2) & 0x3)
			b1, b2, b3 := data[pos+1], data[pos+2], data[pos+3]
			delta := int32((b0>>5)&0x7) | int32(b1)<<3 | int32(b2)<<11 | int32(b3)<<19
			dir, err := direction.FromIndex(idx)
			if err != nil {
				list.Clear()
				return list, err
			}
			when = when + delta + 1
			list.Append(action.Action{When: when, Dir: dir})
			pos += 4

		case variantMouse:
			if pos+2 > len(data) {
				list.Clear()
				return list, fmt.Errorf("%w: mouse opcode at byte %d", errs.ErrTruncated, pos)
			}
			n := int((b0 >> 2) & 0x3)
			total := 2 + n
			if pos+total > len(data) {
				list.Clear()
				return list, fmt.Errorf("%w: mouse opcode at byte %d needs %d bytes", errs.ErrTruncated, pos, total)
			}
			b1 := data[pos+1]
			dir := direction.Direction((b0>>5)&mouseDirLowBitsMask) | direction.Direction(b1&mouseDirHighBitsMask)<<3
			delta := int32((b1 >> 6) & 0x3)
			for k := 0; k < n; k++ {
				delta |= int32(data[pos+2+k]) << (mouseBaseDeltaBits + mouseExtraByteBits*k)
			}
			when = when + delta + 1
			list.Append(action.Action{When: when, Dir: dir})
			pos += total

		default:
			list.Clear()
			return list, fmt.Errorf("%w: unrecognized opcode at byte %d", errs.ErrTruncated, pos)
		}
	}

	return list, nil
}
