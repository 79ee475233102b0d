package text

import (
	"fmt"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/errs"
)

// Result is the outcome of parsing a move-notation string: the action list
// plus the total elapsed ticks (the final cursor position minus one, per
// the grammar's end-of-input rule).
type Result struct {
	Actions    *action.List
	TotalTicks int32
}

// Parse consumes a move-notation string and returns the canonical action
// list plus total tick count. It implements the grammar in an explicit FSM:
// states that can be followed by an optional continuation character
// (MoveUpper, MoveLower, Mouse1b, and by extension Mouse2a once leg one of a
// mouse move is resolved) re-dispatch on a non-matching character: the
// pending move or mouse leg is flushed (from Mouse1b, where no direction has
// been read yet, the unfinished mouse chunk is dropped instead), state
// returns to Init, and the same character is reprocessed without advancing.
func Parse(s string) (*Result, error) {
	list := action.NewList(len(s))
	st := stateInit

	var cursor int32
	count := 1
	var pendingDir direction.Direction
	var pendingUpper bool
	var leg1Dir direction.Direction
	var leg1Mag int32
	var leg2Mag int32

	i := 0
	n := len(s)

	for {
		atEOF := i >= n
		var c byte
		if !atEOF {
			c = s[i]
		}

		switch st {
		case stateInit:
			if atEOF {
				return &Result{Actions: list, TotalTicks: cursor - 1}, nil
			}
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				i++
			case isDigit(c):
				count = int(c - '0')
				st = stateMoveCount
				i++
			case c == '.':
				cursor += slowDuration
				i++
			case c == ',':
				cursor += fastDuration
				i++
			case c == '*':
				st = stateMouse
				i++
			default:
				dir, upper, ok := letterDir(c)
				if !ok {
					return nil, parseErr(i)
				}
				pendingDir, pendingUpper, count = dir, upper, 1
				st = upperState(upper)
				i++
			}

		case stateMoveCount:
			if atEOF {
				return nil, parseErr(i)
			}
			switch {
			case isDigit(c):
				count = count*10 + int(c-'0')
				i++
			case c == '.':
				cursor += int32(count) * slowDuration
				st = stateInit
				i++
			case c == ',':
				cursor += int32(count) * fastDuration
				st = stateInit
				i++
			case c == '*':
				st = stateMouse // the count a mouse chunk may be prefixed with is unused
				i++
			default:
				dir, upper, ok := letterDir(c)
				if !ok {
					return nil, parseErr(i)
				}
				pendingDir, pendingUpper = dir, upper
				st = upperState(upper)
				i++
			}

		case stateMoveUpper, stateMoveLower:
			upper := st == stateMoveUpper
			if !atEOF && c == '+' {
				st = diagState(upper)
				i++
				continue
			}
			emitMove(list, &cursor, pendingDir, upper, count)
			st = stateInit
			// re-dispatch: do not advance i

		case stateDiagUpper, stateDiagLower:
			upper := st == stateDiagUpper
			if atEOF {
				return nil, parseErr(i)
			}
			dir2, upper2, ok := letterDir(c)
			if !ok || upper2 != upper {
				return nil, parseErr(i)
			}
			if letterAxis(dir2) == letterAxis(pendingDir) {
				return nil, fmt.Errorf("%w: column %d", errs.ErrOppositeAxis, i+1)
			}
			emitMove(list, &cursor, pendingDir|dir2, upper, count)
			st = stateInit
			i++

		case stateMouse:
			if atEOF {
				return nil, parseErr(i)
			}
			switch {
			case c == '.':
				emitMouseOffset(list, &cursor, 0, 0)
				st = stateInit
				i++
			case isDigit(c):
				leg1Mag = int32(c - '0')
				st = stateMouse1b
				i++
			default:
				dir, upper, ok := letterDir(c)
				if !ok || !upper {
					return nil, parseErr(i)
				}
				leg1Dir, leg1Mag = dir, 1
				st = stateMouse2a
				i++
			}

		case stateMouse1b:
			if atEOF {
				// Nothing was ever finalized; abandon the chunk.
				st = stateInit
				continue
			}
			switch {
			case isDigit(c):
				leg1Mag = leg1Mag*10 + int32(c-'0')
				i++
			default:
				dir, upper, ok := letterDir(c)
				if ok && upper {
					leg1Dir = dir
					st = stateMouse2a
					i++
				} else {
					// re-dispatch: no direction was ever read for leg one.
					st = stateInit
				}
			}

		case stateMouse2a:
			if atEOF {
				emitMouseLeg(list, &cursor, leg1Dir, leg1Mag)
				st = stateInit
				continue
			}
			if c == ';' {
				leg2Mag = 0
				st = stateMouse2b
				i++
				continue
			}
			emitMouseLeg(list, &cursor, leg1Dir, leg1Mag)
			st = stateInit
			// re-dispatch: do not advance i

		case stateMouse2b:
			if atEOF {
				return nil, parseErr(i)
			}
			switch {
			case isDigit(c):
				leg2Mag = leg2Mag*10 + int32(c-'0')
				i++
			default:
				dir2, upper2, ok := letterDir(c)
				if !ok || !upper2 {
					return nil, parseErr(i)
				}
				if letterAxis(dir2) == letterAxis(leg1Dir) {
					return nil, fmt.Errorf("%w: column %d", errs.ErrOppositeAxis, i+1)
				}
				if leg2Mag == 0 {
					leg2Mag = 1
				}
				emitMouseTwoLeg(list, &cursor, leg1Dir, leg1Mag, dir2, leg2Mag)
				st = stateInit
				i++
			}

		default:
			return nil, parseErr(i)
		}
	}
}

func upperState(upper bool) state {
	if upper {
		return stateMoveUpper
	}
	return stateMoveLower
}

func diagState(upper bool) state {
	if upper {
		return stateDiagUpper
	}
	return stateDiagLower
}

func parseErr(i int) error {
	return fmt.Errorf("%w: column %d", errs.ErrParse, i+1)
}

func duration(upper bool) int32 {
	if upper {
		return slowDuration
	}
	return fastDuration
}

func emitMove(list *action.List, cursor *int32, dir direction.Direction, upper bool, count int) {
	d := duration(upper)
	for k := 0; k < count; k++ {
		list.Append(action.Action{When: *cursor, Dir: dir})
		*cursor += d
	}
}

// legOffset converts a single cardinal+magnitude leg into its (dx, dy)
// contribution.
func legOffset(dir direction.Direction, mag int32) (dx, dy int) {
	switch dir {
	case direction.N:
		return 0, -int(mag)
	case direction.S:
		return 0, int(mag)
	case direction.W:
		return -int(mag), 0
	case direction.E:
		return int(mag), 0
	default:
		return 0, 0
	}
}

func emitMouseOffset(list *action.List, cursor *int32, dx, dy int) {
	dir, err := direction.EncodeMouse(dx, dy)
	if err != nil {
		dir = direction.Nil // unreachable for in-grammar offsets; defensive only
	}
	list.Append(action.Action{When: *cursor, Dir: dir})
	*cursor += fastDuration
}

func emitMouseLeg(list *action.List, cursor *int32, dir direction.Direction, mag int32) {
	dx, dy := legOffset(dir, mag)
	emitMouseOffset(list, cursor, dx, dy)
}

func emitMouseTwoLeg(list *action.List, cursor *int32, dir1 direction.Direction, mag1 int32, dir2 direction.Direction, mag2 int32) {
	dx1, dy1 := legOffset(dir1, mag1)
	dx2, dy2 := legOffset(dir2, mag2)
	emitMouseOffset(list, cursor, dx1+dx2, dy1+dy2)
}
