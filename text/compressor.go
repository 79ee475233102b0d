package text

import (
	"fmt"
	"strings"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/errs"
)

// Compress renders an action list back into move notation. solutionTime is
// the total elapsed ticks the caller wants the notation to describe; a
// trailing wait is appended if the last action does not already reach it.
// Passing a negative solutionTime skips the trailing wait entirely and lets
// the notation end exactly where the last action places the cursor — use
// this when the caller has no independent record of the solution's total
// tick count.
//
// The writer favors the compact run form ("4U") for consecutive identical
// cardinal moves already spaced uniformly 1 or 4 ticks apart in the input,
// and up-converts an isolated fast (1-tick) move to its slow (4-tick) form
// whenever at least three idle ticks follow it before the next action,
// since doing so borrows those ticks into the move's own duration and
// shortens the wait that follows.
func Compress(actions []action.Action, solutionTime int32) (string, error) {
	var sb strings.Builder
	cursor := int32(0)

	i := 0
	for i < len(actions) {
		a := actions[i]
		gap := a.When - cursor
		if gap < 0 {
			return "", fmt.Errorf("%w: action %d at tick %d precedes cursor %d", errs.ErrBadDelta, i, a.When, cursor)
		}
		writeWait(&sb, gap)

		switch {
		case direction.IsMouse(a.Dir):
			if err := writeMouse(&sb, a.Dir); err != nil {
				return "", err
			}
			cursor = a.When + fastDuration
			i++

		case direction.IsDiagonal(a.Dir):
			writeDiagonal(&sb, a.Dir)
			cursor = a.When + fastDuration
			i++

		case direction.IsCardinal(a.Dir):
			runLen, spacing := cardinalRun(actions, i)
			// A run's last move occupies spacing ticks; if the next action
			// lands sooner, end the run one move early so that move is
			// rendered on its own.
			if runLen >= 2 && i+runLen < len(actions) && actions[i+runLen].When < actions[i+runLen-1].When+spacing {
				runLen--
			}
			if runLen >= 2 {
				writeRun(&sb, a.Dir, runLen, spacing)
				last := actions[i+runLen-1]
				cursor = last.When + spacing
				i += runLen
			} else {
				duration := fastDuration
				// Only a move with a known successor can be safely promoted:
				// promoting the very last action would inflate the notation's
				// natural length for no compression benefit.
				if i+1 < len(actions) && actions[i+1].When-(a.When+fastDuration) >= slowDuration-fastDuration {
					duration = slowDuration
				}
				sb.WriteByte(dirLetter(a.Dir, duration == slowDuration))
				cursor = a.When + duration
				i++
			}

		default:
			return "", fmt.Errorf("%w: %d", errs.ErrUnknownDirection, a.Dir)
		}
	}

	if solutionTime >= 0 {
		trailing := (solutionTime + 1) - cursor
		if trailing < 0 {
			return "", fmt.Errorf("%w: solution time %d shorter than last action", errs.ErrBadDelta, solutionTime)
		}
		writeWait(&sb, trailing)
	}

	return sb.String(), nil
}

// cardinalRun reports the length and uniform spacing of the run of
// identical cardinal moves starting at actions[i], spaced 1 or 4 ticks
// apart. A non-qualifying run reports length 1.
func cardinalRun(actions []action.Action, i int) (length int, spacing int32) {
	dir := actions[i].Dir
	if i+1 >= len(actions) || actions[i+1].Dir != dir {
		return 1, 0
	}
	spacing = actions[i+1].When - actions[i].When
	if spacing != fastDuration && spacing != slowDuration {
		return 1, 0
	}
	j := i + 1
	for j+1 < len(actions) && actions[j+1].Dir == dir && actions[j+1].When-actions[j].When == spacing {
		j++
	}
	return j - i + 1, spacing
}

func writeWait(sb *strings.Builder, gap int32) {
	if gap <= 0 {
		return
	}
	slow := gap / slowDuration
	rem := gap % slowDuration
	if slow > 0 {
		if slow > 1 {
			fmt.Fprintf(sb, "%d", slow)
		}
		sb.WriteByte('.')
	}
	if rem > 0 {
		if rem > 1 {
			fmt.Fprintf(sb, "%d", rem)
		}
		sb.WriteByte(',')
	}
}

func writeRun(sb *strings.Builder, dir direction.Direction, count int, spacing int32) {
	letter := dirLetter(dir, spacing == slowDuration)
	if count > 1 {
		fmt.Fprintf(sb, "%d", count)
	}
	sb.WriteByte(letter)
}

func splitDiagonal(dir direction.Direction) (vert, horiz direction.Direction) {
	switch {
	case dir&direction.N != 0:
		vert = direction.N
	case dir&direction.S != 0:
		vert = direction.S
	}
	switch {
	case dir&direction.W != 0:
		horiz = direction.W
	case dir&direction.E != 0:
		horiz = direction.E
	}
	return vert, horiz
}

func writeDiagonal(sb *strings.Builder, dir direction.Direction) {
	vert, horiz := splitDiagonal(dir)
	sb.WriteByte(dirLetter(vert, false))
	sb.WriteByte('+')
	sb.WriteByte(dirLetter(horiz, false))
}

func writeMouse(sb *strings.Builder, dir direction.Direction) error {
	x, y, ok := direction.DecodeMouse(dir)
	if !ok {
		return fmt.Errorf("%w: %d is not a mouse direction", errs.ErrUnknownDirection, dir)
	}
	sb.WriteByte('*')
	if x == 0 && y == 0 {
		sb.WriteByte('.')
		return nil
	}

	type leg struct {
		dir direction.Direction
		mag int
	}
	var legs []leg
	switch {
	case y < 0:
		legs = append(legs, leg{direction.N, -y})
	case y > 0:
		legs = append(legs, leg{direction.S, y})
	}
	switch {
	case x < 0:
		legs = append(legs, leg{direction.W, -x})
	case x > 0:
		legs = append(legs, leg{direction.E, x})
	}

	for idx, l := range legs {
		if idx > 0 {
			sb.WriteByte(';')
		}
		if l.mag != 1 {
			fmt.Fprintf(sb, "%d", l.mag)
		}
		sb.WriteByte(dirLetter(l.dir, true))
	}
	return nil
}
