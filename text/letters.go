package text

import "github.com/tandemgo/tws/direction"

// axis classifies a cardinal as vertical or horizontal, used to reject
// same-axis diagonal and mouse-leg combinations (U+D, L+R, and their
// reverses, plus any repeated same-axis pairing).
type axis uint8

const (
	axisVertical axis = iota
	axisHorizontal
)

// letterDir maps a move-notation letter to its cardinal direction and
// whether it was given in upper case (slow, 4-tick) or lower case (fast,
// 1-tick). ok is false for any byte outside {U,D,L,R,u,d,l,r}.
func letterDir(c byte) (dir direction.Direction, upper bool, ok bool) {
	switch c {
	case 'U':
		return direction.N, true, true
	case 'D':
		return direction.S, true, true
	case 'L':
		return direction.W, true, true
	case 'R':
		return direction.E, true, true
	case 'u':
		return direction.N, false, true
	case 'd':
		return direction.S, false, true
	case 'l':
		return direction.W, false, true
	case 'r':
		return direction.E, false, true
	default:
		return direction.Nil, false, false
	}
}

func letterAxis(dir direction.Direction) axis {
	if dir == direction.N || dir == direction.S {
		return axisVertical
	}
	return axisHorizontal
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// dirLetter renders a cardinal as its canonical lower/upper letter pair,
// used by the compressor.
func dirLetter(dir direction.Direction, upper bool) byte {
	var c byte
	switch dir {
	case direction.N:
		c = 'u'
	case direction.W:
		c = 'l'
	case direction.S:
		c = 'd'
	case direction.E:
		c = 'r'
	default:
		return 0
	}
	if upper {
		return c - ('a' - 'A')
	}
	return c
}
