// Package errs defines the sentinel errors shared across the codec,
// container, text, and archive packages.
//
// Call sites wrap these with fmt.Errorf("%w: ...", errs.ErrX, ...) to attach
// context; callers test the error kind with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidSignature is returned when a container's leading 4 bytes do
	// not match the expected magic number. Fatal for the whole file.
	ErrInvalidSignature = errors.New("not a valid solution file")

	// ErrTruncated is returned when a buffer runs out of bytes mid-record or
	// mid-opcode. Fatal for the current level only.
	ErrTruncated = errors.New("truncated solution data")

	// ErrBadDelta is returned by the text compressor when two consecutive
	// actions do not have a strictly positive delta.
	ErrBadDelta = errors.New("non-positive delta between actions")

	// ErrUnknownDirection is returned when a direction value falls outside
	// the closed set of NIL, cardinal, diagonal, or mouse-target values.
	ErrUnknownDirection = errors.New("direction value outside the closed set")

	// ErrParse is returned by the text parser on an unexpected character.
	// Wrapped with the one-based column number at the call site.
	ErrParse = errors.New("unexpected character in move notation")

	// ErrBadRuleset is returned when a container's ruleset byte is outside
	// {1, 2}. Fatal for the whole file.
	ErrBadRuleset = errors.New("ruleset value outside {1, 2}")

	// ErrOutOfMemory is returned when a required allocation fails.
	ErrOutOfMemory = errors.New("allocation failure")

	// ErrOppositeAxis is returned when a diagonal or mouse move combines two
	// cardinals on the same axis (U+D, D+U, L+R, R+L).
	ErrOppositeAxis = errors.New("opposite-axis direction combination")

	// ErrNonDirectional is returned by direction.ToIndex for NIL or mouse
	// values, which have no 3-bit compact index.
	ErrNonDirectional = errors.New("value is not a cardinal or diagonal direction")

	// ErrInvalidIndex is returned by direction.FromIndex for an index outside
	// 0..7.
	ErrInvalidIndex = errors.New("compact direction index outside 0..7")

	// ErrUnknownField is returned (as a warning, not a hard failure) when a
	// document object carries a field the converter does not recognize.
	ErrUnknownField = errors.New("unknown document field")

	// ErrMissingPassword is returned (as a warning) when a solution object's
	// password is not exactly 4 characters.
	ErrMissingPassword = errors.New("password is not exactly 4 characters")

	// ErrUnknownCompression is returned when an archive entry names a
	// compression type outside format.CompressionType's closed set.
	ErrUnknownCompression = errors.New("unknown compression type")
)
