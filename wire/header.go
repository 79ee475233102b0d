// Package wire implements the byte-level layout of the TWS container: the
// file preamble, the per-level record framing, and the fixed 16-byte record
// header. It has no opinion on opcode stream contents; that belongs to
// package codec.
package wire

import (
	"fmt"

	"github.com/tandemgo/tws/endian"
	"github.com/tandemgo/tws/errs"
	"github.com/tandemgo/tws/format"
)

// Signature is the magic number every valid container begins with.
const Signature uint32 = 0x999B3335

// HeaderSize is the fixed size of the container preamble excluding extras.
const HeaderSize = 8

// Header is the container preamble: signature, ruleset, flags, and an
// opaque extras blob whose length is self-described.
type Header struct {
	Ruleset format.Ruleset
	Flags   uint16
	Extras  []byte
}

// Parse reads a Header from the front of data, returning the number of
// bytes consumed.
func (h *Header) Parse(data []byte) (int, error) {
	if len(data) < HeaderSize {
		return 0, fmt.Errorf("%w: container header needs %d bytes, got %d", errs.ErrTruncated, HeaderSize, len(data))
	}

	engine := endian.GetLittleEndianEngine()

	sig := engine.Uint32(data[0:4])
	if sig != Signature {
		return 0, fmt.Errorf("%w: signature %#08x", errs.ErrInvalidSignature, sig)
	}

	ruleset := format.Ruleset(data[4])
	if !ruleset.Valid() {
		return 0, fmt.Errorf("%w: %d", errs.ErrBadRuleset, ruleset)
	}
	h.Ruleset = ruleset
	h.Flags = engine.Uint16(data[5:7])

	extraSize := int(data[7])
	if len(data) < HeaderSize+extraSize {
		return 0, fmt.Errorf("%w: extras need %d bytes", errs.ErrTruncated, extraSize)
	}
	h.Extras = append([]byte(nil), data[HeaderSize:HeaderSize+extraSize]...)

	return HeaderSize + extraSize, nil
}

// Bytes serializes the Header, including its extras, in wire order.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize+len(h.Extras))

	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(b[0:4], Signature)
	b[4] = byte(h.Ruleset)
	engine.PutUint16(b[5:7], h.Flags)
	b[7] = byte(len(h.Extras))
	copy(b[HeaderSize:], h.Extras)

	return b
}
