package wire

import (
	"fmt"

	"github.com/tandemgo/tws/endian"
	"github.com/tandemgo/tws/errs"
)

// Framing markers for the 4-byte little-endian record-length prefix that
// precedes every level record in the container body.
const (
	EOFMarker     uint32 = 0xFFFFFFFF
	PaddingMarker uint32 = 0
)

// RecordHeaderSize is the size of the fixed fields at the front of a level
// record; bytes beyond this are the opcode stream.
const RecordHeaderSize = 16

// PasswordOnlySize is the record payload length that carries only a number
// and password, with no opcode stream.
const PasswordOnlySize = 6

// TimeNil is the sentinel best-time value meaning "unknown". It round-trips
// through the container unclamped; it is not a valid tick count.
const TimeNil int32 = 1<<31 - 1

// RecordHeader is the fixed 16-byte prefix of a level record.
type RecordHeader struct {
	Number   uint16
	Password [4]byte
	Flags    byte
	RSDir    uint8 // 3-bit compact direction index
	Stepping uint8 // 3-bit value in [0,7]
	Seed     uint32
	BestTime int32
}

// Parse reads a RecordHeader from the first RecordHeaderSize bytes of data.
func (r *RecordHeader) Parse(data []byte) error {
	if len(data) < RecordHeaderSize {
		return fmt.Errorf("%w: record header needs %d bytes, got %d", errs.ErrTruncated, RecordHeaderSize, len(data))
	}

	engine := endian.GetLittleEndianEngine()

	r.Number = engine.Uint16(data[0:2])
	copy(r.Password[:], data[2:6])
	r.Flags = data[6]
	r.RSDir = data[7] & 0x07
	r.Stepping = (data[7] >> 3) & 0x07
	r.Seed = engine.Uint32(data[8:12])
	r.BestTime = int32(engine.Uint32(data[12:16]))

	return nil
}

// Bytes serializes the RecordHeader to its fixed 16-byte wire form.
func (r *RecordHeader) Bytes() []byte {
	b := make([]byte, RecordHeaderSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], r.Number)
	copy(b[2:6], r.Password[:])
	b[6] = r.Flags
	b[7] = (r.Stepping&0x07)<<3 | (r.RSDir & 0x07)
	engine.PutUint32(b[8:12], r.Seed)
	engine.PutUint32(b[12:16], uint32(r.BestTime))

	return b
}

// IsSetName reports whether a record header with this number/password
// combination marks a level-set name record rather than a real solution.
func (r *RecordHeader) IsSetName() bool {
	return r.Number == 0 && r.Password[0] == 0
}
