// Package container ties together package wire's byte layout and package
// codec's opcode format into whole-file reads and writes of a TWS solution
// container: the preamble, an optional level-set name record, and the
// sequence of per-level solution records.
package container

import (
	"fmt"

	"github.com/tandemgo/tws/action"
	"github.com/tandemgo/tws/codec"
	"github.com/tandemgo/tws/diag"
	"github.com/tandemgo/tws/direction"
	"github.com/tandemgo/tws/endian"
	"github.com/tandemgo/tws/errs"
	"github.com/tandemgo/tws/format"
	"github.com/tandemgo/tws/internal/options"
	"github.com/tandemgo/tws/internal/pool"
	"github.com/tandemgo/tws/wire"
)

// readConfig holds the options a Read call can be configured with.
type readConfig struct {
	strict bool
}

// ReadOption configures a Read call.
type ReadOption = options.Option[*readConfig]

// WithStrictMode makes Read abort on the first malformed level record
// instead of reporting it to the Reporter and continuing with the rest of
// the file.
func WithStrictMode() ReadOption {
	return options.NoError(func(c *readConfig) { c.strict = true })
}

// LevelRecord is one level's solution entry: the fixed metadata fields plus
// its move sequence. PasswordOnly records carry metadata but no solution
// (Actions is nil).
type LevelRecord struct {
	Number       uint16
	Password     [4]byte
	Flags        byte
	RSDir        direction.Direction // initial random-slide direction, as a compact cardinal
	Stepping     uint8
	Seed         uint32
	BestTime     int32
	PasswordOnly bool
	Actions      *action.List
}

// Container is a fully parsed TWS solution file.
type Container struct {
	Ruleset format.Ruleset
	Flags   uint16
	Extras  []byte
	SetName string
	Levels  []LevelRecord
}

// Read parses a complete container from data, reporting per-level failures
// to r and skipping the offending record rather than aborting the whole
// file. A malformed preamble is fatal and aborts immediately.
func Read(data []byte, r diag.Reporter, opts ...ReadOption) (*Container, error) {
	cfg := &readConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var hdr wire.Header
	n, err := hdr.Parse(data)
	if err != nil {
		return nil, err
	}

	c := &Container{Ruleset: hdr.Ruleset, Flags: hdr.Flags, Extras: hdr.Extras}
	engine := endian.GetLittleEndianEngine()
	pos := n
	level := 0

	for {
		if pos+4 > len(data) {
			diag.Fatalf(r, -1, "container truncated while reading record framing at byte %d", pos)
			if cfg.strict {
				return nil, fmt.Errorf("%w: record framing at byte %d", errs.ErrTruncated, pos)
			}
			break
		}
		size := engine.Uint32(data[pos : pos+4])
		pos += 4

		if size == wire.EOFMarker {
			break
		}
		if size == wire.PaddingMarker {
			continue
		}
		if pos+int(size) > len(data) {
			diag.Fatalf(r, level, "record claims %d bytes but only %d remain", size, len(data)-pos)
			if cfg.strict {
				return nil, fmt.Errorf("%w: level %d claims %d bytes but only %d remain", errs.ErrTruncated, level, size, len(data)-pos)
			}
			break
		}
		body := data[pos : pos+int(size)]
		pos += int(size)

		rec, name, err := parseRecord(body)
		if err != nil {
			diag.Fatalf(r, level, "%v", err)
			if cfg.strict {
				return nil, fmt.Errorf("level %d: %w", level, err)
			}
			level++
			continue
		}
		if name != "" {
			c.SetName = name
			continue
		}
		c.Levels = append(c.Levels, *rec)
		level++
	}

	return c, nil
}

func parseRecord(body []byte) (rec *LevelRecord, setName string, err error) {
	if len(body) == wire.PasswordOnlySize {
		var number uint16
		var password [4]byte
		engine := endian.GetLittleEndianEngine()
		number = engine.Uint16(body[0:2])
		copy(password[:], body[2:6])
		return &LevelRecord{Number: number, Password: password, PasswordOnly: true}, "", nil
	}

	var rh wire.RecordHeader
	if err := rh.Parse(body); err != nil {
		return nil, "", err
	}
	opcodes := body[wire.RecordHeaderSize:]

	if rh.IsSetName() {
		// The level-set name is capped at 255 bytes; anything beyond is dropped.
		if len(opcodes) > 255 {
			opcodes = opcodes[:255]
		}
		return nil, string(opcodes), nil
	}

	dir, derr := direction.FromIndex(int(rh.RSDir))
	if derr != nil {
		return nil, "", derr
	}

	list, err := codec.Decode(opcodes)
	if err != nil {
		return nil, "", fmt.Errorf("level %d: %w", rh.Number, err)
	}

	return &LevelRecord{
		Number:   rh.Number,
		Password: rh.Password,
		Flags:    rh.Flags,
		RSDir:    dir,
		Stepping: rh.Stepping,
		Seed:     rh.Seed,
		BestTime: rh.BestTime,
		Actions:  list,
	}, "", nil
}

// Write serializes a container to its binary form.
func Write(c *Container) ([]byte, error) {
	bb := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(bb)

	hdr := wire.Header{Ruleset: c.Ruleset, Flags: c.Flags, Extras: c.Extras}
	bb.MustWrite(hdr.Bytes())

	engine := endian.GetLittleEndianEngine()
	writeFramed := func(body []byte) {
		lenBuf := make([]byte, 4)
		engine.PutUint32(lenBuf, uint32(len(body)))
		bb.MustWrite(lenBuf)
		bb.MustWrite(body)
	}

	if c.SetName != "" {
		rh := wire.RecordHeader{}
		body := append(rh.Bytes(), []byte(c.SetName)...)
		writeFramed(body)
	}

	for _, lvl := range c.Levels {
		if lvl.PasswordOnly {
			body := make([]byte, wire.PasswordOnlySize)
			engine.PutUint16(body[0:2], lvl.Number)
			copy(body[2:6], lvl.Password[:])
			writeFramed(body)
			continue
		}

		idx, err := direction.ToIndex(lvl.RSDir)
		if err != nil && lvl.RSDir != direction.Nil {
			return nil, fmt.Errorf("%w: level %d rsdir", errs.ErrUnknownDirection, lvl.Number)
		}
		rh := wire.RecordHeader{
			Number:   lvl.Number,
			Password: lvl.Password,
			Flags:    lvl.Flags,
			RSDir:    uint8(idx),
			Stepping: lvl.Stepping,
			Seed:     lvl.Seed,
			BestTime: lvl.BestTime,
		}

		var actions []action.Action
		if lvl.Actions != nil {
			actions = lvl.Actions.All()
		}
		opcodes, err := codec.Encode(actions)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", lvl.Number, err)
		}

		body := append(rh.Bytes(), opcodes...)
		writeFramed(body)
	}

	eofBuf := make([]byte, 4)
	engine.PutUint32(eofBuf, wire.EOFMarker)
	bb.MustWrite(eofBuf)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}
