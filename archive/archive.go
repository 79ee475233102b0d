// Package archive bundles multiple converted archive entries (serialized
// containers or documents) into one transport unit, deduplicating entries
// that hash to the same content and compressing each unique blob with a
// package compress codec.
package archive

import (
	"fmt"

	"github.com/tandemgo/tws/compress"
	"github.com/tandemgo/tws/endian"
	"github.com/tandemgo/tws/errs"
	"github.com/tandemgo/tws/format"
	"github.com/tandemgo/tws/internal/hash"
	"github.com/tandemgo/tws/internal/pool"
)

// magic is the 4-byte signature an archive file begins with.
var magic = [4]byte{'T', 'W', 'A', 'R'}

// blob is one unique, compressed content entry, keyed by its fingerprint.
type blob struct {
	fingerprint  uint64
	compression  format.CompressionType
	originalSize uint32
	data         []byte
}

// named associates a caller-supplied name with the fingerprint of the blob
// holding its content; two names can share a fingerprint when their
// content is identical.
type named struct {
	name        string
	fingerprint uint64
}

// Archive is an in-memory bundle of named entries backed by deduplicated,
// compressed blobs.
type Archive struct {
	compression format.CompressionType
	blobs       map[uint64]blob
	entries     []named
}

// New creates an empty Archive that compresses every added entry with the
// given algorithm.
func New(compression format.CompressionType) *Archive {
	return &Archive{compression: compression, blobs: make(map[uint64]blob)}
}

// Add compresses and stores data under name. If an entry with identical
// content already exists, name is recorded against the existing blob
// instead of compressing and storing a duplicate.
func (a *Archive) Add(name string, data []byte) error {
	fp := hash.IDBytes(data)

	if _, exists := a.blobs[fp]; !exists {
		codec, err := compress.GetCodec(a.compression)
		if err != nil {
			return err
		}
		compressed, err := codec.Compress(data)
		if err != nil {
			return fmt.Errorf("archive: compressing %q: %w", name, err)
		}
		a.blobs[fp] = blob{
			fingerprint:  fp,
			compression:  a.compression,
			originalSize: uint32(len(data)),
			data:         compressed,
		}
	}

	a.entries = append(a.entries, named{name: name, fingerprint: fp})
	return nil
}

// Names returns the entry names in the order they were added.
func (a *Archive) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.name
	}
	return names
}

// Get decompresses and returns the content stored under name.
func (a *Archive) Get(name string) ([]byte, error) {
	for _, e := range a.entries {
		if e.name != name {
			continue
		}
		b, ok := a.blobs[e.fingerprint]
		if !ok {
			return nil, fmt.Errorf("archive: entry %q references missing blob", name)
		}
		codec, err := compress.GetCodec(b.compression)
		if err != nil {
			return nil, err
		}
		return codec.Decompress(b.data)
	}
	return nil, fmt.Errorf("archive: no entry named %q", name)
}

// BlobCount reports the number of unique compressed blobs the archive
// holds, which can be smaller than the entry count when entries dedup.
func (a *Archive) BlobCount() int {
	return len(a.blobs)
}

// Write serializes the archive to its binary form.
func (a *Archive) Write() ([]byte, error) {
	bb := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(bb)

	engine := endian.GetLittleEndianEngine()
	bb.MustWrite(magic[:])

	blobOrder := make([]uint64, 0, len(a.blobs))
	for fp := range a.blobs {
		blobOrder = append(blobOrder, fp)
	}

	countBuf := make([]byte, 4)
	engine.PutUint32(countBuf, uint32(len(blobOrder)))
	bb.MustWrite(countBuf)

	for _, fp := range blobOrder {
		b := a.blobs[fp]
		header := make([]byte, 8+1+4+4)
		engine.PutUint64(header[0:8], b.fingerprint)
		header[8] = byte(b.compression)
		engine.PutUint32(header[9:13], b.originalSize)
		engine.PutUint32(header[13:17], uint32(len(b.data)))
		bb.MustWrite(header)
		bb.MustWrite(b.data)
	}

	entryCountBuf := make([]byte, 4)
	engine.PutUint32(entryCountBuf, uint32(len(a.entries)))
	bb.MustWrite(entryCountBuf)

	for _, e := range a.entries {
		nameBuf := make([]byte, 4)
		engine.PutUint32(nameBuf, uint32(len(e.name)))
		bb.MustWrite(nameBuf)
		bb.MustWrite([]byte(e.name))
		fpBuf := make([]byte, 8)
		engine.PutUint64(fpBuf, e.fingerprint)
		bb.MustWrite(fpBuf)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// Read parses an archive previously produced by Write.
func Read(data []byte) (*Archive, error) {
	if len(data) < 8 || [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("%w: not an archive file", errs.ErrInvalidSignature)
	}
	engine := endian.GetLittleEndianEngine()
	pos := 4

	blobCount := int(engine.Uint32(data[pos : pos+4]))
	pos += 4

	a := &Archive{blobs: make(map[uint64]blob, blobCount)}

	for i := 0; i < blobCount; i++ {
		if pos+17 > len(data) {
			return nil, fmt.Errorf("%w: archive blob header truncated", errs.ErrTruncated)
		}
		fp := engine.Uint64(data[pos : pos+8])
		compression := format.CompressionType(data[pos+8])
		if _, err := compress.GetCodec(compression); err != nil {
			return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompression, compression)
		}
		originalSize := engine.Uint32(data[pos+9 : pos+13])
		compressedSize := int(engine.Uint32(data[pos+13 : pos+17]))
		pos += 17

		if pos+compressedSize > len(data) {
			return nil, fmt.Errorf("%w: archive blob data truncated", errs.ErrTruncated)
		}
		blobData := append([]byte(nil), data[pos:pos+compressedSize]...)
		pos += compressedSize

		a.blobs[fp] = blob{fingerprint: fp, compression: compression, originalSize: originalSize, data: blobData}
		if a.compression == 0 {
			a.compression = compression
		}
	}

	if pos+4 > len(data) {
		return nil, fmt.Errorf("%w: archive entry count truncated", errs.ErrTruncated)
	}
	entryCount := int(engine.Uint32(data[pos : pos+4]))
	pos += 4

	for i := 0; i < entryCount; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("%w: archive entry name length truncated", errs.ErrTruncated)
		}
		nameLen := int(engine.Uint32(data[pos : pos+4]))
		pos += 4
		if pos+nameLen+8 > len(data) {
			return nil, fmt.Errorf("%w: archive entry truncated", errs.ErrTruncated)
		}
		name := string(data[pos : pos+nameLen])
		pos += nameLen
		fp := engine.Uint64(data[pos : pos+8])
		pos += 8

		a.entries = append(a.entries, named{name: name, fingerprint: fp})
	}

	return a, nil
}
