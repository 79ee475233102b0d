// Package compress provides compression and decompression codecs for archive entries.
//
// This package offers multiple compression algorithms optimized for different
// characteristics of serialized TWS containers and converted documents.
// Compression is applied per archive entry, after the entry has already been
// produced by the conversion pipeline.
//
// # Overview
//
// An archive bundles many converted containers into one transport unit. Each
// entry can be compressed independently, supporting multiple algorithms:
//   - None: No compression (fastest, largest)
//   - Zstd: Excellent compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp Compression** (format.CompressionNone)
//
//	codec := compress.NewNoOpCompressor()
//	compressed, _ := codec.Compress(data)  // Returns data unchanged
//	original, _ := codec.Decompress(compressed)  // Returns data unchanged
//
// Use when:
//   - Entries are small and compression overhead isn't worth it
//   - CPU is more critical than storage
//   - Data is already dense, bit-packed opcode streams
//
// **Zstandard (Zstd)** (format.CompressionZstd)
//
//	codec := compress.NewZstdCompressor()
//	compressed, _ := codec.Compress(data)  // Best compression ratio
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Excellent, especially on repetitive level-set batches
//   - Speed: Moderate
//   - Memory: ~2-4 MB for compression, ~1-2 MB for decompression
//
// Best for:
//   - Archiving a full level set's worth of solutions
//   - Network transmission of batch conversion results
//
// **S2 (Snappy Alternative)** (format.CompressionS2)
//
//	codec := compress.NewS2Compressor()
//	compressed, _ := codec.Compress(data)  // Fast with good compression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Good
//   - Speed: Fast
//   - Memory: ~256KB for compression, ~64KB for decompression
//
// Best for:
//   - CI pipelines converting many files per run where latency matters
//
// **LZ4** (format.CompressionLZ4)
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)  // Very fast decompression
//	original, _ := codec.Decompress(compressed)
//
// Characteristics:
//   - Compression: Moderate
//   - Speed: Very fast decompression, moderate compression
//   - Memory: ~64KB for compression, ~16KB for decompression
//
// Best for:
//   - Read-heavy archive consumers (re-extracting entries frequently)
//
// # Algorithm Selection Guide
//
// | Workload Type          | Recommended | Reason                              |
// |------------------------|-------------|-------------------------------------|
// | Storage-constrained    | Zstd        | Best compression ratio              |
// | Batch CI conversion    | S2          | Balanced speed and compression      |
// | Archive re-extraction  | LZ4         | Fastest decompression               |
// | CPU-constrained        | None        | No compression overhead             |
//
// # Memory Management
//
// The LZ4 codec and the pure-Go Zstd codec reuse compressor and decoder state
// through sync.Pool. The codecs do not use the buffers in internal/pool.
//
// # Thread Safety
//
// All codec implementations are safe to share across goroutines.
//
// # Error Handling
//
// Compression errors are rare but can occur on pathological input sizes.
// Decompression errors are more common: corrupted entry data, or a compression
// type mismatch between what the archive header declares and what was
// actually used. The decompressed size is not checked against the entry's
// recorded original size. The pure-Go Zstd codec wraps its decompression
// errors with context; the LZ4 and S2 codecs return the library's error as is.
package compress
