package compress

import "fmt"

// Type identifies a compression algorithm. It is not written to the wire:
// the container compression envelope (codec.WithContainerCompression) ends
// in a fixed 0xFF marker, so encoder and decoder agree on the Codec through
// their own configuration.
type Type uint8

const (
	// TypeNone disables compression; payload bytes pass through unchanged.
	TypeNone Type = iota
	// TypeZstd selects Zstandard, favoring ratio over speed.
	TypeZstd
	// TypeS2 selects S2, a Snappy-compatible algorithm tuned for speed.
	TypeS2
	// TypeLZ4 selects LZ4, favoring fast decompression.
	TypeLZ4
)

// String returns a human-readable name for the compression type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zstd"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Compressor compresses a single contiguous payload.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller; NoOpCompressor returns
	//     data itself, the other codecs a newly allocated slice
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Thread Safety: implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data and returns the original result.
	//
	// Returns an error if data is corrupted or was produced by a different
	// algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of a single compress operation, for
// session-level logging and diagnostics.
type CompressionStats struct {
	Algorithm           Type
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns CompressedSize / OriginalSize. Values below 1.0
// indicate the payload shrank.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the given
// compression type. target names the caller for error messages.
func CreateCodec(t Type, target string) (Codec, error) {
	switch t {
	case TypeNone:
		return NewNoOpCompressor(), nil
	case TypeZstd:
		return NewZstdCompressor(), nil
	case TypeS2:
		return NewS2Compressor(), nil
	case TypeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %d", target, t)
	}
}

var builtinCodecs = map[Type]Codec{
	TypeNone: NewNoOpCompressor(),
	TypeZstd: NewZstdCompressor(),
	TypeS2:   NewS2Compressor(),
	TypeLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for t.
func GetCodec(t Type) (Codec, error) {
	if c, ok := builtinCodecs[t]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %d", t)
}
