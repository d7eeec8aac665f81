package compress

import "github.com/klauspost/compress/s2"

// S2Compressor backs compress.TypeS2, favoring throughput over ratio: a
// session handling many small synchronous responses benefits more from S2's
// speed than from zstd's tighter output.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns an S2 compressor with default settings.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data with S2.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress restores data compressed by S2Compressor.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
