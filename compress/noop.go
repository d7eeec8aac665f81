package compress

// NoOpCompressor backs compress.TypeNone: it passes payload bytes through
// unchanged. Given to codec.WithContainerCompression it still receives the
// 0xFF envelope marker above the threshold; payloads under the threshold are
// left unwrapped by the codec package whichever Codec is configured.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns a compressor that passes data through unchanged.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unmodified. The returned slice aliases data; callers
// must not mutate data afterward if they still hold the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unmodified, mirroring Compress.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
