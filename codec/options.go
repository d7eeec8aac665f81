package codec

import (
	"github.com/arloliu/jwire/compress"
	"github.com/arloliu/jwire/internal/options"
)

// ContainerCompressionThreshold is the default payload size above which
// the codec given to WithContainerCompression, if any, is applied to a top-level
// LIST or DICT's encoded bytes.
const ContainerCompressionThreshold = 64 * 1024

// EncodeOptions configures a single Encode call.
type EncodeOptions struct {
	frameCodec            FrameCodec
	compressed             bool
	containerCodec         compress.Codec
	containerThreshold     int
}

func newEncodeOptions() *EncodeOptions {
	return &EncodeOptions{containerThreshold: ContainerCompressionThreshold}
}

// EncodeOption configures an EncodeOptions.
type EncodeOption = options.Option[*EncodeOptions]

// WithFrameCodec supplies the FrameCodec used to encode SERIES/DATAFRAME
// values. Required whenever a frame-kind Value is passed to Encode.
func WithFrameCodec(fc FrameCodec) EncodeOption {
	return options.NoError(func(o *EncodeOptions) { o.frameCodec = fc })
}

// WithFrameCompression tells the frame codec to apply its internal
// compression. Callers resolve the size-and-locality policy from
// spec.md §4.4 themselves (the codec package has no notion of session
// locality) and pass the resolved decision here.
func WithFrameCompression(compressed bool) EncodeOption {
	return options.NoError(func(o *EncodeOptions) { o.compressed = compressed })
}

// WithContainerCompression enables the opt-in envelope extension: a
// top-level LIST or DICT whose encoded payload exceeds the threshold is
// compressed with codec and followed by a 1-byte 0xFF marker. Nil (the
// default) never compresses containers, keeping the spec.md §8 golden
// fixtures byte-for-byte reproducible.
func WithContainerCompression(codec compress.Codec) EncodeOption {
	return options.NoError(func(o *EncodeOptions) { o.containerCodec = codec })
}

// WithContainerCompressionThreshold overrides ContainerCompressionThreshold.
func WithContainerCompressionThreshold(n int) EncodeOption {
	return options.NoError(func(o *EncodeOptions) { o.containerThreshold = n })
}

// DecodeOptions configures a single Decode call.
type DecodeOptions struct {
	frameCodec     FrameCodec
	containerCodec compress.Codec
}

func newDecodeOptions() *DecodeOptions {
	return &DecodeOptions{}
}

// DecodeOption configures a DecodeOptions.
type DecodeOption = options.Option[*DecodeOptions]

// WithDecodeFrameCodec supplies the FrameCodec used to decode
// SERIES/DATAFRAME values.
func WithDecodeFrameCodec(fc FrameCodec) DecodeOption {
	return options.NoError(func(o *DecodeOptions) { o.frameCodec = fc })
}

// WithDecodeContainerCompression supplies the codec used to reverse
// WithContainerCompression. It must match the encoder's choice; mismatched
// or missing codecs surface as a decode error rather than silently
// returning compressed bytes as a value.
func WithDecodeContainerCompression(codec compress.Codec) DecodeOption {
	return options.NoError(func(o *DecodeOptions) { o.containerCodec = codec })
}
