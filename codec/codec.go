// Package codec implements the value-serialization wire format: the
// 8-byte-aligned, self-describing scalar, container, and frame codecs from
// spec.md §4.3-§4.6, assembled behind a single Encode/Decode entrypoint.
package codec

import (
	"fmt"

	"github.com/arloliu/jwire/compress"
	"github.com/arloliu/jwire/estimate"
	"github.com/arloliu/jwire/internal/options"
	"github.com/arloliu/jwire/internal/pool"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wire"
)

// frameSizerAdapter lets a possibly-nil FrameCodec satisfy
// estimate.FrameSizer without estimate importing codec.
type frameSizerAdapter struct{ fc FrameCodec }

func (a frameSizerAdapter) EstimateSize(frame any) int {
	if a.fc == nil {
		return 0
	}

	return a.fc.EstimateSize(frame)
}

// Encode serializes v into a single byte slice sized up front via
// estimate.Size, following a pooled-buffer-and-back-patch idiom: one
// allocation, direct slice writes, no intermediate bytes.Buffer. The
// returned slice is owned by the caller; the pooled scratch buffer
// backing it is released internally.
func Encode(v value.Value, opts ...EncodeOption) ([]byte, error) {
	o := newEncodeOptions()
	if err := options.Apply(o, opts...); err != nil {
		return nil, err
	}

	size := estimate.Size(v, frameSizerAdapter{o.frameCodec})
	buf := pool.GetValueBuffer()
	defer pool.PutValueBuffer(buf)
	buf.Grow(size)

	if err := encodeValue(buf, v, o.frameCodec, *o); err != nil {
		return nil, err
	}

	if isContainerKind(v.Kind()) && o.containerCodec != nil && buf.Len() > o.containerThreshold {
		return wrapContainerCompression(buf.Bytes(), o.containerCodec)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode reads one value from the front of data, returning the value and
// the number of bytes consumed.
func Decode(data []byte, opts ...DecodeOption) (value.Value, int, error) {
	o := newDecodeOptions()
	if err := options.Apply(o, opts...); err != nil {
		return value.Value{}, 0, err
	}

	inputLen := len(data)
	data, unwrapped, err := maybeUnwrapContainerCompression(data, o.containerCodec)
	if err != nil {
		return value.Value{}, 0, err
	}

	v, n, err := decodeValue(data, o.frameCodec)
	if err != nil {
		return value.Value{}, 0, err
	}
	if unwrapped {
		n = inputLen
	}

	return v, n, nil
}

func isContainerKind(k wire.Kind) bool {
	return k == wire.List || k == wire.Dict
}

// wrapContainerCompression compresses an already 8-byte-aligned container
// payload and appends a 1-byte 0xFF marker after it, per SPEC_FULL.md §4.5's
// additive envelope extension. The marker is the same for every algorithm;
// the decoder is told which codec to use through its own options.
func wrapContainerCompression(payload []byte, cc compress.Compressor) ([]byte, error) {
	compressed, err := cc.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("container compression: %w", err)
	}

	out := make([]byte, len(compressed)+1)
	copy(out, compressed)
	out[len(out)-1] = containerCompressedTag

	return out, nil
}

const containerCompressedTag = 0xFF

// maybeUnwrapContainerCompression reverses wrapContainerCompression when
// codec is non-nil and data carries the trailing tag byte. It returns the
// (possibly decompressed) bytes and whether unwrapping occurred.
func maybeUnwrapContainerCompression(data []byte, dc compress.Decompressor) ([]byte, bool, error) {
	if dc == nil || len(data) == 0 || data[len(data)-1] != containerCompressedTag {
		return data, false, nil
	}

	plain, err := dc.Decompress(data[:len(data)-1])
	if err != nil {
		return nil, false, fmt.Errorf("container decompression: %w", err)
	}

	return plain, true, nil
}

// encodeValue dispatches v to its scalar, container, or frame encoder.
func encodeValue(buf *pool.ByteBuffer, v value.Value, fc FrameCodec, opts EncodeOptions) error {
	switch v.Kind() {
	case wire.List:
		elems, _ := v.List()
		return encodeList(buf, elems, fc, opts)

	case wire.Dict:
		d, _ := v.DictValue()
		return encodeDict(buf, d, fc, opts)

	case wire.Series, wire.Dataframe:
		return encodeFrame(buf, v, fc, opts.compressed)

	default:
		return encodeScalar(buf, v)
	}
}

// decodeValue dispatches on the kind code at data[0:4].
func decodeValue(data []byte, fc FrameCodec) (value.Value, int, error) {
	code, err := readU32(data, 0)
	if err != nil {
		return value.Value{}, 0, err
	}

	k, err := wire.ParseKind(uint8(code))
	if err != nil {
		return value.Value{}, 0, err
	}

	switch k {
	case wire.List:
		return decodeList(data, fc)

	case wire.Dict:
		return decodeDict(data, fc)

	case wire.Series, wire.Dataframe:
		return decodeFrame(data, k, fc)

	default:
		return decodeScalar(data, k)
	}
}
