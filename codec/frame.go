package codec

import (
	"fmt"

	"github.com/arloliu/jwire/internal/pool"
	"github.com/arloliu/jwire/jerrs"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wire"
)

// FrameCodec is the externally-injected hook that turns an opaque frame
// payload into Arrow-IPC bytes and back. The codec package never
// constructs or inspects a frame itself; frameref provides a reference
// implementation, and callers embedding a real Arrow engine supply their
// own.
type FrameCodec interface {
	// EncodeFrame writes frame's wire bytes to buf. compressed tells the
	// codec whether to apply its internal (e.g. zstd block) compression;
	// this is never an external envelope around the returned bytes.
	EncodeFrame(buf *pool.ByteBuffer, frame any, compressed bool) error
	// DecodeFrame reads a frame from the front of data, returning the
	// decoded frame and the number of bytes consumed.
	DecodeFrame(data []byte) (any, int, error)
	// EstimateSize returns an upper bound for frame's encoded size,
	// consumed by estimate.Size through the estimate.FrameSizer contract.
	EstimateSize(frame any) int
}

// FrameCompressionThreshold is the estimated-size cutoff above which a
// non-local session compresses SERIES/DATAFRAME payloads.
const FrameCompressionThreshold = 4_000_000

// encodeFrame writes a SERIES or DATAFRAME: 4 bytes code, 4 bytes
// back-patched length, the frame writer's bytes, padded to 8.
func encodeFrame(buf *pool.ByteBuffer, v value.Value, fc FrameCodec, compressed bool) error {
	if fc == nil {
		return jerrs.ErrNilFrameCodec
	}

	frame, ok := v.Frame()
	if !ok {
		return fmt.Errorf("%w: %s is not a frame kind", jerrs.ErrUnsupportedKind, v.Kind())
	}

	putU32(buf, uint32(v.Kind()))
	lenOffset := buf.Len()
	putU32(buf, 0)
	bodyStart := buf.Len()

	if err := fc.EncodeFrame(buf, frame, compressed); err != nil {
		return fmt.Errorf("%w: frame encode: %w", jerrs.ErrEncode, err)
	}

	patchU32(buf, lenOffset, uint32(buf.Len()-bodyStart))
	padBufferTo8(buf)

	return nil
}

// decodeFrame decodes a SERIES or DATAFRAME at data[0:], which must begin
// with k's 4-byte code.
func decodeFrame(data []byte, k wire.Kind, fc FrameCodec) (value.Value, int, error) {
	if fc == nil {
		return value.Value{}, 0, jerrs.ErrNilFrameCodec
	}

	payloadLen, err := readU32(data, 4)
	if err != nil {
		return value.Value{}, 0, err
	}

	body, err := readBytes(data, 8, int(payloadLen))
	if err != nil {
		return value.Value{}, 0, err
	}

	frame, consumed, err := fc.DecodeFrame(body)
	if err != nil {
		return value.Value{}, 0, fmt.Errorf("%w: %w", jerrs.ErrFrameDecode, err)
	}
	if consumed != len(body) {
		return value.Value{}, 0, fmt.Errorf("%w: frame codec consumed %d of %d payload bytes", jerrs.ErrFrameDecode, consumed, len(body))
	}

	total := padTo8(8 + int(payloadLen))

	var v value.Value
	switch k {
	case wire.Series:
		v = value.NewSeries(frame)
	case wire.Dataframe:
		v = value.NewDataFrame(frame)
	default:
		return value.Value{}, 0, fmt.Errorf("%w: %s is not a frame kind", jerrs.ErrUnsupportedKind, k)
	}

	return v, total, nil
}
