// Package jwire implements the J interactive data-analysis engine's
// value-serialization codec and IPC session protocol: a self-describing,
// 8-byte-aligned binary wire format with length prefixes, optional
// columnar compression, recursive container framing, and a lightweight
// request/response multiplexing header.
//
// # Core packages
//
// Most callers only need this package and value:
//
//	v := value.NewInt(42)
//	bytes, err := jwire.Encode(v)
//	decoded, _, err := jwire.Decode(bytes)
//
// Advanced usage — selecting a frame codec, enabling container
// compression, or driving a session — uses the codec, frameref, and
// session packages directly; see their package docs.
//
// # Package structure
//
//   - wire: the seventeen-member Kind enumeration and fixed-trailer table.
//   - value: the tagged-union Value type.
//   - estimate: preallocation-size estimator.
//   - codec: the scalar/container/frame wire codec (Encode/Decode).
//   - compress: the Compressor/Decompressor/Codec abstraction.
//   - frameref: a reference codec.FrameCodec (columns of float64/string).
//   - wireframe: the 8-byte request/response message header.
//   - session: Client/Server implementing the handshake and
//     request/response loop.
package jwire

import (
	"github.com/arloliu/jwire/codec"
	"github.com/arloliu/jwire/value"
)

// Encode serializes v with codec.Encode, passing opts through. With no
// opts it uses the default codec options: no frame codec (an error if v is
// SERIES/DATAFRAME) and no container compression.
func Encode(v value.Value, opts ...codec.EncodeOption) ([]byte, error) {
	return codec.Encode(v, opts...)
}

// Decode reads one value from the front of data, mirroring Encode's
// default options.
func Decode(data []byte, opts ...codec.DecodeOption) (value.Value, int, error) {
	return codec.Decode(data, opts...)
}
