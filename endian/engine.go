// Package endian supplies the byte-order engine the wire codec writes
// through.
//
// J's wire format (spec.md §4.1) is little-endian only; there is no
// negotiation with a peer and no notion of host byte order, since a value
// encoded on a big-endian host and a little-endian host must produce
// identical bytes. The codec package still goes through an EndianEngine
// value rather than calling encoding/binary directly, so the one place
// that would need to change for a hypothetical big-endian wire variant is
// this package, not every put/patch call site in codec.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, value)
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface, so callers get both the Put*/Uint* accessors and the
// allocation-free Append* helpers from a single value.
//
// binary.LittleEndian and binary.BigEndian both satisfy it as-is.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine the wire codec uses for every
// value it encodes or decodes.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns a big-endian engine. Nothing in this module
// constructs one today; it exists so a future wire variant (or an
// interop shim reading a foreign big-endian format) has somewhere to
// plug in without changing the EndianEngine interface.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
