package codec

import (
	"github.com/arloliu/jwire/endian"
	"github.com/arloliu/jwire/internal/pool"
)

// engine is the wire format's fixed byte order. J's wire format has no
// endian negotiation (little-endian only), but the codec still goes
// through the EndianEngine abstraction rather than calling encoding/binary
// directly, so a future big-endian variant only needs a different engine
// plugged in here.
var engine = endian.GetLittleEndianEngine()

// padTo8 returns n rounded up to the next multiple of 8.
func padTo8(n int) int {
	return (n + 7) &^ 7
}

// putU8 appends a single byte.
func putU8(buf *pool.ByteBuffer, v uint8) {
	start := buf.Len()
	buf.ExtendOrGrow(1)
	buf.B[start] = v
}

// putZeros appends n zero bytes.
func putZeros(buf *pool.ByteBuffer, n int) {
	if n <= 0 {
		return
	}

	start := buf.Len()
	buf.ExtendOrGrow(n)
	for i := start; i < start+n; i++ {
		buf.B[i] = 0
	}
}

// putU32 appends a little-endian uint32.
func putU32(buf *pool.ByteBuffer, v uint32) {
	start := buf.Len()
	buf.ExtendOrGrow(4)
	engine.PutUint32(buf.B[start:start+4], v)
}

// putI64 appends a little-endian signed 64-bit integer.
func putI64(buf *pool.ByteBuffer, v int64) {
	start := buf.Len()
	buf.ExtendOrGrow(8)
	engine.PutUint64(buf.B[start:start+8], uint64(v))
}

// putU64 appends a little-endian uint64.
func putU64(buf *pool.ByteBuffer, v uint64) {
	start := buf.Len()
	buf.ExtendOrGrow(8)
	engine.PutUint64(buf.B[start:start+8], v)
}

// putF64 appends a little-endian IEEE-754 binary64.
func putF64(buf *pool.ByteBuffer, v float64) {
	putU64(buf, float64bits(v))
}

// putBytes appends raw bytes.
func putBytes(buf *pool.ByteBuffer, data []byte) {
	buf.MustWrite(data)
}

// padBufferTo8 appends zero bytes so the buffer length becomes 8-aligned.
func padBufferTo8(buf *pool.ByteBuffer) {
	n := padTo8(buf.Len()) - buf.Len()
	putZeros(buf, n)
}

// patchU32 overwrites 4 bytes at offset with a little-endian uint32. Used to
// back-patch length fields once a body's total size is known.
func patchU32(buf *pool.ByteBuffer, offset int, v uint32) {
	engine.PutUint32(buf.B[offset:offset+4], v)
}

// patchU64 overwrites 8 bytes at offset with a little-endian uint64.
func patchU64(buf *pool.ByteBuffer, offset int, v uint64) {
	engine.PutUint64(buf.B[offset:offset+8], v)
}
