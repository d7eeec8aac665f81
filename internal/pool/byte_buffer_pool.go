package pool

import (
	"io"
	"sync"
)

// Default and threshold sizes for the package's two pools.
//
// The two profiles are deliberately far apart. A value buffer backs one
// codec.Encode call: estimate.Size's own formulas put most scalars and
// container values (lists/dicts of a few hundred keyed scalars) well under
// a few KiB, so 16KiB covers the common case with room for a handful of
// nested containers without regrowing, and 128KiB caps how much a single
// oversized dict or error payload can pin in the pool afterward. A frame
// buffer instead backs frameref's column block for one SERIES/DATAFRAME
// payload, which can be of arbitrary column width; starting it
// at 1MiB avoids the value pool's regrowth churn for the very first
// non-trivial frame, and the 8MiB ceiling lets a single large frame settle
// back down rather than keeping a multi-hundred-MiB buffer pinned forever.
const (
	ValueBufferDefaultSize  = 1024 * 16       // 16KiB, sized for a typical scalar/container encode
	ValueBufferMaxThreshold = 1024 * 128      // 128KiB
	FrameBufferDefaultSize  = 1024 * 1024     // 1MiB, sized for a frameref column block
	FrameBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a reusable, growable byte slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte

	// minGrowth is the smallest chunk Grow adds at a time, fixed at
	// construction to the pool's own default size. Value buffers and frame
	// buffers live in different size regimes (tens of KiB per encoded
	// value vs. whole megabyte-scale request/response bodies), so a single
	// shared growth-chunk constant would either waste copies re-growing
	// frame buffers in tiny value-sized steps, or over-allocate value
	// buffers in frame-sized steps. Each buffer instead scales from its
	// own starting point.
	minGrowth int
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
// defaultSize also seeds the buffer's growth chunk; see minGrowth.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B:         make([]byte, 0, defaultSize),
		minGrowth: defaultSize,
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - While the buffer is still within 4x its own starting size, grow by
//     minGrowth at a time to minimize reallocations for the common case.
//   - Beyond that, grow by 25% of current capacity, so a buffer that keeps
//     needing more room (an unusually wide dataframe column, say) doesn't
//     keep re-copying in small fixed steps.
//
// A zero-value ByteBuffer (minGrowth == 0, e.g. not built via NewByteBuffer)
// falls back to growing by exactly what's required.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := bb.minGrowth
	if growBy > 0 && cap(bb.B) > 4*bb.minGrowth {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. A maxThreshold discards overly large buffers
// on Put rather than retaining them, to avoid pinning memory after a single
// outsized encode or frame.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	// valueDefaultPool backs single-value encode buffers (codec.Encode).
	valueDefaultPool = NewByteBufferPool(ValueBufferDefaultSize, ValueBufferMaxThreshold)
	// frameDefaultPool backs frameref's column-block scratch buffers,
	// sized for whole SERIES/DATAFRAME payloads rather than one value.
	frameDefaultPool = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
)

// GetValueBuffer retrieves a ByteBuffer from the default value-encode pool.
func GetValueBuffer() *ByteBuffer {
	return valueDefaultPool.Get()
}

// PutValueBuffer returns a ByteBuffer to the default value-encode pool.
func PutValueBuffer(bb *ByteBuffer) {
	valueDefaultPool.Put(bb)
}

// GetFrameBuffer retrieves a ByteBuffer from the default frame pool.
func GetFrameBuffer() *ByteBuffer {
	return frameDefaultPool.Get()
}

// PutFrameBuffer returns a ByteBuffer to the default frame pool.
func PutFrameBuffer(bb *ByteBuffer) {
	frameDefaultPool.Put(bb)
}
