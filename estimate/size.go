// Package estimate computes an upper bound on the encoded byte size of a
// value, so the codec package can preallocate a single contiguous buffer
// before filling it. Overestimation is legal; underestimation is a bug.
package estimate

import (
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wire"
)

// FrameSizer estimates the encoded size of an opaque frame payload. A
// codec.FrameCodec satisfies this interface structurally.
type FrameSizer interface {
	EstimateSize(frame any) int
}

// Size returns an upper bound, in bytes, for the encoded size of v.
// frameSizer is consulted for SERIES/DATAFRAME values; pass nil if v is
// known not to contain one (a frame met with a nil frameSizer counts only
// its 16 header bytes).
func Size(v value.Value, frameSizer FrameSizer) int {
	switch v.Kind() {
	case wire.Null, wire.Boolean, wire.Date:
		return 8
	case wire.Int, wire.Time, wire.Duration, wire.Float:
		return 16
	case wire.Datetime, wire.Timestamp:
		// 4 code + 4 len + 8 data + up to 32 bytes of tz name, rounded up
		// by the caller; this is an upper bound so a flat 48 suffices for
		// IANA zone names.
		return 48
	case wire.String:
		s, _ := v.String()
		return 16 + len(s)
	case wire.Cat:
		s, _ := v.Cat()
		return 16 + len(s)
	case wire.Series, wire.Dataframe:
		frame, _ := v.Frame()
		inner := 0
		if frameSizer != nil {
			inner = frameSizer.EstimateSize(frame)
		}

		return 16 + ceilMul(inner, 11, 10)
	case wire.List:
		elems, _ := v.List()
		total := 16
		for _, e := range elems {
			total += Size(e, frameSizer)
		}

		return total
	case wire.Dict:
		d, _ := v.DictValue()
		total := 32
		d.Range(func(key string, ev value.Value) bool {
			total += 4 + len(key) + Size(ev, frameSizer)
			return true
		})

		return total
	case wire.Err:
		s, _ := v.Err()
		return 16 + len(s)
	case wire.Fn:
		s, _ := v.Fn()
		// FN is encoded by encodeText (codec/scalar.go), which pads its
		// 4-byte code + 4-byte length + body to an 8-byte boundary; a flat
		// 8+len(s) underestimates whenever len(s) isn't already a multiple
		// of 8 and violates len(encode(v)) <= Size(v).
		return padTo8(8 + len(s))
	default:
		return 8
	}
}

// padTo8 returns n rounded up to the next multiple of 8, mirroring the
// codec package's own padding arithmetic.
func padTo8(n int) int {
	return (n + 7) &^ 7
}

// ceilMul computes ceil(n * num / den) without floating point.
func ceilMul(n, num, den int) int {
	return (n*num + den - 1) / den
}
