package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/jwire/internal/pool"
	"github.com/arloliu/jwire/jerrs"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wire"
)

// encodeScalar writes a fixed- or text-layout value (everything except
// LIST, DICT, SERIES, DATAFRAME) to buf. Contracts per kind are exact byte
// layouts from the scalar codec specification; decode mirrors this.
func encodeScalar(buf *pool.ByteBuffer, v value.Value) error {
	switch v.Kind() {
	case wire.Null:
		putU32(buf, uint32(wire.Null))
		putZeros(buf, 4)

	case wire.Boolean:
		putU32(buf, uint32(wire.Boolean))
		b, _ := v.Bool()
		if b {
			putU8(buf, 1)
		} else {
			putU8(buf, 0)
		}
		putZeros(buf, 3)

	case wire.Int:
		putU64(buf, uint64(wire.Int))
		i, _ := v.Int()
		putI64(buf, i)

	case wire.Time:
		putU64(buf, uint64(wire.Time))
		t, _ := v.Time()
		putI64(buf, t)

	case wire.Duration:
		putU64(buf, uint64(wire.Duration))
		d, _ := v.Duration()
		putI64(buf, d)

	case wire.Float:
		putU64(buf, uint64(wire.Float))
		f, _ := v.Float()
		putF64(buf, f)

	case wire.Date:
		putU32(buf, uint32(wire.Date))
		d, _ := v.Date()
		putU32(buf, uint32(d))

	case wire.Datetime:
		ms, tz, _ := v.Datetime()
		encodeEpochWithTZ(buf, wire.Datetime, ms, tz)

	case wire.Timestamp:
		ns, tz, _ := v.Timestamp()
		encodeEpochWithTZ(buf, wire.Timestamp, ns, tz)

	case wire.String:
		s, _ := v.String()
		encodeText(buf, wire.String, s)

	case wire.Cat:
		s, _ := v.Cat()
		encodeText(buf, wire.Cat, s)

	case wire.Err:
		s, _ := v.Err()
		encodeText(buf, wire.Err, s)

	case wire.Fn:
		s, _ := v.Fn()
		encodeText(buf, wire.Fn, s)

	default:
		return fmt.Errorf("%w: %s is not a scalar kind", jerrs.ErrUnsupportedKind, v.Kind())
	}

	return nil
}

// encodeEpochWithTZ writes the shared DATETIME/TIMESTAMP layout: 4 bytes
// code, 4 bytes length-of-payload (8+|tz|), 8 bytes signed epoch units, tz
// bytes, padded to 8.
func encodeEpochWithTZ(buf *pool.ByteBuffer, k wire.Kind, epoch int64, tz string) {
	putU32(buf, uint32(k))
	putU32(buf, uint32(8+len(tz)))
	putI64(buf, epoch)
	putBytes(buf, []byte(tz))
	padBufferTo8(buf)
}

// encodeText writes the shared STRING/CAT/ERR/FN layout: 4 bytes code, 4
// bytes UTF-8 byte length, UTF-8 bytes, padded to 8.
func encodeText(buf *pool.ByteBuffer, k wire.Kind, s string) {
	putU32(buf, uint32(k))
	putU32(buf, uint32(len(s)))
	putBytes(buf, []byte(s))
	padBufferTo8(buf)
}

// decodeScalar decodes the value at data[0:], which must begin with kind's
// 4-byte code (already consumed by the caller into kind). It returns the
// decoded value and the number of bytes consumed from data, including the
// leading code word and any trailing padding.
func decodeScalar(data []byte, k wire.Kind) (value.Value, int, error) {
	switch k {
	case wire.Null:
		if err := need(data, 0, 8); err != nil {
			return value.Value{}, 0, err
		}

		return value.NewNull(), 8, nil

	case wire.Boolean:
		b, err := readBytes(data, 4, 1)
		if err != nil {
			return value.Value{}, 0, err
		}

		return value.NewBool(b[0] != 0), 8, nil

	case wire.Int:
		i, err := readI64(data, 8)
		if err != nil {
			return value.Value{}, 0, err
		}

		return value.NewInt(i), 16, nil

	case wire.Time:
		t, err := readI64(data, 8)
		if err != nil {
			return value.Value{}, 0, err
		}

		return value.NewTime(t), 16, nil

	case wire.Duration:
		d, err := readI64(data, 8)
		if err != nil {
			return value.Value{}, 0, err
		}

		return value.NewDuration(d), 16, nil

	case wire.Float:
		f, err := readF64(data, 8)
		if err != nil {
			return value.Value{}, 0, err
		}

		return value.NewFloat(f), 16, nil

	case wire.Date:
		d, err := readU32(data, 4)
		if err != nil {
			return value.Value{}, 0, err
		}

		return value.NewDate(int32(d)), 8, nil

	case wire.Datetime, wire.Timestamp:
		return decodeEpochWithTZ(data, k)

	case wire.String, wire.Cat, wire.Err, wire.Fn:
		return decodeText(data, k)

	default:
		return value.Value{}, 0, fmt.Errorf("%w: %s is not a scalar kind", jerrs.ErrUnsupportedKind, k)
	}
}

func decodeEpochWithTZ(data []byte, k wire.Kind) (value.Value, int, error) {
	payloadLen, err := readU32(data, 4)
	if err != nil {
		return value.Value{}, 0, err
	}
	if payloadLen < 8 {
		return value.Value{}, 0, fmt.Errorf("%w: %s payload length %d shorter than epoch field", jerrs.ErrTruncatedPayload, k, payloadLen)
	}

	epoch, err := readI64(data, 8)
	if err != nil {
		return value.Value{}, 0, err
	}

	tzLen := int(payloadLen) - 8
	tzBytes, err := readBytes(data, 16, tzLen)
	if err != nil {
		return value.Value{}, 0, err
	}
	if !utf8.Valid(tzBytes) {
		return value.Value{}, 0, fmt.Errorf("%w: timezone name", jerrs.ErrInvalidUTF8)
	}
	tz := string(tzBytes)

	total := padTo8(16 + tzLen)

	var v value.Value
	if k == wire.Datetime {
		v = value.NewDatetime(epoch, tz)
	} else {
		v = value.NewTimestamp(epoch, tz)
	}

	return v, total, nil
}

func decodeText(data []byte, k wire.Kind) (value.Value, int, error) {
	strLen, err := readU32(data, 4)
	if err != nil {
		return value.Value{}, 0, err
	}

	textBytes, err := readBytes(data, 8, int(strLen))
	if err != nil {
		return value.Value{}, 0, err
	}
	if !utf8.Valid(textBytes) {
		return value.Value{}, 0, fmt.Errorf("%w: %s text", jerrs.ErrInvalidUTF8, k)
	}
	text := string(textBytes)

	total := padTo8(8 + int(strLen))
	if err := need(data, 0, total); err != nil {
		return value.Value{}, 0, err
	}

	var v value.Value
	switch k {
	case wire.String:
		v = value.NewString(text)
	case wire.Cat:
		v = value.NewCat(text)
	case wire.Err:
		v = value.NewErr(text)
	case wire.Fn:
		v = value.NewFn(text)
	}

	return v, total, nil
}
