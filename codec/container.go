package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/jwire/internal/pool"
	"github.com/arloliu/jwire/jerrs"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wire"
)

// encodeList writes a LIST value: 4 bytes code, 4 bytes payload length
// (back-patched), 8 bytes element count, then each element encoded with
// its own intra-element padding.
func encodeList(buf *pool.ByteBuffer, elems []value.Value, fc FrameCodec, opts EncodeOptions) error {
	putU32(buf, uint32(wire.List))
	lenOffset := buf.Len()
	putU32(buf, 0) // patched below
	bodyStart := buf.Len()
	putU64(buf, uint64(len(elems)))

	for _, e := range elems {
		if err := encodeValue(buf, e, fc, opts); err != nil {
			return err
		}
	}

	patchU32(buf, lenOffset, uint32(buf.Len()-bodyStart))

	return nil
}

// decodeList decodes a LIST body. data begins at the value's 4-byte code;
// it returns the decoded value and total bytes consumed.
func decodeList(data []byte, fc FrameCodec) (value.Value, int, error) {
	payloadLen, err := readU32(data, 4)
	if err != nil {
		return value.Value{}, 0, err
	}

	countU64, err := readU64(data, 8)
	if err != nil {
		return value.Value{}, 0, err
	}
	count := int(countU64)

	total := 16 + int(payloadLen) - 8
	if err := need(data, 0, total); err != nil {
		return value.Value{}, 0, err
	}

	// Every element occupies at least 8 bytes, so a count the payload
	// cannot hold is rejected before it sizes an allocation.
	if total < 16 || countU64 > uint64((total-16)/8) {
		return value.Value{}, 0, fmt.Errorf("%w: list count %d exceeds payload", jerrs.ErrTruncatedPayload, countU64)
	}

	var elems []value.Value
	if count > 0 {
		elems = make([]value.Value, 0, count)
	}
	offset := 16
	for i := 0; i < count; i++ {
		elem, n, err := decodeValue(data[offset:], fc)
		if err != nil {
			return value.Value{}, 0, fmt.Errorf("list element %d: %w", i, err)
		}

		elems = append(elems, elem)
		offset += n
	}

	return value.NewList(elems), total, nil
}

// encodeDict writes a DICT value following the key-table/values-block
// layout: code, payload length, count, key-block length, end-offset table,
// concatenated key bytes, padding, values-block length, then each value
// padded to 8 bytes.
func encodeDict(buf *pool.ByteBuffer, d *value.Dict, fc FrameCodec, opts EncodeOptions) error {
	n := d.Len()

	putU32(buf, uint32(wire.Dict))
	payloadLenOffset := buf.Len()
	putU32(buf, 0)
	putU32(buf, uint32(n))
	keyLenOffset := buf.Len()
	putU32(buf, 0)

	keyStart := buf.Len()
	offsetTableStart := buf.Len()
	putZeros(buf, 4*n)

	keyBytesStart := buf.Len()
	cumulative := 0
	i := 0
	d.Range(func(key string, _ value.Value) bool {
		putBytes(buf, []byte(key))
		cumulative += len(key)
		patchU32(buf, offsetTableStart+4*i, uint32(cumulative))
		i++

		return true
	})

	keyLen := buf.Len() - keyStart
	patchU32(buf, keyLenOffset, uint32(keyLen))

	padBufferTo8(buf)

	valuesLenOffset := buf.Len()
	putU64(buf, 0)
	valuesStart := buf.Len()

	var encErr error
	d.Range(func(_ string, v value.Value) bool {
		if err := encodeValue(buf, v, fc, opts); err != nil {
			encErr = err
			return false
		}

		return true
	})
	if encErr != nil {
		return encErr
	}

	patchU64(buf, valuesLenOffset, uint64(buf.Len()-valuesStart))
	patchU32(buf, payloadLenOffset, uint32(buf.Len()-(payloadLenOffset+4)))

	_ = keyBytesStart

	return nil
}

// decodeDict decodes a DICT body. data begins at the value's 4-byte code.
func decodeDict(data []byte, fc FrameCodec) (value.Value, int, error) {
	payloadLen, err := readU32(data, 4)
	if err != nil {
		return value.Value{}, 0, err
	}

	count, err := readU32(data, 8)
	if err != nil {
		return value.Value{}, 0, err
	}
	n := int(count)

	keyLen, err := readU32(data, 12)
	if err != nil {
		return value.Value{}, 0, err
	}

	total := 8 + int(payloadLen)
	if err := need(data, 0, total); err != nil {
		return value.Value{}, 0, err
	}

	offsetTableStart := 16
	if err := need(data, offsetTableStart, 4*n); err != nil {
		return value.Value{}, 0, err
	}

	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		o, err := readU32(data, offsetTableStart+4*i)
		if err != nil {
			return value.Value{}, 0, err
		}
		offsets[i] = o
	}

	keyBytesStart := offsetTableStart + 4*n
	keyBytesEnd := offsetTableStart + int(keyLen)
	keyBytes, err := readBytes(data, keyBytesStart, keyBytesEnd-keyBytesStart)
	if err != nil {
		return value.Value{}, 0, err
	}

	d := value.NewDict()
	prevOffset := uint32(0)
	for i := 0; i < n; i++ {
		end := offsets[i]
		if end < prevOffset || int(end) > len(keyBytes) {
			return value.Value{}, 0, fmt.Errorf("%w: key %d end offset %d", jerrs.ErrOffsetNotMonotonic, i, end)
		}

		keyRaw := keyBytes[prevOffset:end]
		if !utf8.Valid(keyRaw) {
			return value.Value{}, 0, fmt.Errorf("%w: key %d", jerrs.ErrInvalidUTF8, i)
		}
		key := string(keyRaw)

		if _, exists := d.Get(key); exists {
			return value.Value{}, 0, fmt.Errorf("%w: %q", jerrs.ErrDuplicateKey, key)
		}

		d.Set(key, value.NewNull()) // placeholder, filled below once values are decoded
		prevOffset = end
	}

	valuesStart := padTo8(offsetTableStart + int(keyLen))

	valuesBlockLen, err := readU64(data, valuesStart)
	if err != nil {
		return value.Value{}, 0, err
	}
	_ = valuesBlockLen

	offset := valuesStart + 8
	keys := append([]string(nil), d.Keys()...)
	for i, key := range keys {
		v, consumed, err := decodeValue(data[offset:], fc)
		if err != nil {
			return value.Value{}, 0, fmt.Errorf("dict value %q: %w", key, err)
		}

		d.Set(key, v)
		offset += consumed
		_ = i
	}

	return value.NewDictValue(d), total, nil
}
