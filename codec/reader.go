package codec

import (
	"fmt"

	"github.com/arloliu/jwire/jerrs"
)

// need verifies that n bytes are available starting at off, returning a
// wrapped jerrs.ErrTruncatedPayload otherwise. Every decode path checks a
// length field against the remaining buffer before it is used, so the
// codec never panics on untrusted input.
func need(data []byte, off, n int) error {
	if off < 0 || n < 0 || off+n > len(data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", jerrs.ErrTruncatedPayload, n, off, len(data))
	}

	return nil
}

func readU32(data []byte, off int) (uint32, error) {
	if err := need(data, off, 4); err != nil {
		return 0, err
	}

	return engine.Uint32(data[off : off+4]), nil
}

func readI64(data []byte, off int) (int64, error) {
	u, err := readU64(data, off)
	return int64(u), err
}

func readU64(data []byte, off int) (uint64, error) {
	if err := need(data, off, 8); err != nil {
		return 0, err
	}

	return engine.Uint64(data[off : off+8]), nil
}

func readF64(data []byte, off int) (float64, error) {
	u, err := readU64(data, off)
	return bitsToFloat64(u), err
}

func readBytes(data []byte, off, n int) ([]byte, error) {
	if err := need(data, off, n); err != nil {
		return nil, err
	}

	return data[off : off+n], nil
}
