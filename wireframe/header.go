// Package wireframe implements the 8-byte message header that precedes
// every request and response payload on a session connection, per
// spec.md §4.7.
package wireframe

import (
	"io"

	"github.com/arloliu/jwire/endian"
	"github.com/arloliu/jwire/jerrs"
)

// Kind identifies what a framed message carries.
type Kind uint8

const (
	// AsyncRequest is a client request with no expected response.
	AsyncRequest Kind = 0
	// SyncRequest is a client request awaiting a Response.
	SyncRequest Kind = 1
	// Response carries the server's reply to a SyncRequest.
	Response Kind = 2
)

// littleEndianMarker is the only value byte 0 of a Header may hold; the
// wire format has no provision for big-endian payloads.
const littleEndianMarker = 0x01

// HeaderSize is the fixed byte length of a Header.
const HeaderSize = 8

var engine = endian.GetLittleEndianEngine()

// Header is the fixed 8-byte prefix of every framed message: an endian
// marker, a message Kind, two reserved bytes, and the payload length.
type Header struct {
	Kind          Kind
	PayloadLength uint32
}

// Bytes serializes h into a new HeaderSize-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	b[0] = littleEndianMarker
	b[1] = byte(h.Kind)
	engine.PutUint32(b[4:8], h.PayloadLength)

	return b
}

// Parse decodes a Header from exactly HeaderSize bytes.
func Parse(data []byte) (Header, error) {
	if len(data) != HeaderSize {
		return Header{}, jerrs.ErrTruncatedPayload
	}
	if data[0] != littleEndianMarker {
		return Header{}, jerrs.ErrDecode
	}

	return Header{
		Kind:          Kind(data[1]),
		PayloadLength: engine.Uint32(data[4:8]),
	}, nil
}

// WriteHeader writes h to w.
func WriteHeader(w io.Writer, h Header) error {
	_, err := w.Write(h.Bytes())
	return err
}

// ReadHeader reads and parses a Header from r. A short read, whether at
// the very first byte or part way through the header, is returned as a
// bare io.EOF so callers can treat it as a clean disconnect (spec.md
// §4.8's "partial reads on a closed socket yield a clean disconnected
// signal"); other read errors are returned as they are.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)

	_, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, io.EOF
		}

		return Header{}, err
	}

	return Parse(buf)
}
