package wireframe

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	tests := []Header{
		{Kind: AsyncRequest, PayloadLength: 0},
		{Kind: SyncRequest, PayloadLength: 8},
		{Kind: Response, PayloadLength: 1 << 20},
	}

	for _, h := range tests {
		b := h.Bytes()
		assert.Len(t, b, HeaderSize)

		parsed, err := Parse(b)
		require.NoError(t, err)
		assert.Equal(t, h, parsed)
	}
}

func TestParse_RejectsWrongLength(t *testing.T) {
	_, err := Parse(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestParse_RejectsBadEndianMarker(t *testing.T) {
	b := Header{Kind: SyncRequest, PayloadLength: 4}.Bytes()
	b[0] = 0x00

	_, err := Parse(b)
	require.Error(t, err)
}

func TestWriteHeader_ReadHeader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	h := Header{Kind: SyncRequest, PayloadLength: 42}

	require.NoError(t, WriteHeader(&buf, h))

	got, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestReadHeader_CleanDisconnectOnEOF(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadHeader_CleanDisconnectOnPartialRead(t *testing.T) {
	// A peer that closes mid-header yields ErrUnexpectedEOF from
	// io.ReadFull; ReadHeader normalizes this to a plain io.EOF so callers
	// can treat it the same as a clean disconnect.
	partial := Header{Kind: Response, PayloadLength: 7}.Bytes()[:3]

	_, err := ReadHeader(bytes.NewReader(partial))
	require.ErrorIs(t, err, io.EOF)
}

type errReader struct{ err error }

func (r errReader) Read(_ []byte) (int, error) { return 0, r.err }

func TestReadHeader_PropagatesOtherErrors(t *testing.T) {
	boom := errReader{err: assert.AnError}

	_, err := ReadHeader(boom)
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}
