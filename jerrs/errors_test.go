package jerrs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels_UnwrapToCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
	}{
		{"unknown kind", ErrUnknownKind, ErrDecode},
		{"truncated payload", ErrTruncatedPayload, ErrDecode},
		{"invalid utf8", ErrInvalidUTF8, ErrDecode},
		{"duplicate key", ErrDuplicateKey, ErrDecode},
		{"unaligned length", ErrUnalignedLength, ErrDecode},
		{"offset not monotonic", ErrOffsetNotMonotonic, ErrDecode},
		{"frame decode", ErrFrameDecode, ErrDecode},
		{"auth rejected", ErrAuthRejected, ErrAuth},
		{"handshake failed", ErrHandshakeFailed, ErrAuth},
		{"session closed", ErrSessionClosed, ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.category)
		})
	}
}

func TestWrappedSentinel_PreservesClassification(t *testing.T) {
	wrapped := fmt.Errorf("%w: code %d", ErrUnknownKind, 12)

	assert.ErrorIs(t, wrapped, ErrUnknownKind)
	assert.ErrorIs(t, wrapped, ErrDecode)
	assert.NotErrorIs(t, wrapped, ErrAuth)
}

func TestCategorySentinels_AreDistinct(t *testing.T) {
	categories := []error{ErrDecode, ErrAuth, ErrEval, ErrIO, ErrEncode}
	for i, a := range categories {
		for j, b := range categories {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not be %v", a, b)
		}
	}
}
