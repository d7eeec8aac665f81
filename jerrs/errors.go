// Package jerrs defines the sentinel errors returned across the jwire
// module. Callers classify a failure with errors.Is against the category
// sentinels (ErrDecode, ErrAuth, ErrEval, ErrIO, ErrEncode) or against a
// specific sentinel for finer handling; functions wrap a specific sentinel
// with fmt.Errorf("%w: ...") to attach the offending value.
package jerrs

import "errors"

// Category sentinels. Each decode-path and session/auth sentinel below wraps
// exactly one of these, so errors.Is(err, ErrDecode) answers "was this a
// decode problem" without needing to know which specific sentinel fired.
// The value-construction sentinels stand alone and wrap no category.
var (
	// ErrDecode classifies failures while parsing wire bytes into a value.
	ErrDecode = errors.New("jwire: decode error")
	// ErrAuth classifies failures during session handshake/credential exchange.
	ErrAuth = errors.New("jwire: authentication error")
	// ErrEval classifies failures returned by the external evaluator hook.
	ErrEval = errors.New("jwire: evaluation error")
	// ErrIO classifies failures reading or writing the underlying connection.
	ErrIO = errors.New("jwire: i/o error")
	// ErrEncode classifies failures while building wire bytes from a value.
	ErrEncode = errors.New("jwire: encode error")
)

// Decode-path sentinels.
var (
	// ErrUnknownKind is returned when a wire code does not map to any Kind.
	ErrUnknownKind = wrap(ErrDecode, "unknown kind code")
	// ErrTruncatedPayload is returned when fewer bytes remain than a value's
	// declared length requires.
	ErrTruncatedPayload = wrap(ErrDecode, "truncated payload")
	// ErrInvalidUTF8 is returned when a text payload (STRING, CAT, DICT key,
	// ERR, FN, timezone name) is not valid UTF-8.
	ErrInvalidUTF8 = wrap(ErrDecode, "invalid UTF-8 text")
	// ErrDuplicateKey is returned when a DICT's decoded keys are not unique.
	ErrDuplicateKey = wrap(ErrDecode, "duplicate DICT key")
	// ErrUnalignedLength names a declared payload length that is not a
	// multiple of 8. No decoder in this module checks alignment, so none
	// returns it.
	ErrUnalignedLength = wrap(ErrDecode, "length not 8-byte aligned")
	// ErrOffsetNotMonotonic is returned when a DICT's successive key
	// end-offsets decrease or run past the key block (equal offsets, from
	// empty keys, are accepted).
	ErrOffsetNotMonotonic = wrap(ErrDecode, "offset not monotonically increasing")
	// ErrFrameDecode is returned when the injected frame codec fails to
	// parse Arrow-IPC bytes.
	ErrFrameDecode = wrap(ErrDecode, "frame decode failed")
)

// Session/auth sentinels.
var (
	// ErrAuthRejected is returned when the server declines a client's
	// credential.
	ErrAuthRejected = wrap(ErrAuth, "credential rejected")
	// ErrHandshakeFailed is returned when the initial tag/version exchange
	// does not match the expected protocol preamble.
	ErrHandshakeFailed = wrap(ErrAuth, "handshake failed")
	// ErrSessionClosed names an operation on a torn-down session. The
	// session package does not return it: calls after Close fail with the
	// underlying connection's error.
	ErrSessionClosed = wrap(ErrIO, "session closed")
)

// Value-construction sentinels (codec/value packages).
var (
	// ErrUnsupportedKind is returned when an operation is attempted against
	// a Kind it does not support (e.g. a non-frame value handed to the frame
	// encoder).
	ErrUnsupportedKind = errors.New("jwire: unsupported kind for operation")
	// ErrNilFrameCodec is returned when SERIES/DATAFRAME encode or decode is
	// attempted without a configured codec.FrameCodec.
	ErrNilFrameCodec = errors.New("jwire: no frame codec configured")
)

func wrap(category error, msg string) error {
	return &sentinel{category: category, msg: msg}
}

// sentinel is a leaf error that reports a fixed message and unwraps to its
// category, so errors.Is works against both the specific sentinel and its
// category in one call chain.
type sentinel struct {
	category error
	msg      string
}

func (s *sentinel) Error() string { return "jwire: " + s.msg }

func (s *sentinel) Unwrap() error { return s.category }
