package session

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"github.com/arloliu/jwire/endian"
	"github.com/arloliu/jwire/jerrs"
)

// handshakeTag is the literal 4-byte tag the client sends before its
// credential, per spec.md §4.8 step 1.
const handshakeTag = "jsm:"

// protocolVersion is the nonzero byte the server writes to accept a
// connection; spec.md §4.8 step 2 calls this "names the protocol version".
const protocolVersion = 1

var engine = endian.GetLittleEndianEngine()

// defaultUser returns the local login name, falling back to "unknown" per
// spec.md §6.
func defaultUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}

	return u.Username
}

// resolveCredential builds the "<user>:<password>" credential a client
// sends during the handshake. An empty password falls back to envVar,
// then to the empty string.
func resolveCredential(userName, password, envVar string) string {
	if userName == "" {
		userName = defaultUser()
	}
	if password == "" {
		password = os.Getenv(envVar)
	}

	return userName + ":" + password
}

// writeCredential writes the client's handshake tag, credential length,
// and credential bytes to w.
func writeCredential(w io.Writer, credential string) error {
	if _, err := w.Write([]byte(handshakeTag)); err != nil {
		return err
	}

	lenBuf := make([]byte, 4)
	engine.PutUint32(lenBuf, uint32(len(credential)))
	if _, err := w.Write(lenBuf); err != nil {
		return err
	}

	_, err := w.Write([]byte(credential))
	return err
}

// readCredential reads the handshake tag, credential length, and
// credential bytes from r.
func readCredential(r io.Reader) (string, error) {
	tag := make([]byte, len(handshakeTag))
	if _, err := io.ReadFull(r, tag); err != nil {
		return "", fmt.Errorf("%w: reading handshake tag: %w", jerrs.ErrHandshakeFailed, err)
	}
	if string(tag) != handshakeTag {
		return "", fmt.Errorf("%w: unexpected handshake tag %q", jerrs.ErrHandshakeFailed, tag)
	}

	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return "", fmt.Errorf("%w: reading credential length: %w", jerrs.ErrHandshakeFailed, err)
	}
	credLen := engine.Uint32(lenBuf)

	credBuf := make([]byte, credLen)
	if _, err := io.ReadFull(r, credBuf); err != nil {
		return "", fmt.Errorf("%w: reading credential: %w", jerrs.ErrHandshakeFailed, err)
	}

	return string(credBuf), nil
}

// splitCredential parses a "user:password" credential. A missing ':'
// yields an empty password, matching spec.md §6's default.
func splitCredential(credential string) (userName, password string) {
	userName, password, _ = strings.Cut(credential, ":")
	return userName, password
}

// isLocalAddr reports whether addr (a net.Conn RemoteAddr().String())
// names a local peer per spec.md §6's localhost policy.
func isLocalAddr(addr string) bool {
	host := addr
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		host = addr[:i]
	}
	host = strings.Trim(host, "[]")

	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}
