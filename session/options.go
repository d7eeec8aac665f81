package session

import (
	"github.com/sirupsen/logrus"

	"github.com/arloliu/jwire/codec"
	"github.com/arloliu/jwire/compress"
	"github.com/arloliu/jwire/internal/options"
	"github.com/arloliu/jwire/value"
)

// DefaultPasswordEnvVar is the environment variable consulted for a
// password when a caller (client) supplies none, per spec.md §6's
// "deployment-chosen name" requirement.
const DefaultPasswordEnvVar = "JWIRE_PASSWORD"

// Evaluator applies a decoded request value and returns the result value
// to send back (for sync requests) or to discard (for async requests).
type Evaluator func(value.Value) (value.Value, error)

type config struct {
	envVar          string
	password        string
	frameCodec      codec.FrameCodec
	compressionAlgo compress.Type
	evaluator       Evaluator
	logger          *logrus.Logger
}

func newConfig() *config {
	return &config{
		envVar:          DefaultPasswordEnvVar,
		compressionAlgo: compress.TypeZstd,
		logger:          noopLogger(),
	}
}

func noopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})

	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// ServerOption configures a Server.
type ServerOption = options.Option[*config]

// ClientOption configures a Client.
type ClientOption = options.Option[*config]

// WithPasswordEnvVar overrides the environment variable consulted for a
// missing password. The default is DefaultPasswordEnvVar.
func WithPasswordEnvVar(name string) ServerOption {
	return options.NoError(func(c *config) { c.envVar = name })
}

// WithPassword sets the shared secret a Server requires from a connecting
// Client, or the secret a Client sends. An empty password (the default)
// means the Server accepts any credential and the Client falls back to
// its configured environment variable.
func WithPassword(password string) ClientOption {
	return options.NoError(func(c *config) { c.password = password })
}

// WithFrameCodec supplies the codec.FrameCodec used to encode and decode
// SERIES/DATAFRAME values exchanged on the session.
func WithFrameCodec(fc codec.FrameCodec) ServerOption {
	return options.NoError(func(c *config) { c.frameCodec = fc })
}

// WithCompressionAlgorithm records a compression algorithm in the session
// config. The session does not read it: frame payloads are compressed with
// the algorithm of the codec given to WithFrameCodec.
func WithCompressionAlgorithm(t compress.Type) ServerOption {
	return options.NoError(func(c *config) { c.compressionAlgo = t })
}

// WithEvaluator supplies the server's request evaluator. A server with no
// evaluator set answers every sync request with an ERR response; async
// requests get no response.
func WithEvaluator(fn Evaluator) ServerOption {
	return options.NoError(func(c *config) { c.evaluator = fn })
}

// WithLogger supplies a *logrus.Logger for structured session logging. The
// default logger discards all output, so logging is entirely opt-in.
func WithLogger(lg *logrus.Logger) ServerOption {
	return options.NoError(func(c *config) {
		if lg != nil {
			c.logger = lg
		}
	})
}
