// Package session implements the handshake, credential exchange, and
// request/response loop of spec.md §4.8 over a stream socket.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/jwire/codec"
	"github.com/arloliu/jwire/internal/options"
	"github.com/arloliu/jwire/jerrs"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wireframe"
)

// Server accepts connections and runs the per-connection request/response
// state machine from spec.md §4.8 against a single Evaluator.
type Server struct {
	cfg      *config
	listener net.Listener
}

// NewServer wraps an already-listening net.Listener. Callers choose the
// listener (net.Listen("tcp", addr), tls.Listen, or any other
// net.Listener) so Server stays transport-agnostic, thin over net.Listener.
func NewServer(listener net.Listener, opts ...ServerOption) (*Server, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Server{cfg: cfg, listener: listener}, nil
}

// Serve runs the accept loop until ctx is cancelled or the listener
// returns a non-temporary error. Cancelling ctx closes the listener and
// every accepted connection, which unblocks any read in progress (spec.md
// §5's cancellation requirement).
func (s *Server) Serve(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			s.listener.Close()
		case <-done:
		}
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}

			return err
		}

		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	log := s.cfg.logger.WithField("remote", conn.RemoteAddr())
	log.Debug("connection accepted")

	if err := s.authenticate(conn); err != nil {
		log.WithError(err).Debug("handshake rejected")
		return
	}

	local := isLocalAddr(conn.RemoteAddr().String())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.serveOne(conn, local, log); err != nil {
			if !errors.Is(err, io.EOF) {
				log.WithError(err).Debug("connection closed")
			}

			return
		}
	}
}

func (s *Server) authenticate(conn net.Conn) error {
	credential, err := readCredential(conn)
	if err != nil {
		conn.Write([]byte{0})
		return err
	}

	_, password := splitCredential(credential)
	if s.cfg.password != "" && password != s.cfg.password {
		conn.Write([]byte{0})
		return jerrs.ErrAuthRejected
	}

	_, err = conn.Write([]byte{protocolVersion})
	return err
}

// serveOne reads and dispatches exactly one request, per the READY →
// READ_HEADER → READ_PAYLOAD → DISPATCH state in spec.md §4.8.
func (s *Server) serveOne(conn net.Conn, local bool, log *logrus.Entry) error {
	header, err := wireframe.ReadHeader(conn)
	if err != nil {
		return err
	}

	payload := make([]byte, header.PayloadLength)
	if _, err := io.ReadFull(conn, payload); err != nil {
		return fmt.Errorf("%w: reading payload: %w", jerrs.ErrIO, err)
	}

	req, _, err := codec.Decode(payload, codec.WithDecodeFrameCodec(s.cfg.frameCodec))
	if err != nil {
		if header.Kind == wireframe.SyncRequest {
			return s.writeResponse(conn, value.NewErr(err.Error()), local)
		}

		log.WithError(err).Debug("async request decode failed")

		return nil
	}

	result, evalErr := s.evaluate(req)

	if header.Kind != wireframe.SyncRequest {
		if evalErr != nil {
			log.WithError(evalErr).Debug("async request evaluation failed")
		}

		return nil
	}

	if evalErr != nil {
		result = value.NewErr(evalErr.Error())
	}

	return s.writeResponse(conn, result, local)
}

func (s *Server) evaluate(req value.Value) (value.Value, error) {
	if s.cfg.evaluator == nil {
		return value.Value{}, fmt.Errorf("%w: no evaluator configured", jerrs.ErrEval)
	}

	return s.cfg.evaluator(req)
}

func (s *Server) writeResponse(conn net.Conn, v value.Value, local bool) error {
	compressed := shouldCompress(v, s.cfg.frameCodec, local)

	payload, err := codec.Encode(v,
		codec.WithFrameCodec(s.cfg.frameCodec),
		codec.WithFrameCompression(compressed),
	)
	if err != nil {
		return fmt.Errorf("%w: encoding response: %w", jerrs.ErrEncode, err)
	}

	header := wireframe.Header{Kind: wireframe.Response, PayloadLength: uint32(len(payload))}
	if err := wireframe.WriteHeader(conn, header); err != nil {
		return fmt.Errorf("%w: writing response header: %w", jerrs.ErrIO, err)
	}

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("%w: writing response payload: %w", jerrs.ErrIO, err)
	}

	return nil
}
