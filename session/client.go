package session

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/arloliu/jwire/codec"
	"github.com/arloliu/jwire/internal/options"
	"github.com/arloliu/jwire/jerrs"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wireframe"
)

// Client drives the client side of spec.md §4.8's handshake and
// request/response loop over a single connection. A Client serves one
// in-flight request at a time; concurrent callers must serialize their
// own access (spec.md §5's "must not interleave").
type Client struct {
	cfg  *config
	conn net.Conn
}

// Dial opens addr, performs the handshake, and returns a ready Client.
func Dial(ctx context.Context, network, addr string, opts ...ClientOption) (*Client, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %w", jerrs.ErrIO, addr, err)
	}

	c := &Client{cfg: cfg, conn: conn}
	if err := c.handshake(); err != nil {
		conn.Close()
		return nil, err
	}

	return c, nil
}

func (c *Client) handshake() error {
	credential := resolveCredential("", c.cfg.password, c.cfg.envVar)
	if err := writeCredential(c.conn, credential); err != nil {
		return fmt.Errorf("%w: writing credential: %w", jerrs.ErrIO, err)
	}

	resp := make([]byte, 1)
	if _, err := io.ReadFull(c.conn, resp); err != nil {
		return fmt.Errorf("%w: reading credential response: %w", jerrs.ErrHandshakeFailed, err)
	}
	if resp[0] == 0 {
		return jerrs.ErrAuthRejected
	}

	return nil
}

// Call sends req as a sync request and blocks until the decoded response
// is available.
func (c *Client) Call(req value.Value) (value.Value, error) {
	if err := c.send(req, wireframe.SyncRequest); err != nil {
		return value.Value{}, err
	}

	header, err := wireframe.ReadHeader(c.conn)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: reading response header: %w", jerrs.ErrIO, err)
	}

	payload := make([]byte, header.PayloadLength)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return value.Value{}, fmt.Errorf("%w: reading response payload: %w", jerrs.ErrIO, err)
	}

	resp, _, err := codec.Decode(payload, codec.WithDecodeFrameCodec(c.cfg.frameCodec))
	if err != nil {
		return value.Value{}, err
	}

	if msg, isErr := resp.Err(); isErr {
		return value.Value{}, fmt.Errorf("%w: %s", jerrs.ErrEval, msg)
	}

	return resp, nil
}

// Send issues req as an async request (no response expected) and returns
// once the payload has been flushed.
func (c *Client) Send(req value.Value) error {
	return c.send(req, wireframe.AsyncRequest)
}

func (c *Client) send(v value.Value, kind wireframe.Kind) error {
	local := isLocalAddr(c.conn.RemoteAddr().String())
	compressed := shouldCompress(v, c.cfg.frameCodec, local)

	payload, err := codec.Encode(v,
		codec.WithFrameCodec(c.cfg.frameCodec),
		codec.WithFrameCompression(compressed),
	)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %w", jerrs.ErrEncode, err)
	}

	header := wireframe.Header{Kind: kind, PayloadLength: uint32(len(payload))}
	if err := wireframe.WriteHeader(c.conn, header); err != nil {
		return fmt.Errorf("%w: writing request header: %w", jerrs.ErrIO, err)
	}

	if _, err := c.conn.Write(payload); err != nil {
		return fmt.Errorf("%w: writing request payload: %w", jerrs.ErrIO, err)
	}

	return nil
}

// Close terminates the session (spec.md §4.8 step 5's teardown).
func (c *Client) Close() error {
	return c.conn.Close()
}
