package arbiter

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/louisbranch/signalyard/internal/command"
	platformgrpc "github.com/louisbranch/signalyard/internal/platform/grpc"
)

func withBearer(ctx context.Context, grant string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", bearerPrefix+grant)
}

// Client is a dispatch client for one arbiter. It speaks the raw frame
// codec; callers hand it typed payloads and get back decoded results.
type Client struct {
	conn  *grpc.ClientConn
	grant string
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithGrant attaches a join grant to every dispatch call.
func WithGrant(grant string) ClientOption {
	return func(c *Client) { c.grant = grant }
}

// DialClient connects to an arbiter and waits for its health check.
func DialClient(ctx context.Context, addr string, opts ...ClientOption) (*Client, error) {
	conn, err := platformgrpc.DialWithHealth(ctx, addr, 5*time.Second, nil,
		platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("dial arbiter: %w", err)
	}
	c := &Client{conn: conn}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Submit encodes one command frame, runs it through the full test/execute
// protocol on the arbiter, and returns the decoded result.
func (c *Client) Submit(ctx context.Context, id command.ID, tile command.TileIndex, p command.Payload) (Result, error) {
	return c.call(ctx, "Submit", id, tile, p)
}

// Estimate runs the dry-run phase only.
func (c *Client) Estimate(ctx context.Context, id command.ID, tile command.TileIndex, p command.Payload) (Result, error) {
	return c.call(ctx, "Estimate", id, tile, p)
}

func (c *Client) call(ctx context.Context, method string, id command.ID, tile command.TileIndex, p command.Payload) (Result, error) {
	raw, err := (command.Frame{ID: id, Tile: tile, Payload: p}).EncodeBytes()
	if err != nil {
		return Result{}, err
	}
	if c.grant != "" {
		ctx = withBearer(ctx, c.grant)
	}
	in := RawMessage(raw)
	out := new(RawMessage)
	err = c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, &in, out,
		grpc.CallContentSubtype(CodecName))
	if err != nil {
		return Result{}, err
	}
	return DecodeResult([]byte(*out))
}
