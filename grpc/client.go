package aelfgrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/server"
	"github.com/blockberries/aelf/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface check.
var _ aelf.Connection = (*Client)(nil)

// Client implements aelf.Connection for a remote service over gRPC
// using cramberry serialization. No protobuf types or conversion
// layer required.
type Client struct {
	cc    *grpc.ClientConn
	guard *server.LifecycleGuard
}

// Dial connects to a remote aelf service.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("aelf client: dial %s: %w", addr, err)
	}
	return &Client{
		cc:    cc,
		guard: server.NewLifecycleGuard(),
	}, nil
}

// Close waits for in-flight calls and closes the underlying
// connection. It is safe to call more than once.
func (c *Client) Close() error {
	if !c.guard.Close() {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	if err := c.guard.Enter(method); err != nil {
		return err
	}
	defer c.guard.Leave()

	if err := c.cc.Invoke(ctx, fullMethod(method), req, resp); err != nil {
		return fromStatus(method, err)
	}
	return nil
}

func (c *Client) DecodeAddress(ctx context.Context, text string) (types.Address, error) {
	resp := new(AddressResponse)
	if err := c.invoke(ctx, "DecodeAddress", &DecodeRequest{Text: text}, resp); err != nil {
		return types.Address{}, err
	}
	if resp.Failure != nil {
		return types.Address{}, resp.Failure.Err()
	}
	return resp.Address, nil
}

func (c *Client) EncodeAddress(ctx context.Context, addr types.Address) (string, error) {
	resp := new(TextResponse)
	if err := c.invoke(ctx, "EncodeAddress", &addr, resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) DecodeHash(ctx context.Context, text string) (types.Hash, error) {
	resp := new(HashResponse)
	if err := c.invoke(ctx, "DecodeHash", &DecodeRequest{Text: text}, resp); err != nil {
		return types.Hash{}, err
	}
	if resp.Failure != nil {
		return types.Hash{}, resp.Failure.Err()
	}
	return resp.Hash, nil
}

func (c *Client) EncodeHash(ctx context.Context, h types.Hash) (string, error) {
	resp := new(TextResponse)
	if err := c.invoke(ctx, "EncodeHash", &h, resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) AnalyzeTrace(ctx context.Context, arena types.TraceArena) (types.TraceSummary, error) {
	resp := new(types.TraceSummary)
	if err := c.invoke(ctx, "AnalyzeTrace", &arena, resp); err != nil {
		return types.TraceSummary{}, err
	}
	return *resp, nil
}

// RemoteError is a gRPC status received from the service. It matches
// the local error the status code stands for, so
// errors.Is(err, types.ErrMalformedArena) and aelf.IsClosed(err) work
// across the transport.
type RemoteError struct {
	method string
	st     *status.Status
	target error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("aelf remote: %s: %s", e.st.Code(), e.st.Message())
}

// GRPCStatus lets status.FromError recover the original status.
func (e *RemoteError) GRPCStatus() *status.Status { return e.st }

// Code returns the gRPC status code.
func (e *RemoteError) Code() codes.Code { return e.st.Code() }

func (e *RemoteError) Is(target error) bool {
	return e.target != nil && e.target == target
}

// As reports an Unavailable status as a *aelf.ClosedError for the
// method that was called, since that is what the server sends once it
// has been closed.
func (e *RemoteError) As(target any) bool {
	closed, ok := target.(**aelf.ClosedError)
	if !ok || e.st.Code() != codes.Unavailable {
		return false
	}
	*closed = aelf.NewClosedError(e.method)
	return true
}

func fromStatus(method string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	re := &RemoteError{method: method, st: st}
	switch st.Code() {
	case codes.InvalidArgument:
		re.target = types.ErrMalformedArena
	case codes.Canceled:
		re.target = context.Canceled
	case codes.DeadlineExceeded:
		re.target = context.DeadlineExceeded
	}
	return re
}
