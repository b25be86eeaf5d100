// Package local provides a zero-copy, in-process aelf connection.
//
// For pipelines compiled into the same binary as the codec and the
// aggregator, this adapter wraps the server with lifecycle
// enforcement, logging and metrics, with no serialization overhead.
package local

import (
	"context"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/server"
	"github.com/blockberries/aelf/types"
)

// Compile-time interface check.
var _ aelf.Connection = (*Connection)(nil)

// Connection wraps a server.Server as an aelf.Connection.
type Connection struct {
	srv *server.Server
}

// NewConnection creates an in-process connection backed by a new
// server configured with opts.
func NewConnection(opts ...server.Option) (*Connection, error) {
	srv, err := server.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Connection{srv: srv}, nil
}

func (c *Connection) DecodeAddress(ctx context.Context, text string) (types.Address, error) {
	return c.srv.DecodeAddress(ctx, text)
}

func (c *Connection) EncodeAddress(ctx context.Context, addr types.Address) (string, error) {
	return c.srv.EncodeAddress(ctx, addr)
}

func (c *Connection) DecodeHash(ctx context.Context, text string) (types.Hash, error) {
	return c.srv.DecodeHash(ctx, text)
}

func (c *Connection) EncodeHash(ctx context.Context, h types.Hash) (string, error) {
	return c.srv.EncodeHash(ctx, h)
}

func (c *Connection) AnalyzeTrace(ctx context.Context, arena types.TraceArena) (types.TraceSummary, error) {
	return c.srv.AnalyzeTrace(ctx, arena)
}

func (c *Connection) Close() error { return c.srv.Close() }

// Server returns the underlying server for advanced use cases.
func (c *Connection) Server() *server.Server {
	return c.srv
}
