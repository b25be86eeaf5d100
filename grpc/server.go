package aelfgrpc

import (
	"context"
	"errors"
	"net"

	"github.com/blockberries/aelf"
	"github.com/blockberries/aelf/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface check.
var _ AELFServiceServer = (*GRPCServer)(nil)

// GRPCServer exposes an aelf.Service over gRPC. Domain types are
// serialized directly via cramberry.
//
// Decode failures travel in the response body so that the client can
// rebuild the typed error. Every other error becomes a gRPC status.
type GRPCServer struct {
	svc aelf.Service
}

// NewGRPCServer creates a gRPC server wrapping the given service,
// usually a *server.Server.
func NewGRPCServer(svc aelf.Service) *GRPCServer {
	return &GRPCServer{svc: svc}
}

// Register adds the aelf service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterAELFServiceServer(gs, s)
}

// Serve starts the gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// Service returns the wrapped service.
func (s *GRPCServer) Service() aelf.Service {
	return s.svc
}

func (s *GRPCServer) DecodeAddress(ctx context.Context, req *DecodeRequest) (*AddressResponse, error) {
	addr, err := s.svc.DecodeAddress(ctx, req.Text)
	if f := failureFrom(err); f != nil {
		return &AddressResponse{Failure: f}, nil
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return &AddressResponse{Address: addr}, nil
}

func (s *GRPCServer) EncodeAddress(ctx context.Context, addr *types.Address) (*TextResponse, error) {
	text, err := s.svc.EncodeAddress(ctx, *addr)
	if err != nil {
		return nil, toStatus(err)
	}
	return &TextResponse{Text: text}, nil
}

func (s *GRPCServer) DecodeHash(ctx context.Context, req *DecodeRequest) (*HashResponse, error) {
	h, err := s.svc.DecodeHash(ctx, req.Text)
	if f := failureFrom(err); f != nil {
		return &HashResponse{Failure: f}, nil
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return &HashResponse{Hash: h}, nil
}

func (s *GRPCServer) EncodeHash(ctx context.Context, h *types.Hash) (*TextResponse, error) {
	text, err := s.svc.EncodeHash(ctx, *h)
	if err != nil {
		return nil, toStatus(err)
	}
	return &TextResponse{Text: text}, nil
}

func (s *GRPCServer) AnalyzeTrace(ctx context.Context, arena *types.TraceArena) (*types.TraceSummary, error) {
	summary, err := s.svc.AnalyzeTrace(ctx, *arena)
	if err != nil {
		return nil, toStatus(err)
	}
	return &summary, nil
}

// toStatus maps service errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, types.ErrMalformedArena):
		return status.Error(codes.InvalidArgument, err.Error())
	case aelf.IsClosed(err):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
