package aelfgrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/aelf/types"

	"google.golang.org/grpc"
)

const serviceName = "github.com/blockberries/aelf.v1.AELFService"

// AELFServiceServer is the server-side interface for the aelf gRPC service.
type AELFServiceServer interface {
	DecodeAddress(context.Context, *DecodeRequest) (*AddressResponse, error)
	EncodeAddress(context.Context, *types.Address) (*TextResponse, error)
	DecodeHash(context.Context, *DecodeRequest) (*HashResponse, error)
	EncodeHash(context.Context, *types.Hash) (*TextResponse, error)
	AnalyzeTrace(context.Context, *types.TraceArena) (*types.TraceSummary, error)
}

// RegisterAELFServiceServer registers the AELFServiceServer on a gRPC server.
func RegisterAELFServiceServer(s *grpc.Server, srv AELFServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerDecodeAddress(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(DecodeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AELFServiceServer).DecodeAddress(ctx, req)
}

func handlerEncodeAddress(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.Address)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AELFServiceServer).EncodeAddress(ctx, req)
}

func handlerDecodeHash(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(DecodeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AELFServiceServer).DecodeHash(ctx, req)
}

func handlerEncodeHash(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.Hash)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AELFServiceServer).EncodeHash(ctx, req)
}

func handlerAnalyzeTrace(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.TraceArena)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(AELFServiceServer).AnalyzeTrace(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for aelf.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AELFServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "DecodeAddress", Handler: handlerDecodeAddress},
		{MethodName: "EncodeAddress", Handler: handlerEncodeAddress},
		{MethodName: "DecodeHash", Handler: handlerDecodeHash},
		{MethodName: "EncodeHash", Handler: handlerEncodeHash},
		{MethodName: "AnalyzeTrace", Handler: handlerAnalyzeTrace},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "github.com/blockberries/aelf/v1/service.cram",
}
