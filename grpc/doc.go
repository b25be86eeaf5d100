// Package aelfgrpc provides the gRPC transport layer for the aelf
// service, using cramberry for deterministic binary serialization.
//
// No protobuf code generation is required. Messages are the structs
// of aelf/types plus the small wrappers in this package, serialized
// directly via cramberry struct tags.
//
// Error mapping:
//
//	*types.DecodeError        in-band DecodeFailure, rebuilt by the client
//	types.ErrMalformedArena   codes.InvalidArgument
//	*aelf.ClosedError         codes.Unavailable
//	context errors            codes.Canceled / codes.DeadlineExceeded
//	anything else             codes.Internal
package aelfgrpc
