// Package proto describes the evaluator gRPC service. Requests and responses
// travel as google.protobuf.Struct values holding the JSON form of the
// analysis DTOs, so the service needs no generated message types.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	Evaluator_ServiceName                = "combgame.evaluator.v1.Evaluator"
	Evaluator_Compare_FullMethodName     = "/combgame.evaluator.v1.Evaluator/Compare"
	Evaluator_Grundy_FullMethodName      = "/combgame.evaluator.v1.Evaluator/Grundy"
	Evaluator_Domineering_FullMethodName = "/combgame.evaluator.v1.Evaluator/Domineering"
)

// EvaluatorClient is the client API for the Evaluator service.
type EvaluatorClient interface {
	Compare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Grundy(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Domineering(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type evaluatorClient struct {
	cc grpc.ClientConnInterface
}

func NewEvaluatorClient(cc grpc.ClientConnInterface) EvaluatorClient {
	return &evaluatorClient{cc}
}

func (c *evaluatorClient) Compare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, Evaluator_Compare_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *evaluatorClient) Grundy(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, Evaluator_Grundy_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *evaluatorClient) Domineering(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, Evaluator_Domineering_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EvaluatorServer is the server API for the Evaluator service.
// Implementations should embed UnimplementedEvaluatorServer.
type EvaluatorServer interface {
	Compare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Grundy(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Domineering(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedEvaluatorServer()
}

type UnimplementedEvaluatorServer struct{}

func (UnimplementedEvaluatorServer) Compare(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Compare not implemented")
}

func (UnimplementedEvaluatorServer) Grundy(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Grundy not implemented")
}

func (UnimplementedEvaluatorServer) Domineering(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Domineering not implemented")
}

func (UnimplementedEvaluatorServer) mustEmbedUnimplementedEvaluatorServer() {}

func RegisterEvaluatorServer(s grpc.ServiceRegistrar, srv EvaluatorServer) {
	s.RegisterService(&Evaluator_ServiceDesc, srv)
}

func _Evaluator_Compare_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Compare(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Evaluator_Compare_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Compare(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Evaluator_Grundy_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Grundy(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Evaluator_Grundy_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Grundy(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Evaluator_Domineering_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Domineering(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Evaluator_Domineering_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Domineering(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var Evaluator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Evaluator_ServiceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Compare",
			Handler:    _Evaluator_Compare_Handler,
		},
		{
			MethodName: "Grundy",
			Handler:    _Evaluator_Grundy_Handler,
		},
		{
			MethodName: "Domineering",
			Handler:    _Evaluator_Domineering_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "evaluator.proto",
}
