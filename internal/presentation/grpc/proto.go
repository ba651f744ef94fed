package grpc

// proto.go defines the gRPC server interface derived from churnwatch/risk/v1/risk.proto.
// This file serves as a stand-in for buf-generated code. Once `buf generate` is run,
// replace this file with the import from github.com/churnwatch/risk-service/api/gen/go/churnwatch/risk/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	ScoreCustomer(context.Context, *ScoreCustomerRequest) (*ScoreCustomerResponse, error)
	GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error)
	ReloadModel(context.Context, *ReloadModelRequest) (*ReloadModelResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) ScoreCustomer(context.Context, *ScoreCustomerRequest) (*ScoreCustomerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreCustomer not implemented")
}
func (UnimplementedRiskServiceServer) GetModelInfo(context.Context, *GetModelInfoRequest) (*GetModelInfoResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetModelInfo not implemented")
}
func (UnimplementedRiskServiceServer) ReloadModel(context.Context, *ReloadModelRequest) (*ReloadModelResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReloadModel not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s *grpclib.Server, srv RiskServiceServer) {
	s.RegisterService(&_RiskService_serviceDesc, srv)
}

var _RiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "churnwatch.risk.v1.RiskService",
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreCustomer", Handler: _RiskService_ScoreCustomer_Handler},
		{MethodName: "GetModelInfo", Handler: _RiskService_GetModelInfo_Handler},
		{MethodName: "ReloadModel", Handler: _RiskService_ReloadModel_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _RiskService_ScoreCustomer_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreCustomerRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ScoreCustomer(ctx, req)
}

func _RiskService_GetModelInfo_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetModelInfoRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).GetModelInfo(ctx, req)
}

func _RiskService_ReloadModel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ReloadModelRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskServiceServer).ReloadModel(ctx, req)
}
