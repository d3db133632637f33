package grpc

// Service descriptor for agrisure.fraud.v1.FraudService. Messages are plain
// structs carried by the json codec registered in json_codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "agrisure.fraud.v1.FraudService"

// FraudServiceServer is the server API for FraudService.
type FraudServiceServer interface {
	AssessClaim(context.Context, *AssessClaimRequest) (*AssessClaimResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	ListFarmerAssessments(context.Context, *ListFarmerAssessmentsRequest) (*ListFarmerAssessmentsResponse, error)
	mustEmbedUnimplementedFraudServiceServer()
}

// UnimplementedFraudServiceServer provides forward-compatible default implementations.
type UnimplementedFraudServiceServer struct{}

func (UnimplementedFraudServiceServer) AssessClaim(context.Context, *AssessClaimRequest) (*AssessClaimResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessClaim not implemented")
}
func (UnimplementedFraudServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedFraudServiceServer) ListFarmerAssessments(context.Context, *ListFarmerAssessmentsRequest) (*ListFarmerAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListFarmerAssessments not implemented")
}
func (UnimplementedFraudServiceServer) mustEmbedUnimplementedFraudServiceServer() {}

// RegisterFraudServiceServer registers the FraudServiceServer with the gRPC server.
func RegisterFraudServiceServer(s grpclib.ServiceRegistrar, srv FraudServiceServer) {
	s.RegisterService(&fraudServiceDesc, srv)
}

var fraudServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FraudServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessClaim", Handler: assessClaimHandler},
		{MethodName: "GetAssessment", Handler: getAssessmentHandler},
		{MethodName: "ListFarmerAssessments", Handler: listFarmerAssessmentsHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

func unary[Req any, Resp any](method string, call func(FraudServiceServer, context.Context, *Req) (*Resp, error)) grpclib.MethodHandler {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FraudServiceServer), ctx, req)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(FraudServiceServer), ctx, req.(*Req))
		})
	}
}

var (
	assessClaimHandler           = unary("AssessClaim", FraudServiceServer.AssessClaim)
	getAssessmentHandler         = unary("GetAssessment", FraudServiceServer.GetAssessment)
	listFarmerAssessmentsHandler = unary("ListFarmerAssessments", FraudServiceServer.ListFarmerAssessments)
)
