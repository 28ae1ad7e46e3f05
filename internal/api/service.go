package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "tokenvote.v1.VoteService"

const (
	VoteService_StartSession_FullMethodName   = "/tokenvote.v1.VoteService/StartSession"
	VoteService_ListCandidates_FullMethodName = "/tokenvote.v1.VoteService/ListCandidates"
	VoteService_Verify_FullMethodName         = "/tokenvote.v1.VoteService/Verify"
	VoteService_Redeem_FullMethodName         = "/tokenvote.v1.VoteService/Redeem"
	VoteService_IssueTokens_FullMethodName    = "/tokenvote.v1.VoteService/IssueTokens"
	VoteService_Stats_FullMethodName          = "/tokenvote.v1.VoteService/Stats"
	VoteService_ExportResults_FullMethodName  = "/tokenvote.v1.VoteService/ExportResults"
	VoteService_GenerateKeys_FullMethodName   = "/tokenvote.v1.VoteService/GenerateKeys"
	VoteService_PublicKey_FullMethodName      = "/tokenvote.v1.VoteService/PublicKey"
)

// VoteServiceServer is implemented by the server. Embed
// UnimplementedVoteServiceServer for forward compatibility.
type VoteServiceServer interface {
	StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error)
	ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error)
	Verify(context.Context, *VerifyRequest) (*VerifyResponse, error)
	Redeem(context.Context, *RedeemRequest) (*RedeemResponse, error)
	IssueTokens(context.Context, *IssueTokensRequest) (*IssueTokensResponse, error)
	Stats(context.Context, *StatsRequest) (*StatsResponse, error)
	ExportResults(context.Context, *ExportResultsRequest) (*ExportResultsResponse, error)
	GenerateKeys(context.Context, *GenerateKeysRequest) (*GenerateKeysResponse, error)
	PublicKey(context.Context, *PublicKeyRequest) (*PublicKeyResponse, error)
}

type UnimplementedVoteServiceServer struct{}

func (UnimplementedVoteServiceServer) StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartSession not implemented")
}
func (UnimplementedVoteServiceServer) ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCandidates not implemented")
}
func (UnimplementedVoteServiceServer) Verify(context.Context, *VerifyRequest) (*VerifyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Verify not implemented")
}
func (UnimplementedVoteServiceServer) Redeem(context.Context, *RedeemRequest) (*RedeemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Redeem not implemented")
}
func (UnimplementedVoteServiceServer) IssueTokens(context.Context, *IssueTokensRequest) (*IssueTokensResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method IssueTokens not implemented")
}
func (UnimplementedVoteServiceServer) Stats(context.Context, *StatsRequest) (*StatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Stats not implemented")
}
func (UnimplementedVoteServiceServer) ExportResults(context.Context, *ExportResultsRequest) (*ExportResultsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportResults not implemented")
}
func (UnimplementedVoteServiceServer) GenerateKeys(context.Context, *GenerateKeysRequest) (*GenerateKeysResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GenerateKeys not implemented")
}
func (UnimplementedVoteServiceServer) PublicKey(context.Context, *PublicKeyRequest) (*PublicKeyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PublicKey not implemented")
}

// RegisterVoteServiceServer attaches srv to s.
func RegisterVoteServiceServer(s grpc.ServiceRegistrar, srv VoteServiceServer) {
	s.RegisterService(&VoteService_ServiceDesc, srv)
}

// unary adapts a typed method into a grpc method handler, running the server's
// interceptor chain the same way generated code does.
func unary[Req, Resp any](fullMethod string, call func(VoteServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VoteServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VoteServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var VoteService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VoteServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "StartSession", Handler: unary(VoteService_StartSession_FullMethodName, VoteServiceServer.StartSession)},
		{MethodName: "ListCandidates", Handler: unary(VoteService_ListCandidates_FullMethodName, VoteServiceServer.ListCandidates)},
		{MethodName: "Verify", Handler: unary(VoteService_Verify_FullMethodName, VoteServiceServer.Verify)},
		{MethodName: "Redeem", Handler: unary(VoteService_Redeem_FullMethodName, VoteServiceServer.Redeem)},
		{MethodName: "IssueTokens", Handler: unary(VoteService_IssueTokens_FullMethodName, VoteServiceServer.IssueTokens)},
		{MethodName: "Stats", Handler: unary(VoteService_Stats_FullMethodName, VoteServiceServer.Stats)},
		{MethodName: "ExportResults", Handler: unary(VoteService_ExportResults_FullMethodName, VoteServiceServer.ExportResults)},
		{MethodName: "GenerateKeys", Handler: unary(VoteService_GenerateKeys_FullMethodName, VoteServiceServer.GenerateKeys)},
		{MethodName: "PublicKey", Handler: unary(VoteService_PublicKey_FullMethodName, VoteServiceServer.PublicKey)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tokenvote/v1/vote.api",
}
