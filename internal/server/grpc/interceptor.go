package grpc

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/api"
	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionIDKey ctxKey = "sessionID"

var sessionMethods = map[string]bool{
	api.VoteService_Verify_FullMethodName: true,
	api.VoteService_Redeem_FullMethodName: true,
}

var adminMethods = map[string]bool{
	api.VoteService_IssueTokens_FullMethodName:   true,
	api.VoteService_Stats_FullMethodName:         true,
	api.VoteService_ExportResults_FullMethodName: true,
	api.VoteService_GenerateKeys_FullMethodName:  true,
	api.VoteService_PublicKey_FullMethodName:     true,
}

func metadataValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func sessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}

func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	switch {
	case sessionMethods[info.FullMethod]:
		token := metadataValue(ctx, common.SessionTokenHeaderName)
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing session token")
		}
		sessionID, err := auth.GetSessionIDFromToken(token, s.sessionSecret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid session token")
		}
		ctx = context.WithValue(ctx, sessionIDKey, sessionID)

	case adminMethods[info.FullMethod]:
		secret := []byte(metadataValue(ctx, common.AdminSecretHeaderName))
		if len(s.adminSecret) == 0 || subtle.ConstantTimeCompare(secret, s.adminSecret) != 1 {
			s.logger.Warn(ctx, "admin call rejected", "method", info.FullMethod)
			return nil, status.Error(codes.Unauthenticated, "invalid admin secret")
		}
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID, _ := common.MakeRandHexString(8)
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "request_id", requestID, "method", info.FullMethod,
		"code", status.Code(err).String(), "elapsed", time.Since(start))
	return resp, err
}
