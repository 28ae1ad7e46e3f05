package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/api"
	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Stats mirrors the server's statistics response.
type Stats struct {
	Total        int64
	Used         int64
	Unused       int64
	PerCandidate []api.CandidateCount
}

type GRPCClient struct {
	endpointURL string
	adminSecret string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.VoteServiceClient
}

func withAdminSecret(ctx context.Context, secret string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AdminSecretHeaderName, secret)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) adminSecretInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAdminSecret(ctx, s.adminSecret), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a connection to endpointURL. The connection is lazy;
// nothing is dialled until the first call.
func NewGRPCClient(endpointURL, adminSecret string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, adminSecret: adminSecret, timeout: timeout}
	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.adminSecretInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewVoteServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// IssueTokens asks the server for count new tokens of the given length. Zero
// values select the server defaults.
func (s *GRPCClient) IssueTokens(ctx context.Context, count, length int) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.IssueTokens(ctx, &api.IssueTokensRequest{Count: count, Length: length})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tokens, nil
}

func (s *GRPCClient) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Stats(ctx, &api.StatsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &Stats{Total: resp.Total, Used: resp.Used, Unused: resp.Unused, PerCandidate: resp.PerCandidate}, nil
}

func (s *GRPCClient) ExportResults(ctx context.Context) (*results.SignedResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ExportResults(ctx, &api.ExportResultsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Result, nil
}

func (s *GRPCClient) GenerateKeys(ctx context.Context) (string, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GenerateKeys(ctx, &api.GenerateKeysRequest{})
	if err != nil {
		return "", false, mapError(err)
	}
	return resp.PublicKeyPEM, resp.Created, nil
}

func (s *GRPCClient) PublicKey(ctx context.Context) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.PublicKey(ctx, &api.PublicKeyRequest{})
	if err != nil {
		return "", mapError(err)
	}
	return resp.PublicKeyPEM, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrFailedPrecondition, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
