package grpc

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/dmitrijs2005/tokenvote/internal/api"
	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/netx"
	"github.com/dmitrijs2005/tokenvote/internal/server/auth"
	"github.com/dmitrijs2005/tokenvote/internal/server/services"
	"github.com/dmitrijs2005/tokenvote/internal/timex"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) StartSession(ctx context.Context, req *api.StartSessionRequest) (*api.StartSessionResponse, error) {
	sessionID, err := auth.NewSessionID()
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	token, err := auth.GenerateToken(sessionID, s.sessionSecret, s.settings.SessionValidity)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.StartSessionResponse{
		SessionToken: token,
		ExpiresAt:    timex.FormatTimestamp(s.now().Add(s.settings.SessionValidity)),
	}, nil
}

func (s *GRPCServer) ListCandidates(ctx context.Context, req *api.ListCandidatesRequest) (*api.ListCandidatesResponse, error) {
	out := make([]api.Candidate, 0, len(s.settings.Candidates))
	for _, c := range s.settings.Candidates {
		out = append(out, api.Candidate{ID: c.ID, Name: c.Name})
	}
	return &api.ListCandidatesResponse{Candidates: out}, nil
}

func (s *GRPCServer) Verify(ctx context.Context, req *api.VerifyRequest) (*api.VerifyResponse, error) {
	outcome, err := s.votes.Verify(ctx, s.voter(ctx, req.Token, req.VoterID))
	if err := s.outcomeError(ctx, outcome, err); err != nil {
		return nil, err
	}
	return &api.VerifyResponse{Outcome: string(outcome)}, nil
}

func (s *GRPCServer) Redeem(ctx context.Context, req *api.RedeemRequest) (*api.RedeemResponse, error) {
	outcome, err := s.votes.Redeem(ctx, s.voter(ctx, req.Token, req.VoterID), strings.TrimSpace(req.CandidateID))
	if err := s.outcomeError(ctx, outcome, err); err != nil {
		return nil, err
	}
	return &api.RedeemResponse{Outcome: string(outcome)}, nil
}

func (s *GRPCServer) IssueTokens(ctx context.Context, req *api.IssueTokensRequest) (*api.IssueTokensResponse, error) {
	count, length := req.Count, req.Length
	if count == 0 {
		count = s.settings.TokenBatchSize
	}
	if length == 0 {
		length = s.settings.TokenLength
	}
	tokens, err := s.tokens.IssueBatch(ctx, count, length)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "tokens issued", "count", len(tokens), "length", length)
	return &api.IssueTokensResponse{Tokens: tokens}, nil
}

func (s *GRPCServer) Stats(ctx context.Context, req *api.StatsRequest) (*api.StatsResponse, error) {
	st, err := s.results.Stats(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &api.StatsResponse{Total: st.Total, Used: st.Used, Unused: st.Unused}
	for _, id := range services.SortedCandidateIDs(st.PerCandidate) {
		resp.PerCandidate = append(resp.PerCandidate, api.CandidateCount{CandidateID: id, Count: st.PerCandidate[id]})
	}
	return resp, nil
}

func (s *GRPCServer) ExportResults(ctx context.Context, req *api.ExportResultsRequest) (*api.ExportResultsResponse, error) {
	signed, err := s.results.Export(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ExportResultsResponse{Result: *signed}, nil
}

func (s *GRPCServer) GenerateKeys(ctx context.Context, req *api.GenerateKeysRequest) (*api.GenerateKeysResponse, error) {
	pub, created, err := s.results.GenerateKeys(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GenerateKeysResponse{PublicKeyPEM: pub, Created: created}, nil
}

func (s *GRPCServer) PublicKey(ctx context.Context, req *api.PublicKeyRequest) (*api.PublicKeyResponse, error) {
	pub, err := s.results.PublicKey(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PublicKeyResponse{PublicKeyPEM: pub}, nil
}

// voter normalizes the request fields and attaches what the connection
// says about the caller.
func (s *GRPCServer) voter(ctx context.Context, token, voterID string) services.Voter {
	var remote net.Addr
	if p, ok := peer.FromContext(ctx); ok {
		remote = p.Addr
	}
	return services.Voter{
		Token:     strings.ToUpper(strings.TrimSpace(token)),
		VoterID:   strings.TrimSpace(voterID),
		IP:        netx.ClientIP(metadataValue(ctx, common.ForwardedForHeaderName), remote),
		SessionID: sessionIDFromContext(ctx),
		UserAgent: metadataValue(ctx, common.UserAgentHeaderName),
	}
}

// outcomeError turns a rate-limited outcome or a service error into a
// status. Other denials travel in the response body.
func (s *GRPCServer) outcomeError(ctx context.Context, outcome services.Outcome, err error) error {
	if err != nil {
		return s.toStatus(ctx, err)
	}
	if outcome == services.OutcomeRateLimited {
		return status.Error(codes.ResourceExhausted, common.ErrRateLimited.Error())
	}
	return nil
}

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrPrivateKeyMissing), errors.Is(err, common.ErrCorruptKey):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrUnavailable):
		s.logger.Error(ctx, "service unavailable", "error", err)
		return status.Error(codes.Unavailable, common.ErrUnavailable.Error())
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}
