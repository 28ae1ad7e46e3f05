package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
)

// Voter carries what the transport knows about the caller. Token must already
// be trimmed and upper-cased, VoterID trimmed.
type Voter struct {
	Token     string
	VoterID   string
	IP        string
	SessionID string
	UserAgent string
}

// VoteService is the voter-facing entry point: rate limit, fail delay,
// verification or redemption, and an audit record for every outcome.
type VoteService struct {
	tokens      *TokenService
	coordinator *VoteCoordinator
	limiter     *RateLimiter
	audit       *AuditLog
	candidates  map[string]bool
	logger      logging.Logger
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewVoteService(tokens *TokenService, coordinator *VoteCoordinator, limiter *RateLimiter,
	audit *AuditLog, candidates []models.Candidate, logger logging.Logger) *VoteService {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}
	return &VoteService{
		tokens:      tokens,
		coordinator: coordinator,
		limiter:     limiter,
		audit:       audit,
		candidates:  known,
		logger:      logger.With("module", "vote"),
		now:         time.Now,
		sleep:       sleepContext,
	}
}

// Verify reports whether v.Token exists and is unused. It changes no token
// state; Redeem checks again inside its transaction.
func (s *VoteService) Verify(ctx context.Context, v Voter) (Outcome, error) {
	if outcome, err := s.admit(ctx, v); outcome != "" || err != nil {
		return outcome, err
	}

	t, err := s.tokens.Lookup(ctx, v.Token)
	switch {
	case errors.Is(err, common.ErrTokenNotFound):
		s.record(ctx, v, false, ReasonTokenNotFound)
		return OutcomeTokenNotFound, nil
	case err != nil:
		s.record(ctx, v, false, ReasonUnavailable)
		return "", fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	case t.Used:
		s.record(ctx, v, false, ReasonTokenAlreadyUsed)
		return OutcomeTokenAlreadyUsed, nil
	}

	s.record(ctx, v, true, ReasonTokenOK)
	return OutcomeSuccess, nil
}

// Redeem casts one vote for candidateID with v.Token.
func (s *VoteService) Redeem(ctx context.Context, v Voter, candidateID string) (Outcome, error) {
	if outcome, err := s.admit(ctx, v); outcome != "" || err != nil {
		return outcome, err
	}

	if !s.candidates[candidateID] {
		s.record(ctx, v, false, ReasonUnknownCandidate)
		return OutcomeUnknownCandidate, nil
	}

	outcome, err := s.coordinator.Cast(ctx, v.Token, candidateID, models.Redemption{
		At:        s.now(),
		IP:        v.IP,
		SessionID: v.SessionID,
		VoterID:   v.VoterID,
	})
	if err != nil {
		s.logger.Error(ctx, "vote transaction failed", "session", v.SessionID, "error", err)
		s.record(ctx, v, false, ReasonUnavailable)
		return "", err
	}

	switch outcome {
	case OutcomeSuccess:
		s.record(ctx, v, true, ReasonVoteOK)
	case OutcomeTokenNotFound:
		s.record(ctx, v, false, ReasonNotFoundAtVote)
	case OutcomeTokenAlreadyUsed:
		s.record(ctx, v, false, ReasonAlreadyUsedAtVote)
	}
	return outcome, nil
}

// admit applies the rate limit and then the fail delay. A non-empty outcome
// or an error means the request must stop here.
func (s *VoteService) admit(ctx context.Context, v Voter) (Outcome, error) {
	allowed, err := s.limiter.CheckAndRecord(ctx, RateLimitKey(v.IP, v.SessionID))
	if err != nil {
		s.logger.Error(ctx, "rate limiter failed", "error", err)
		s.record(ctx, v, false, ReasonUnavailable)
		return "", fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	if !allowed {
		s.record(ctx, v, false, ReasonRateLimited)
		return OutcomeRateLimited, nil
	}

	delay, err := s.limiter.ComputeDelay(ctx, v.SessionID)
	if err != nil {
		// the delay is a deterrent only; proceed without it
		s.logger.Warn(ctx, "fail delay lookup failed", "error", err)
		return "", nil
	}
	if delay > 0 {
		s.logger.Debug(ctx, "applying fail delay", "session", v.SessionID, "delay", delay)
		if err := s.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (s *VoteService) record(ctx context.Context, v Voter, success bool, reason string) {
	s.audit.Record(ctx, Attempt{
		Token:     v.Token,
		VoterID:   v.VoterID,
		IP:        v.IP,
		UserAgent: v.UserAgent,
		SessionID: v.SessionID,
		Success:   success,
		Reason:    reason,
	})
}

// sleepContext waits for d or until ctx is done, without holding anything.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
