package services

// Outcome is the result of a verify or redeem request as seen by the voter.
// Denials are outcomes, not errors; errors are reserved for infrastructure.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeTokenNotFound    Outcome = "token_not_found"
	OutcomeTokenAlreadyUsed Outcome = "token_already_used"
	OutcomeRateLimited      Outcome = "rate_limited"
	OutcomeUnknownCandidate Outcome = "unknown_candidate"
)

// Audit reason codes.
const (
	ReasonTokenOK           = "token_ok"
	ReasonTokenNotFound     = "token_not_found"
	ReasonTokenAlreadyUsed  = "token_already_used"
	ReasonVoteOK            = "vote_ok"
	ReasonNotFoundAtVote    = "token_not_found_at_vote"
	ReasonAlreadyUsedAtVote = "token_already_used_at_vote"
	ReasonRateLimited       = "rate_limited"
	ReasonUnknownCandidate  = "unknown_candidate"
	ReasonUnavailable       = "unavailable"
)
