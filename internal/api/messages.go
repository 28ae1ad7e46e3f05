package api

import "github.com/dmitrijs2005/tokenvote/internal/results"

// Outcome values reported by Verify and Redeem. Rate limiting is reported as
// a ResourceExhausted status instead.
const (
	OutcomeSuccess          = "success"
	OutcomeTokenNotFound    = "token_not_found"
	OutcomeTokenAlreadyUsed = "token_already_used"
	OutcomeUnknownCandidate = "unknown_candidate"
)

type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StartSessionRequest struct{}

type StartSessionResponse struct {
	SessionToken string `json:"session_token"`
	ExpiresAt    string `json:"expires_at"`
}

type ListCandidatesRequest struct{}

type ListCandidatesResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type VerifyRequest struct {
	Token   string `json:"token"`
	VoterID string `json:"voter_id"`
}

type VerifyResponse struct {
	Outcome string `json:"outcome"`
}

type RedeemRequest struct {
	Token       string `json:"token"`
	VoterID     string `json:"voter_id"`
	CandidateID string `json:"candidate_id"`
}

type RedeemResponse struct {
	Outcome string `json:"outcome"`
}

type IssueTokensRequest struct {
	Count  int `json:"count"`
	Length int `json:"length"`
}

type IssueTokensResponse struct {
	Tokens []string `json:"tokens"`
}

type StatsRequest struct{}

type CandidateCount struct {
	CandidateID string `json:"candidate_id"`
	Count       int64  `json:"count"`
}

type StatsResponse struct {
	Total        int64            `json:"total"`
	Used         int64            `json:"used"`
	Unused       int64            `json:"unused"`
	PerCandidate []CandidateCount `json:"per_candidate"`
}

type ExportResultsRequest struct{}

type ExportResultsResponse struct {
	Result results.SignedResult `json:"result"`
}

type GenerateKeysRequest struct{}

type GenerateKeysResponse struct {
	PublicKeyPEM string `json:"public_key_pem"`
	Created      bool   `json:"created"`
}

type PublicKeyRequest struct{}

type PublicKeyResponse struct {
	PublicKeyPEM string `json:"public_key_pem"`
}
