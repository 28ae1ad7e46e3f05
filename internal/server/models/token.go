package models

import "time"

// VotePlaceholder is what gets stored in Token.Vote. The real choice only
// reaches the aggregate tally so a token row never reveals who voted for whom.
const VotePlaceholder = "secret"

const (
	// MaxBatchSize caps a single issuance call.
	MaxBatchSize = 100_000
	// MaxTokenLength caps the requested token length.
	MaxTokenLength = 64
)

// Token is a single-use voting credential and, once used, its redemption record.
type Token struct {
	ID          int64
	Token       string
	Used        bool
	UsedAt      *time.Time
	UsedIP      string
	UsedSession string
	VoterID     string
	Vote        string
}

// Redemption carries the metadata written when a token is consumed.
type Redemption struct {
	At        time.Time
	IP        string
	SessionID string
	VoterID   string
}
