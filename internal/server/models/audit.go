package models

import "time"

// AuditEntry is one immutable record of a verification or redemption attempt.
// Token and voter identifiers are stored only as keyed hashes.
type AuditEntry struct {
	TokenHash string
	VoterHash string
	IP        string
	UserAgent string
	SessionID string
	CreatedAt time.Time
	Success   bool
	Reason    string
}
