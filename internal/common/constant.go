// Package common contains shared constants, sentinel errors and small helpers
// used by both the voting server and the admin client.
package common

// Metadata keys carried on gRPC requests.
const (
	// AdminSecretHeaderName carries the shared administrative secret.
	AdminSecretHeaderName = "x-admin-secret"

	// SessionTokenHeaderName carries the signed session token issued by StartSession.
	SessionTokenHeaderName = "session-token"

	// ForwardedForHeaderName is consulted before the peer address to find the client ip.
	ForwardedForHeaderName = "x-forwarded-for"

	// UserAgentHeaderName is recorded (truncated) in the audit log.
	UserAgentHeaderName = "user-agent"
)

// SafeAlphabet is the token alphabet. Visually ambiguous characters
// (0/O, 1/I/L) are left out so printed tokens can be typed back reliably.
const SafeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
