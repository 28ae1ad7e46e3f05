package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")

	// Redemption denials. These are expected outcomes, not faults.
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrRateLimited      = errors.New("too many attempts, try again shortly")

	// ErrUnavailable covers lock timeouts and storage failures.
	ErrUnavailable = errors.New("temporarily unavailable")

	// Validation errors.
	ErrInvalidArgument = errors.New("invalid argument")

	// Key material and signature errors.
	ErrPrivateKeyMissing = errors.New("private key not found")
	ErrCorruptKey        = errors.New("corrupt key material")
	ErrInvalidSignature  = errors.New("invalid signature")
)
