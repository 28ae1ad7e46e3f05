// Package config handles configuration for the voting server, including
// defaults, a JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
)

// RateLimitConfig bounds how many verify/redeem requests one ip+session key
// may make inside a sliding window.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// FailDelayConfig controls the slowdown applied after failed attempts.
// The delay is min(Cap, failures*PerFail) over failures inside Window.
type FailDelayConfig struct {
	PerFail time.Duration
	Cap     time.Duration
	Window  time.Duration
}

// Config holds runtime settings for the voting server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (file path) or "pgx" (PostgreSQL URL).
//   - BusyTimeout: how long a writer waits for the exclusive vote scope.
//   - AdminSecret: shared secret expected in the x-admin-secret header.
//   - SessionSecret / SessionValidity: HMAC key and lifetime of session tokens.
//   - AuditHashKey: key for hashing tokens and voter ids in the audit log.
//   - PrivateKeyPath / PublicKeyPath: Ed25519 PEM files used to sign exports.
//   - S3*: optional archive of signed exports; disabled when S3Bucket is empty.
type Config struct {
	EndpointAddrGRPC string
	DatabaseDriver   string
	DatabaseDSN      string
	BusyTimeout      time.Duration

	AdminSecret     string
	SessionSecret   string
	SessionValidity time.Duration
	AuditHashKey    string

	RateLimit RateLimitConfig
	FailDelay FailDelayConfig

	TokenLength    int
	TokenBatchSize int
	Candidates     []models.Candidate

	PrivateKeyPath string
	PublicKeyPath  string

	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secrets are placeholders and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = string(dbx.SQLite)
	c.DatabaseDSN = "vote.db"
	c.BusyTimeout = 10 * time.Second

	c.AdminSecret = "troque-este-segredo"
	c.SessionSecret = "session-secret"
	c.SessionValidity = 14 * 24 * time.Hour
	c.AuditHashKey = "audit-hash-key"

	c.RateLimit = RateLimitConfig{MaxRequests: 15, Window: 60 * time.Second}
	c.FailDelay = FailDelayConfig{PerFail: time.Second, Cap: 5 * time.Second, Window: 5 * time.Minute}

	c.TokenLength = 7
	c.TokenBatchSize = 1500
	c.Candidates = models.DefaultCandidates()

	c.PrivateKeyPath = "ed25519_private.pem"
	c.PublicKeyPath = "ed25519_public.pem"

	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Dialect returns the parsed database dialect.
func (c *Config) Dialect() (dbx.Dialect, error) {
	return dbx.ParseDialect(c.DatabaseDriver)
}

// Validate reports the first setting that would make the server misbehave.
func (c *Config) Validate() error {
	if _, err := c.Dialect(); err != nil {
		return err
	}
	switch {
	case c.DatabaseDSN == "":
		return fmt.Errorf("database dsn is empty")
	case c.AdminSecret == "":
		return fmt.Errorf("admin secret is empty")
	case c.SessionSecret == "":
		return fmt.Errorf("session secret is empty")
	case c.TokenLength <= 0 || c.TokenLength > models.MaxTokenLength:
		return fmt.Errorf("token length must be in 1..%d, got %d", models.MaxTokenLength, c.TokenLength)
	case c.TokenBatchSize <= 0 || c.TokenBatchSize > models.MaxBatchSize:
		return fmt.Errorf("token batch size must be in 1..%d, got %d", models.MaxBatchSize, c.TokenBatchSize)
	case c.RateLimit.MaxRequests <= 0 || c.RateLimit.Window <= 0:
		return fmt.Errorf("rate limit needs a positive max and window")
	case c.FailDelay.Window <= 0:
		return fmt.Errorf("fail delay window must be positive")
	case len(c.Candidates) == 0:
		return fmt.Errorf("candidate roster is empty")
	}

	seen := make(map[string]bool, len(c.Candidates))
	for _, cand := range c.Candidates {
		if cand.ID == "" {
			return fmt.Errorf("candidate with empty id")
		}
		if seen[cand.ID] {
			return fmt.Errorf("duplicate candidate id %q", cand.ID)
		}
		seen[cand.ID] = true
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named by -c/-config,
// then VOTE_* environment variables (optionally from .env) and finally flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, envFile()); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args that panics on error, for use in main.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
