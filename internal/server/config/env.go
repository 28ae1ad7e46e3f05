package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile names the optional dotenv file; VOTE_ENV_FILE overrides ".env".
func envFile() string {
	if v, ok := os.LookupEnv("VOTE_ENV_FILE"); ok {
		return v
	}
	return ".env"
}

// parseEnv loads path (if it exists) into the process environment without
// overriding variables already set, then overlays every VOTE_* variable.
func parseEnv(config *Config, path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	strs := map[string]*string{
		"VOTE_GRPC_ADDR":        &config.EndpointAddrGRPC,
		"VOTE_DB_DRIVER":        &config.DatabaseDriver,
		"VOTE_DB":               &config.DatabaseDSN,
		"VOTE_ADMIN_SECRET":     &config.AdminSecret,
		"VOTE_SESSION_SECRET":   &config.SessionSecret,
		"VOTE_AUDIT_HASH_KEY":   &config.AuditHashKey,
		"VOTE_KEY_PRIV":         &config.PrivateKeyPath,
		"VOTE_KEY_PUB":          &config.PublicKeyPath,
		"VOTE_S3_ROOT_USER":     &config.S3RootUser,
		"VOTE_S3_ROOT_PASSWORD": &config.S3RootPassword,
		"VOTE_S3_BUCKET":        &config.S3Bucket,
		"VOTE_S3_REGION":        &config.S3Region,
		"VOTE_S3_BASE_ENDPOINT": &config.S3BaseEndpoint,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"VOTE_RATE_LIMIT_MAX":   &config.RateLimit.MaxRequests,
		"VOTE_TOKEN_LENGTH":     &config.TokenLength,
		"VOTE_TOKEN_BATCH_SIZE": &config.TokenBatchSize,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return &envError{name: name, err: err}
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"VOTE_BUSY_TIMEOUT":        &config.BusyTimeout,
		"VOTE_SESSION_VALIDITY":    &config.SessionValidity,
		"VOTE_RATE_LIMIT_WINDOW":   &config.RateLimit.Window,
		"VOTE_FAIL_DELAY_PER_FAIL": &config.FailDelay.PerFail,
		"VOTE_FAIL_DELAY_CAP":      &config.FailDelay.Cap,
		"VOTE_FAIL_DELAY_WINDOW":   &config.FailDelay.Window,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return &envError{name: name, err: err}
		}
		*dst = d
	}
	return nil
}

type envError struct {
	name string
	err  error
}

func (e *envError) Error() string { return e.name + ": " + e.err.Error() }
func (e *envError) Unwrap() error { return e.err }
