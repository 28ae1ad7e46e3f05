package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/flagx"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "90s" and integer nanoseconds are accepted. Absent
// or zero fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	BusyTimeout      timex.Duration `json:"busy_timeout"`

	AdminSecret     string         `json:"admin_secret"`
	SessionSecret   string         `json:"session_secret"`
	SessionValidity timex.Duration `json:"session_validity"`
	AuditHashKey    string         `json:"audit_hash_key"`

	RateLimitMax    int            `json:"rate_limit_max"`
	RateLimitWindow timex.Duration `json:"rate_limit_window"`

	FailDelayPerFail timex.Duration `json:"fail_delay_per_fail"`
	FailDelayCap     timex.Duration `json:"fail_delay_cap"`
	FailDelayWindow  timex.Duration `json:"fail_delay_window"`

	TokenLength    int                `json:"token_length"`
	TokenBatchSize int                `json:"token_batch_size"`
	Candidates     []models.Candidate `json:"candidates"`

	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays the file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setDuration(&config.BusyTimeout, c.BusyTimeout)

	setString(&config.AdminSecret, c.AdminSecret)
	setString(&config.SessionSecret, c.SessionSecret)
	setDuration(&config.SessionValidity, c.SessionValidity)
	setString(&config.AuditHashKey, c.AuditHashKey)

	setInt(&config.RateLimit.MaxRequests, c.RateLimitMax)
	setDuration(&config.RateLimit.Window, c.RateLimitWindow)

	setDuration(&config.FailDelay.PerFail, c.FailDelayPerFail)
	setDuration(&config.FailDelay.Cap, c.FailDelayCap)
	setDuration(&config.FailDelay.Window, c.FailDelayWindow)

	setInt(&config.TokenLength, c.TokenLength)
	setInt(&config.TokenBatchSize, c.TokenBatchSize)
	if len(c.Candidates) > 0 {
		config.Candidates = c.Candidates
	}

	setString(&config.PrivateKeyPath, c.PrivateKeyPath)
	setString(&config.PublicKeyPath, c.PublicKeyPath)

	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
