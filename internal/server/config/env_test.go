package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("VOTE_DB", "/data/vote.db")
	t.Setenv("VOTE_ADMIN_SECRET", "from-env")
	t.Setenv("VOTE_RATE_LIMIT_MAX", "20")
	t.Setenv("VOTE_FAIL_DELAY_PER_FAIL", "1500ms")

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, ""))

	assert.Equal(t, "/data/vote.db", cfg.DatabaseDSN)
	assert.Equal(t, "from-env", cfg.AdminSecret)
	assert.Equal(t, 20, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 1500*time.Millisecond, cfg.FailDelay.PerFail)
}

func Test_parseEnv_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("VOTE_S3_BUCKET=archive\nVOTE_TOKEN_LENGTH=8\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("VOTE_S3_BUCKET")
		os.Unsetenv("VOTE_TOKEN_LENGTH")
	})

	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, path))

	assert.Equal(t, "archive", cfg.S3Bucket)
	assert.Equal(t, 8, cfg.TokenLength)
}

func Test_parseEnv_MissingDotEnvIsIgnored(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseEnv(&cfg, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "vote.db", cfg.DatabaseDSN)
}

func Test_parseEnv_BadValues(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		t.Setenv("VOTE_TOKEN_LENGTH", "seven")
		cfg := defaults()
		err := parseEnv(&cfg, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "VOTE_TOKEN_LENGTH")
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("VOTE_BUSY_TIMEOUT", "soon")
		cfg := defaults()
		require.Error(t, parseEnv(&cfg, ""))
	})
}
