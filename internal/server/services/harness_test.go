package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/cryptox"
	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/server/config"
	"github.com/dmitrijs2005/tokenvote/internal/server/keystore"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenvote/internal/server/storage/storagetest"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type harness struct {
	db          *sql.DB
	rm          repomanager.RepositoryManager
	clock       *fakeClock
	keys        *keystore.Store
	audit       *AuditLog
	limiter     *RateLimiter
	tokens      *TokenService
	coordinator *VoteCoordinator
	votes       *VoteService
	results     *ResultService
	slept       []time.Duration
}

func testConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	return &c
}

func newHarness(t testing.TB) *harness {
	t.Helper()
	return newHarnessWith(t, storagetest.OpenSQLite(t), testConfig())
}

func newHarnessWith(t testing.TB, db *sql.DB, cfg *config.Config) *harness {
	t.Helper()

	rm, err := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	require.NoError(t, err)
	hasher, err := cryptox.NewHasher([]byte(cfg.AuditHashKey))
	require.NoError(t, err)

	dir := t.TempDir()
	log := logging.Nop()

	h := &harness{db: db, rm: rm, clock: newFakeClock()}
	h.keys = keystore.New(filepath.Join(dir, "priv.pem"), filepath.Join(dir, "pub.pem"))

	h.audit = NewAuditLog(db, rm, hasher, log)
	h.audit.now = h.clock.Now

	h.limiter = NewRateLimiter(db, rm, h.audit, cfg.RateLimit, cfg.FailDelay)
	h.limiter.now = h.clock.Now

	h.tokens = NewTokenService(db, rm, log)
	h.coordinator = NewVoteCoordinator(db, rm, cfg.BusyTimeout)

	h.votes = NewVoteService(h.tokens, h.coordinator, h.limiter, h.audit, cfg.Candidates, log)
	h.votes.now = h.clock.Now
	h.votes.sleep = func(ctx context.Context, d time.Duration) error {
		h.slept = append(h.slept, d)
		return nil
	}

	h.results = NewResultService(db, rm, h.keys, cfg.Candidates, nil, log)
	h.results.now = h.clock.Now
	return h
}

// seed inserts tokens directly, bypassing random generation.
func (h *harness) seed(t testing.TB, toks ...string) {
	t.Helper()
	repo := h.rm.Tokens(h.db)
	for _, tok := range toks {
		ok, err := repo.Create(context.Background(), tok)
		require.NoError(t, err)
		require.True(t, ok, tok)
	}
}

func (h *harness) tally(t testing.TB) map[string]int64 {
	t.Helper()
	got, err := h.rm.Tallies(h.db).Snapshot(context.Background())
	require.NoError(t, err)
	return got
}

// requireConserved checks that the tally sum equals the number of used tokens.
func (h *harness) requireConserved(t testing.TB) {
	t.Helper()
	var sum int64
	for _, n := range h.tally(t) {
		sum += n
	}
	_, used, err := h.rm.Tokens(h.db).Counts(context.Background())
	require.NoError(t, err)
	require.Equal(t, used, sum, "tally sum must equal used tokens")
}

func redemption(at time.Time) models.Redemption {
	return models.Redemption{At: at, IP: "10.0.0.1", SessionID: "sess-1", VoterID: "2024001"}
}

func auditReasons(t testing.TB, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT reason FROM audit_log ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		require.NoError(t, rows.Scan(&r))
		out = append(out, r)
	}
	require.NoError(t, rows.Err())
	return out
}
