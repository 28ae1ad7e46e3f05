package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/services"
)

type fakeVotes struct {
	mu        sync.Mutex
	outcome   services.Outcome
	err       error
	got       services.Voter
	candidate string
}

func (f *fakeVotes) Verify(ctx context.Context, v services.Voter) (services.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = v
	return f.outcome, f.err
}

func (f *fakeVotes) Redeem(ctx context.Context, v services.Voter, candidateID string) (services.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = v
	f.candidate = candidateID
	return f.outcome, f.err
}

func (f *fakeVotes) last() (services.Voter, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got, f.candidate
}

type fakeTokens struct {
	count, length int
	tokens        []string
	err           error
}

func (f *fakeTokens) IssueBatch(ctx context.Context, count, length int) ([]string, error) {
	f.count, f.length = count, length
	return f.tokens, f.err
}

type fakeResults struct {
	signed    *results.SignedResult
	exportErr error
	stats     *models.Stats
	statsErr  error
	pub       string
	created   bool
	keysErr   error
	pubErr    error
}

func (f *fakeResults) Export(ctx context.Context) (*results.SignedResult, error) {
	return f.signed, f.exportErr
}

func (f *fakeResults) Stats(ctx context.Context) (*models.Stats, error) {
	return f.stats, f.statsErr
}

func (f *fakeResults) GenerateKeys(ctx context.Context) (string, bool, error) {
	return f.pub, f.created, f.keysErr
}

func (f *fakeResults) PublicKey(ctx context.Context) (string, error) {
	return f.pub, f.pubErr
}

const (
	testAdminSecret   = "admin-secret"
	testSessionSecret = "session-secret"
)

func newTestServer(v *fakeVotes, tk *fakeTokens, r *fakeResults) *GRPCServer {
	s := NewGRPCServer(Settings{
		Address:         "127.0.0.1:0",
		AdminSecret:     testAdminSecret,
		SessionSecret:   testSessionSecret,
		SessionValidity: time.Hour,
		TokenLength:     7,
		TokenBatchSize:  1500,
		Candidates:      models.DefaultCandidates(),
	}, logging.Nop(), v, tk, r)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return s
}
