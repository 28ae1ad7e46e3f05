package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"github.com/dmitrijs2005/tokenvote/internal/server/keystore"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenvote/internal/timex"
)

// Archiver keeps a copy of each signed export somewhere durable.
type Archiver interface {
	Store(ctx context.Context, data []byte) (string, error)
}

// ResultService reads tallies and produces signed exports and statistics.
// It never writes to the tally or token tables.
type ResultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	keys        *keystore.Store
	candidates  []models.Candidate
	archiver    Archiver
	logger      logging.Logger
	now         func() time.Time
}

// NewResultService builds the service; archiver may be nil.
func NewResultService(db *sql.DB, m repomanager.RepositoryManager, keys *keystore.Store,
	candidates []models.Candidate, archiver Archiver, logger logging.Logger) *ResultService {
	return &ResultService{
		db:          db,
		repomanager: m,
		keys:        keys,
		candidates:  candidates,
		archiver:    archiver,
		logger:      logger.With("module", "results"),
		now:         time.Now,
	}
}

type snapshot struct {
	totals map[string]int64
	total  int64
	used   int64
}

// snapshot reads tallies and token counts in one statement so the two agree
// with each other without blocking voters.
func (s *ResultService) snapshot(ctx context.Context) (*snapshot, error) {
	sum, err := s.repomanager.Tallies(s.db).Summary(ctx)
	if err != nil {
		return nil, err
	}
	snap := snapshot{totals: sum.Totals, total: sum.Tokens, used: sum.Used}

	// every roster candidate appears, with zero if nobody voted for it yet
	for _, c := range s.candidates {
		if _, ok := snap.totals[c.ID]; !ok {
			snap.totals[c.ID] = 0
		}
	}
	return &snap, nil
}

// Export signs the current tally. It fails with common.ErrPrivateKeyMissing
// or common.ErrCorruptKey before reading anything if the key is unusable.
func (s *ResultService) Export(ctx context.Context) (*results.SignedResult, error) {
	priv, pubPEM, err := s.keys.Load()
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]results.CandidateRef, 0, len(s.candidates))
	for _, c := range s.candidates {
		refs = append(refs, results.CandidateRef{ID: c.ID, Name: c.Name})
	}

	payload := results.Payload{
		GeneratedAt:   timex.FormatTimestamp(s.now()),
		Candidates:    refs,
		Totals:        snap.totals,
		TotalRedeemed: snap.used,
		Algorithm:     results.Algorithm,
	}

	signed, err := results.Sign(priv, pubPEM, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "results exported", "total_redeemed", snap.used)
	s.archive(ctx, signed)
	return signed, nil
}

// archive uploads the export if an archiver is configured. Failures are
// logged only; the signed result is valid regardless.
func (s *ResultService) archive(ctx context.Context, signed *results.SignedResult) {
	if s.archiver == nil {
		return
	}
	data, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		s.logger.Error(ctx, "export archive encode failed", "error", err)
		return
	}
	key, err := s.archiver.Store(ctx, data)
	if err != nil {
		s.logger.Error(ctx, "export archive upload failed", "error", err)
		return
	}
	s.logger.Info(ctx, "export archived", "key", key)
}

// Stats returns token counts and the per-candidate tally.
func (s *ResultService) Stats(ctx context.Context) (*models.Stats, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Stats{
		Total:        snap.total,
		Used:         snap.used,
		Unused:       snap.total - snap.used,
		PerCandidate: snap.totals,
	}, nil
}

// GenerateKeys makes sure a signing pair exists and returns its public key.
func (s *ResultService) GenerateKeys(ctx context.Context) (string, bool, error) {
	created, err := s.keys.Ensure()
	if err != nil {
		return "", false, err
	}
	if created {
		s.logger.Info(ctx, "signing key pair generated")
	}
	pub, err := s.keys.PublicKeyPEM()
	if err != nil {
		return "", false, err
	}
	return string(pub), created, nil
}

// PublicKey returns the public key PEM, or common.ErrorNotFound.
func (s *ResultService) PublicKey(ctx context.Context) (string, error) {
	pub, err := s.keys.PublicKeyPEM()
	if err != nil {
		return "", err
	}
	return string(pub), nil
}

// SortedCandidateIDs lists the keys of totals in lexicographic order.
func SortedCandidateIDs(totals map[string]int64) []string {
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
