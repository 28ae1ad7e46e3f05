package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
)

// maxDrawsPerToken bounds collision retries for one slot; hitting it means
// the token space for the chosen length is close to exhausted.
const maxDrawsPerToken = 100

// TokenService issues and looks up voting tokens.
type TokenService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	alphabet    string
	logger      logging.Logger
	randomToken func(alphabet string, length int) (string, error)
}

func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TokenService {
	return &TokenService{
		db:          db,
		repomanager: m,
		alphabet:    common.SafeAlphabet,
		logger:      logger.With("module", "tokens"),
		randomToken: common.RandomString,
	}
}

// IssueBatch creates count fresh tokens of the given length in one transaction
// and returns them in issuance order. A draw that collides with an existing
// token is replaced by another draw, so the batch always has count entries.
func (s *TokenService) IssueBatch(ctx context.Context, count, length int) ([]string, error) {
	if count <= 0 || count > models.MaxBatchSize {
		return nil, fmt.Errorf("%w: count must be in 1..%d, got %d", common.ErrInvalidArgument, models.MaxBatchSize, count)
	}
	if length <= 0 || length > models.MaxTokenLength {
		return nil, fmt.Errorf("%w: length must be in 1..%d, got %d", common.ErrInvalidArgument, models.MaxTokenLength, length)
	}

	var issued []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tokens(tx)
		issued = make([]string, 0, count)
		collisions := 0

		for len(issued) < count {
			tok, err := s.drawUnique(ctx, repo.Create, length, &collisions)
			if err != nil {
				return err
			}
			issued = append(issued, tok)
		}

		if collisions > 0 {
			s.logger.Warn(ctx, "token collisions during issuance", "collisions", collisions, "length", length)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "tokens issued", "count", len(issued), "length", length)
	return issued, nil
}

func (s *TokenService) drawUnique(ctx context.Context, create func(context.Context, string) (bool, error), length int, collisions *int) (string, error) {
	for i := 0; i < maxDrawsPerToken; i++ {
		tok, err := s.randomToken(s.alphabet, length)
		if err != nil {
			return "", fmt.Errorf("random token: %w", err)
		}
		inserted, err := create(ctx, tok)
		if err != nil {
			return "", err
		}
		if inserted {
			return tok, nil
		}
		*collisions++
	}
	return "", fmt.Errorf("%w: no unused token of length %d after %d draws", common.ErrInvalidArgument, length, maxDrawsPerToken)
}

// Lookup is an exact, read-only match. It is advisory: the vote transaction
// re-checks the token under its exclusive scope.
func (s *TokenService) Lookup(ctx context.Context, token string) (*models.Token, error) {
	t, err := s.repomanager.Tokens(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTokenNotFound
		}
		return nil, err
	}
	return t, nil
}
