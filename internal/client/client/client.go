package client

import (
	"context"

	"github.com/dmitrijs2005/tokenvote/internal/results"
)

// Client is the admin API contract. GRPCClient implements it.
type Client interface {
	IssueTokens(ctx context.Context, count, length int) ([]string, error)
	Stats(ctx context.Context) (*Stats, error)
	ExportResults(ctx context.Context) (*results.SignedResult, error)
	GenerateKeys(ctx context.Context) (string, bool, error)
	PublicKey(ctx context.Context) (string, error)
	Close() error
}

var _ Client = (*GRPCClient)(nil)
