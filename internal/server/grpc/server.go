// Package grpc exposes the voting services over tokenvote.v1.VoteService.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/api"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/services"
	"google.golang.org/grpc"
)

type voteSvc interface {
	Verify(ctx context.Context, v services.Voter) (services.Outcome, error)
	Redeem(ctx context.Context, v services.Voter, candidateID string) (services.Outcome, error)
}

type tokenSvc interface {
	IssueBatch(ctx context.Context, count, length int) ([]string, error)
}

type resultSvc interface {
	Export(ctx context.Context) (*results.SignedResult, error)
	Stats(ctx context.Context) (*models.Stats, error)
	GenerateKeys(ctx context.Context) (string, bool, error)
	PublicKey(ctx context.Context) (string, error)
}

// Settings are the transport-level knobs taken from the server config.
type Settings struct {
	Address         string
	AdminSecret     string
	SessionSecret   string
	SessionValidity time.Duration
	TokenLength     int
	TokenBatchSize  int
	Candidates      []models.Candidate
}

type GRPCServer struct {
	api.UnimplementedVoteServiceServer
	settings      Settings
	adminSecret   []byte
	sessionSecret []byte
	votes         voteSvc
	tokens        tokenSvc
	results       resultSvc
	logger        logging.Logger
	now           func() time.Time
}

func NewGRPCServer(s Settings, l logging.Logger, vs voteSvc, ts tokenSvc, rs resultSvc) *GRPCServer {
	return &GRPCServer{
		settings:      s,
		adminSecret:   []byte(s.AdminSecret),
		sessionSecret: []byte(s.SessionSecret),
		votes:         vs,
		tokens:        ts,
		results:       rs,
		logger:        l.With("module", "grpc_server"),
		now:           time.Now,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.authInterceptor))
	api.RegisterVoteServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.settings.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
