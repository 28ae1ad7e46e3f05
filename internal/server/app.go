// Package server initializes and runs the voting server. It opens the store,
// applies migrations, makes sure a signing key exists, wires the services and
// serves gRPC until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tokenvote/internal/cryptox"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/server/archive"
	"github.com/dmitrijs2005/tokenvote/internal/server/config"
	"github.com/dmitrijs2005/tokenvote/internal/server/keystore"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenvote/internal/server/services"
	"github.com/dmitrijs2005/tokenvote/internal/server/storage"

	gs "github.com/dmitrijs2005/tokenvote/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	votes   *services.VoteService
	tokens  *services.TokenService
	results *services.ResultService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	dialect, err := c.Dialect()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, dialect, c.DatabaseDSN, c.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	dialect, err := c.Dialect()
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	if err != nil {
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	keys := keystore.New(c.PrivateKeyPath, c.PublicKeyPath)
	created, err := keys.Ensure()
	if err != nil {
		return nil, fmt.Errorf("signing keys: %w", err)
	}
	if created {
		logger.Info(ctx, "signing key pair generated", "private", c.PrivateKeyPath, "public", c.PublicKeyPath)
	}

	hasher, err := cryptox.NewHasher([]byte(c.AuditHashKey))
	if err != nil {
		return nil, fmt.Errorf("audit hasher: %w", err)
	}

	var archiver services.Archiver
	if c.S3Bucket != "" {
		archiver = archive.NewS3Archive(archive.Settings{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	}

	audit := services.NewAuditLog(db, rm, hasher, logger)
	limiter := services.NewRateLimiter(db, rm, audit, c.RateLimit, c.FailDelay)
	tokens := services.NewTokenService(db, rm, logger)
	coordinator := services.NewVoteCoordinator(db, rm, c.BusyTimeout)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		votes:   services.NewVoteService(tokens, coordinator, limiter, audit, c.Candidates, logger),
		tokens:  tokens,
		results: services.NewResultService(db, rm, keys, c.Candidates, archiver, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) grpcServer() *gs.GRPCServer {
	return gs.NewGRPCServer(gs.Settings{
		Address:         app.config.EndpointAddrGRPC,
		AdminSecret:     app.config.AdminSecret,
		SessionSecret:   app.config.SessionSecret,
		SessionValidity: app.config.SessionValidity,
		TokenLength:     app.config.TokenLength,
		TokenBatchSize:  app.config.TokenBatchSize,
		Candidates:      app.config.Candidates,
	}, app.logger, app.votes, app.tokens, app.results)
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then closes
// the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
