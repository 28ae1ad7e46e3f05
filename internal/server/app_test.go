package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/server/config"
	"github.com/dmitrijs2005/tokenvote/internal/server/services"
	"github.com/dmitrijs2005/tokenvote/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.DatabaseDSN = filepath.Join(dir, "vote.db")
	c.PrivateKeyPath = filepath.Join(dir, "priv.pem")
	c.PublicKeyPath = filepath.Join(dir, "pub.pem")
	return c
}

func TestNewApp_WiresServicesEndToEnd(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)

	db, err := storage.Open(ctx, dbx.SQLite, c.DatabaseDSN, c.BusyTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApp(ctx, c, logging.Nop(), db)
	require.NoError(t, err)

	_, err = os.Stat(c.PrivateKeyPath)
	require.NoError(t, err, "keys are ensured at start")

	issued, err := app.tokens.IssueBatch(ctx, 3, 7)
	require.NoError(t, err)

	voter := services.Voter{Token: issued[0], VoterID: "1", IP: "10.0.0.1", SessionID: "SESSIONSESSION01"}
	outcome, err := app.votes.Redeem(ctx, voter, "branco")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeSuccess, outcome)

	outcome, err = app.votes.Redeem(ctx, voter, "branco")
	require.NoError(t, err)
	assert.Equal(t, services.OutcomeTokenAlreadyUsed, outcome)

	signed, err := app.results.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), signed.Payload.TotalRedeemed)
	assert.Equal(t, int64(1), signed.Payload.Totals["branco"])
}

func TestNewApp_RejectsUnknownDriver(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDriver = "oracle"
	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)

	db, err := storage.Open(ctx, dbx.SQLite, c.DatabaseDSN, c.BusyTimeout)
	require.NoError(t, err)

	app, err := newApp(ctx, c, logging.Nop(), db)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		app.Run(runCtx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Error(t, db.Ping(), "database is closed after Run")
}
