package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/client/client"
	"github.com/dmitrijs2005/tokenvote/internal/client/config"
	"github.com/spf13/cobra"
)

// EnvAdminSecret is read when --secret is not given.
const EnvAdminSecret = "VOTE_ADMIN_SECRET"

type App struct {
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
	dial   func(addr, secret string, timeout time.Duration) (client.Client, error)

	configPath string
	addr       string
	secret     string
	timeout    time.Duration
}

func NewApp(out, errOut io.Writer) *App {
	return &App{
		out:    out,
		errOut: errOut,
		getenv: os.Getenv,
		dial: func(addr, secret string, timeout time.Duration) (client.Client, error) {
			return client.NewGRPCClient(addr, secret, timeout)
		},
	}
}

// adminSecret resolves the secret from the flag, the environment or a prompt.
func (a *App) adminSecret() (string, error) {
	if a.secret != "" {
		return a.secret, nil
	}
	if s := a.getenv(EnvAdminSecret); s != "" {
		return s, nil
	}
	return GetSecret(a.errOut)
}

// connect builds a client from the config file overlaid with any flags the
// user set explicitly.
func (a *App) connect(cmd *cobra.Command) (client.Client, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ServerEndpointAddr = a.addr
	}
	if cmd.Flags().Changed("timeout") {
		cfg.RequestTimeout = a.timeout
	}

	secret, err := a.adminSecret()
	if err != nil {
		return nil, err
	}
	return a.dial(cfg.ServerEndpointAddr, secret, cfg.RequestTimeout)
}

// withClient runs fn against a fresh connection and closes it afterwards.
func (a *App) withClient(cmd *cobra.Command, fn func(ctx context.Context, c client.Client) error) error {
	c, err := a.connect(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(cmd.Context(), c)
}
