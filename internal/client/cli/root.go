package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// RootCommand assembles voteadmin and its subcommands.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "voteadmin",
		Short:         "Administer a token voting server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "JSON config file")
	pf.StringVarP(&a.addr, "addr", "a", "127.0.0.1:50051", "server gRPC address")
	pf.StringVar(&a.secret, "secret", "", "admin secret (default $"+EnvAdminSecret+" or prompt)")
	pf.DurationVar(&a.timeout, "timeout", 2*time.Minute, "per-request timeout")

	root.AddCommand(
		a.issueCommand(),
		a.statsCommand(),
		a.exportCommand(),
		a.pubkeyCommand(),
		a.genkeysCommand(),
		a.verifyCommand(),
	)
	return root
}
