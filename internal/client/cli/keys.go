package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) pubkeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey",
		Short: "Print the server's result-signing public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c client.Client) error {
				pub, err := c.PublicKey(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(a.out, pub)
				return err
			})
		},
	}
}

func (a *App) genkeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "genkeys",
		Short: "Make sure the server has a signing key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c client.Client) error {
				pub, created, err := c.GenerateKeys(ctx)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintln(a.out, "new key pair generated")
				} else {
					fmt.Fprintln(a.out, "existing key pair kept")
				}
				_, err = fmt.Fprint(a.out, pub)
				return err
			})
		},
	}
}
