package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tokenvote/internal/client/client"
	"github.com/dmitrijs2005/tokenvote/internal/filex"
	"github.com/spf13/cobra"
)

func (a *App) issueCommand() *cobra.Command {
	var (
		count  int
		length int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a batch of voting tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c client.Client) error {
				tokens, err := c.IssueTokens(ctx, count, length)
				if err != nil {
					return err
				}
				body := strings.Join(tokens, "\n") + "\n"
				if out == "" {
					_, err := fmt.Fprint(a.out, body)
					return err
				}
				if err := filex.WriteFileAtomic(out, []byte(body), 0o600); err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%d tokens written to %s\n", len(tokens), out)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of tokens (0 = server default)")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "token length (0 = server default)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write tokens to this file instead of stdout")
	return cmd
}
