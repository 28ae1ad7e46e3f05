package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/tokenvote/internal/client/client"
	"github.com/spf13/cobra"
)

func (a *App) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show token and tally counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c client.Client) error {
				st, err := c.Stats(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "issued\t%d\n", st.Total)
				fmt.Fprintf(tw, "used\t%d\n", st.Used)
				fmt.Fprintf(tw, "unused\t%d\n", st.Unused)
				for _, pc := range st.PerCandidate {
					fmt.Fprintf(tw, "  %s\t%d\n", pc.CandidateID, pc.Count)
				}
				return tw.Flush()
			})
		},
	}
}
