package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/client/client"
	"github.com/dmitrijs2005/tokenvote/internal/filex"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"github.com/spf13/cobra"
)

func (a *App) exportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the signed result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c client.Client) error {
				signed, err := c.ExportResults(ctx)
				if err != nil {
					return err
				}
				// a result that fails here was damaged in transit
				if err := results.Verify(signed); err != nil {
					return fmt.Errorf("server returned an unverifiable result: %w", err)
				}
				data, err := json.MarshalIndent(signed, "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
				if out == "" {
					_, err := a.out.Write(data)
					return err
				}
				if err := filex.WriteFileAtomic(out, data, 0o644); err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "result written to %s\n", out)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result to this file instead of stdout")
	return cmd
}
