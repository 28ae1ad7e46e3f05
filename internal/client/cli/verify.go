package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tokenvote/internal/cryptox"
	"github.com/dmitrijs2005/tokenvote/internal/results"
	"github.com/spf13/cobra"
)

func (a *App) verifyCommand() *cobra.Command {
	var pubPath string
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check an exported result offline",
		Long: "Re-canonicalises the payload and checks the signature against the embedded public key,\n" +
			"or against --pubkey when the key was obtained separately.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var signed results.SignedResult
			if err := json.Unmarshal(data, &signed); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			if pubPath == "" {
				err = results.Verify(&signed)
			} else {
				err = verifyPinned(&signed, pubPath)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(a.out, "signature OK: %d votes, generated %s\n",
				signed.Payload.TotalRedeemed, signed.Payload.GeneratedAt)
			return err
		},
	}
	cmd.Flags().StringVar(&pubPath, "pubkey", "", "PEM public key to verify against")
	return cmd
}

func verifyPinned(signed *results.SignedResult, pubPath string) error {
	pemData, err := os.ReadFile(pubPath)
	if err != nil {
		return err
	}
	pub, err := cryptox.ParsePublicKeyPEM(pemData)
	if err != nil {
		return err
	}
	return results.VerifyWithKey(signed, pub)
}
