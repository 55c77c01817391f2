package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciphera/internal/config"
	"ciphera/internal/identitystore"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the local identity's fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identitystore.Load(config.IdentityPath(home), passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Fingerprint: %s\n", id.Fingerprint)
			return nil
		},
	}
}
