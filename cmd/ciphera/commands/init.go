package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ciphera/internal/config"
	"ciphera/internal/identitystore"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate an identity keypair and store it, encrypted, on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, err := identitystore.Create(config.IdentityPath(home), passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("Identity created.\nFingerprint: %s\n", id.Fingerprint)
			return nil
		},
	}
}
