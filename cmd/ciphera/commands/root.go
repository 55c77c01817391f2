package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ciphera/internal/config"
)

var (
	home       string
	passphrase string
	relayURL   string
	room       string

	log zerolog.Logger
)

// Execute builds and runs the ciphera root command.
func Execute() error {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "ciphera",
		Short: "End-to-end encrypted handshake CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.ResolveHome(home)
			if err != nil {
				return err
			}
			home = resolved
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.ciphera)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the identity file")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay WebSocket base URL, e.g. ws://127.0.0.1:8080")
	root.PersistentFlags().StringVar(&room, "room", "default", "relay room name")

	root.AddCommand(initCmd(), fingerprintCmd(), listenCmd(), connectCmd())
	return root.Execute()
}
