package commands

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"ciphera/internal/config"
	"ciphera/internal/handshake"
	"ciphera/internal/identitystore"
	"ciphera/internal/pinstore"
	"ciphera/internal/transport"
)

func listenCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Accept one incoming TCP connection and run the server side of the handshake",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identitystore.Load(config.IdentityPath(home), passphrase)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			defer ln.Close()
			log.Info().Str("addr", addr).Msg("listening")

			conn, err := ln.Accept()
			if err != nil {
				return err
			}
			fr := transport.NewTCP(conn)
			defer fr.Close()

			res, err := handshake.RunServer(context.Background(), fr, id)
			if err != nil {
				return err
			}
			fmt.Printf("Peer fingerprint: %s\n", res.PeerFingerprint)

			pins := pinstore.Open(config.PinPath(home))
			firstPin, err := pins.CheckAndPin(pinstore.Key(addr, "direct"), res.PeerFingerprint)
			if err != nil {
				return err
			}
			if firstPin {
				log.Info().Str("addr", addr).Msg("pinned peer on first connection")
			}

			return runChat(fr, res, id.Fingerprint.Short())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9443", "address to listen on")
	return cmd
}
