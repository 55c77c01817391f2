package commands

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"ciphera/internal/config"
	"ciphera/internal/domain"
	"ciphera/internal/handshake"
	"ciphera/internal/identitystore"
	"ciphera/internal/pinstore"
	"ciphera/internal/transport"
)

func connectCmd() *cobra.Command {
	var addr string
	var asServer bool
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a peer (direct TCP, or via a relay room) and run the handshake",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identitystore.Load(config.IdentityPath(home), passphrase)
			if err != nil {
				return err
			}

			var fr domain.FrameReadWriter
			var pinKey string
			if relayURL != "" {
				fr, pinKey, err = dialRelay(relayURL, room)
			} else {
				fr, pinKey, err = dialTCP(addr)
			}
			if err != nil {
				return err
			}
			defer fr.Close()

			var res handshake.Result
			if asServer {
				res, err = handshake.RunServer(context.Background(), fr, id)
			} else {
				res, err = handshake.RunClient(context.Background(), fr, id)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Peer fingerprint: %s\n", res.PeerFingerprint)

			pins := pinstore.Open(config.PinPath(home))
			firstPin, err := pins.CheckAndPin(pinKey, res.PeerFingerprint)
			if err != nil {
				return err
			}
			if firstPin {
				log.Info().Str("key", pinKey).Msg("pinned peer on first connection")
			}

			return runChat(fr, res, id.Fingerprint.Short())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9443", "peer address for direct TCP mode")
	cmd.Flags().BoolVar(&asServer, "server", false, "play the server handshake role (both relay room participants must pick opposite roles)")
	return cmd
}

func dialTCP(addr string) (domain.FrameReadWriter, string, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, "", err
	}
	return transport.NewTCP(conn), pinstore.Key(addr, "direct"), nil
}

func dialRelay(base, room string) (domain.FrameReadWriter, string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("room", room)
	u.RawQuery = q.Encode()
	if u.Path == "" {
		u.Path = "/ws"
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	return transport.NewWebSocket(conn), pinstore.Key(u.Host, room), nil
}
