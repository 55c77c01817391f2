package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"ciphera/internal/domain"
	"ciphera/internal/handshake"
)

// runChat reads lines from stdin, encrypts and sends each as an application
// frame, and concurrently prints frames decrypted from the peer. It returns
// when stdin closes or a send fails. A receive-side transport error stops
// the printing loop but does not end runChat; it is returned only once
// stdin closes. A malformed or tampered frame on
// the receive side is logged and skipped; the session stays usable for the
// next one.
func runChat(fr domain.FrameReadWriter, res handshake.Result, selfID string) error {
	defer res.Session.Close()
	peerLabel := res.PeerFingerprint.Short()

	recvErr := make(chan error, 1)
	go func() {
		for {
			frame, err := fr.RecvFrame(context.Background())
			if err != nil {
				recvErr <- err
				return
			}
			pt, err := res.Session.DecryptApplication(frame)
			if err != nil {
				fmt.Fprintf(os.Stderr, "[warn] dropping frame: %v\n", err)
				continue
			}
			fmt.Printf("%s: %s\n", peerLabel, pt)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		frame, err := res.Session.EncryptApplication([]byte(line), selfID, peerLabel)
		if err != nil {
			return err
		}
		if err := fr.SendFrame(context.Background(), frame); err != nil {
			return err
		}
	}

	select {
	case err := <-recvErr:
		return err
	default:
		return scanner.Err()
	}
}
