package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"ciphera/internal/relayserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	srv := relayserver.New(log)
	log.Info().Str("addr", *addr).Msg("relay listening")
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatal().Err(err).Msg("relay exited")
	}
}
