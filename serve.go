package main

import (
	"context"
	"net"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-web/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-web/internal/store"
	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

func newServeCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser game and the word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *Config) error {
	if err := words.Init(); err != nil {
		return err
	}

	srv := httpserver.New(ctx, store.NewMemoryStore(), httpserver.Options{
		Source:       cfg.source(words.Answers()),
		Words:        words.Answers(),
		ClientOrigin: cfg.clientOrigin,
	})

	addr := net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port))
	log.Info().
		Str("addr", addr).
		Int("answers", words.Stats()).
		Str("words_url", cfg.wordsURL).
		Str("version", releaseVersion).
		Msg("starting wordle")
	return srv.Start(addr)
}
