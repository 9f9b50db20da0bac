package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const releaseVersion = "0.1.0"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cfg := &Config{}
	err := newCmd(cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("wordle exited")
	}
}
