package main

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-web/internal/terminal"
	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

func newPlayCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal: type a guess per line, ! for a new word",
		Args:  cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			// Keep routine session logs off the board unless asked for.
			if !cmd.Flags().Changed("log-level") {
				cfg.logLevel = "warn"
				_ = setupLogging(cfg)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var local []string
			if cfg.wordsURL == "" {
				if err := words.Init(); err != nil {
					return err
				}
				local = words.Answers()
			}
			return terminal.Play(cmd.Context(), cfg.source(local), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
