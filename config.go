package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robalobadob/wordle/apps/go-web/internal/words"
)

type Config struct {
	bind         string
	clientOrigin string
	fetchTimeout time.Duration
	logFormat    string
	logLevel     string
	port         int
	wordsURL     string
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.fetchTimeout < 0 {
		return errors.New("--fetch-timeout must not be negative")
	}
	if c.wordsURL != "" {
		u, err := url.Parse(c.wordsURL)
		if err != nil {
			return fmt.Errorf("invalid --words-url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid --words-url (must be http or https): %s", c.wordsURL)
		}
	}
	switch c.logFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid --log-format (must be console or json): %s", c.logFormat)
	}
	return nil
}

// source returns the remote word list when one is configured, otherwise the
// local list.
func (c *Config) source(local []string) words.Source {
	if c.wordsURL != "" {
		return words.NewHTTPSource(c.wordsURL, c.fetchTimeout)
	}
	return words.NewListSource(local)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("WORDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "wordle",
		Short:   "Guess the five-letter word in six tries, in a browser or a terminal.",
		Args:    cobra.NoArgs,
		Version: releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return setupLogging(cfg)
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: WORDLE_BIND)")
	fs.StringVar(&cfg.clientOrigin, "client-origin", "http://localhost:5173", "additional origin allowed to fetch words and open game sockets, empty for none (env: WORDLE_CLIENT_ORIGIN)")
	fs.DurationVar(&cfg.fetchTimeout, "fetch-timeout", 10*time.Second, "timeout for fetching the word list, 0 for none (env: WORDLE_FETCH_TIMEOUT)")
	fs.StringVar(&cfg.logFormat, "log-format", "console", "log output format: console or json (env: WORDLE_LOG_FORMAT)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "minimum log level (env: WORDLE_LOG_LEVEL)")
	fs.IntVarP(&cfg.port, "port", "p", 5175, "port to listen on (env: WORDLE_PORT)")
	fs.StringVar(&cfg.wordsURL, "words-url", "", "base URL of a server publishing "+words.Path+"; empty uses the built-in list (env: WORDLE_WORDS_URL)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newServeCmd(cfg), newPlayCmd(cfg))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("wordle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
