// main.go
//
// Entry point for the wordle binary.
// Responsibilities:
//   - Root cobra command; with no subcommand it plays a game.
//   - Load .env and the optional YAML config before any command runs.
//   - Configure the global zerolog logger.
//
// Usage:
//
//	wordle                          # play with defaults
//	wordle -c wordle.yaml --word sheep
//	wordle check -c wordle.yaml     # validate configuration
//	wordle history --limit 10       # recent submissions from the history DB
//	wordle hash-password            # bcrypt hash for stream.password_hash
//	wordle version

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-play/internal/config"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

// cfg is filled in by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wordle",
	Short: "Guess the five-letter word in six tries",
	Long: `A terminal word-guessing game.

Type letters, press enter to submit a full row, backspace to delete and
esc to start over. Green tiles are in the right place, yellow tiles are in
the word but elsewhere, gray tiles are not in the word.

Configuration comes from an optional YAML file (-c), a .env file in the
working directory and the environment (WORDLE_WORD, LOG_LEVEL, HISTORY_DSN,
STREAM_ADDR, STREAM_SECRET).`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file")
	addPlayFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c
	setupLogging(cmd.ErrOrStderr(), cfg.Log.Level)
	return nil
}

// setupLogging points the global logger at w. Writers that are terminals get
// zerolog's console format.
func setupLogging(w io.Writer, level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if f, ok := w.(*os.File); ok && f == os.Stderr {
		w = zerolog.ConsoleWriter{Out: w}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skips config loading so version works with a broken config.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wordle %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
