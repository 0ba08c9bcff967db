// check.go
//
// `check` command: validate configuration and print a summary.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd validates configuration without starting a game.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration",
	Long: `Load .env, the config file and environment overrides, validate the
result and print a summary. Useful before starting a long-running session.

Exit codes:
  0 - configuration is valid
  1 - configuration is invalid (details on stderr)`,
	RunE: runCheck,
}

func init() {
	addPlayFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Board:    %d attempts x %d letters\n", cfg.Game.Attempts, cfg.Game.Letters)
	fmt.Fprintf(out, "  Scoring:  %s\n", cfg.Game.Scoring)
	fmt.Fprintf(out, "  Log:      %s (%s)\n", cfg.Log.File, cfg.Log.Level)
	if cfg.History.On() {
		fmt.Fprintf(out, "  History:  %s\n", cfg.History.DSN)
	} else {
		fmt.Fprintf(out, "  History:  disabled\n")
	}
	if cfg.Stream.Addr == "" {
		fmt.Fprintf(out, "  Stream:   disabled\n")
	} else {
		fmt.Fprintf(out, "  Stream:   %s (auth %v)\n", cfg.Stream.Addr, cfg.Stream.Secret != "")
	}
	return nil
}
