// history.go
//
// `history` command: print recent submissions or per-session counts.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-play/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent submissions from the history database",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of rows to print")
	historyCmd.Flags().Bool("sessions", false, "summarize per session instead")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if !cfg.History.On() {
		return errors.New("history is disabled in config")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	bySession, _ := cmd.Flags().GetBool("sessions")

	h, err := history.Open(cfg.History.DSN)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer h.Close()

	out := cmd.OutOrStdout()
	if bySession {
		rows, err := h.Sessions(cmd.Context(), limit)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-36s  %5s  %11s  %s\n", "SESSION", "GAMES", "SUBMISSIONS", "LAST")
		for _, r := range rows {
			fmt.Fprintf(out, "%-36s  %5d  %11d  %s\n", r.SessionID, r.Games, r.Submissions, r.LastAt)
		}
		return nil
	}

	subs, err := h.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Fprintln(out, "no submissions yet")
		return nil
	}
	fmt.Fprintf(out, "%-20s  %-8s  %5s  %7s  %s\n", "AT", "SESSION", "ROUND", "ATTEMPT", "WORD")
	for _, s := range subs {
		fmt.Fprintf(out, "%-20s  %-8.8s  %5d  %7d  %s\n",
			s.At.Local().Format("2006-01-02 15:04:05"), s.SessionID, s.Round, s.Attempt+1, s.Word)
	}
	return nil
}
