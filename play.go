// play.go
//
// `play` command (also the root default).
// Responsibilities:
//   - Build a session: game, notifier sinks, snapshot store.
//   - Start the spectator server when stream.addr is set.
//   - Run the terminal UI with logs redirected to log.file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-play/internal/config"
	"github.com/robalobadob/wordle/apps/go-play/internal/game"
	"github.com/robalobadob/wordle/apps/go-play/internal/history"
	"github.com/robalobadob/wordle/apps/go-play/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-play/internal/input"
	"github.com/robalobadob/wordle/apps/go-play/internal/notify"
	"github.com/robalobadob/wordle/apps/go-play/internal/store"
	"github.com/robalobadob/wordle/apps/go-play/internal/stream"
	"github.com/robalobadob/wordle/apps/go-play/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal (default)",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
	rootCmd.AddCommand(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("word", "", "target word (overrides config)")
	cmd.Flags().String("scoring", "", "scoring mode: positional or counted")
}

// applyPlayFlags copies command-line overrides into c and revalidates.
func applyPlayFlags(cmd *cobra.Command, c *config.Config) error {
	if w, _ := cmd.Flags().GetString("word"); w != "" {
		c.Game.Word = strings.ToLower(strings.TrimSpace(w))
	}
	if s, _ := cmd.Flags().GetString("scoring"); s != "" {
		c.Game.Scoring = s
	}
	return c.Validate()
}

// session wires one game to its side channels. Close releases everything in
// reverse order of construction.
type session struct {
	id       string
	game     *game.Game
	dispatch *notify.Dispatcher
	hub      *stream.Hub
	history  *history.Store
	store    store.Store
}

func newSession(c *config.Config) (*session, error) {
	s := &session{
		id:    uuid.NewString(),
		hub:   stream.NewHub(c.Stream.Replay),
		store: store.NewMemoryStore(),
	}

	sinks := []notify.Sink{notify.LogSink{}, s.hub}
	if c.History.On() {
		h, err := history.Open(c.History.DSN)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		s.history = h
		sinks = append(sinks, h)
	}

	s.dispatch = notify.NewDispatcher(s.id, sinks...)
	g, err := game.New(c.GameConfig(), s.dispatch)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.dispatch.Bind(g)
	s.game = g
	return s, nil
}

// server builds the spectator server for this session.
func (s *session) server(c *config.Config) *httpserver.Server {
	opts := httpserver.Options{
		Store:        s.store,
		Hub:          s.hub,
		Secret:       c.Stream.Secret,
		PasswordHash: c.Stream.PasswordHash,
		TokenTTL:     c.Stream.TokenTTL.Duration(),
	}
	if s.history != nil {
		opts.History = s.history
	}
	return httpserver.New(opts)
}

func (s *session) Close() {
	s.dispatch.Close()
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			log.Warn().Err(err).Msg("close history")
		}
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// The terminal belongs to the UI from here on.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	log.Info().Str("session", s.id).Str("gameId", s.game.ID()).Msg("session started")

	if cfg.Stream.Addr != "" {
		if err := s.server(cfg).Start(ctx, cfg.Stream.Addr); err != nil {
			return fmt.Errorf("start spectator server: %w", err)
		}
	}

	p := tea.NewProgram(tui.New(input.NewRouter(s.game), s.store, s.id), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		log.Info().Msg("interrupted")
	}
	log.Info().Str("session", s.id).Int("rounds", s.game.Round()).Msg("session ended")
	return nil
}
