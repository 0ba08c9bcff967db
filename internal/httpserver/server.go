// internal/httpserver/server.go
//
// HTTP server for spectators of a running game.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", POST /auth/token.
//   - Read-only endpoints (bearer token when a secret is configured):
//     GET /sessions, GET /sessions/{id}, GET /history, GET /stream.
//
// Notes:
//   - Nothing here mutates a game. Snapshots come from the session store,
//     submissions from the stream hub and the history database.
//   - /stream is Server-Sent Events and is exempt from the handler timeout.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-play/internal/history"
	"github.com/robalobadob/wordle/apps/go-play/internal/notify"
	"github.com/robalobadob/wordle/apps/go-play/internal/store"
	"github.com/robalobadob/wordle/apps/go-play/internal/stream"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// History is the read side of the submission log.
type History interface {
	Recent(ctx context.Context, limit int) ([]notify.Submission, error)
	Sessions(ctx context.Context, limit int) ([]history.SessionRow, error)
}

// Options configures a Server.
type Options struct {
	Store   store.Store
	Hub     *stream.Hub
	History History // nil when history is disabled

	// Secret signs and verifies bearer tokens. Empty disables auth.
	Secret string
	// PasswordHash is the bcrypt hash accepted by POST /auth/token.
	PasswordHash string
	TokenTTL     time.Duration
}

// Server bundles router and read-only dependencies.
type Server struct {
	r    *chi.Mux
	opts Options
	http *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), opts: opts}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-play","endpoints":["/health","POST /auth/token","/sessions","/sessions/{id}","/history","/history/sessions","/stream"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Post("/auth/token", s.handleToken)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.With(chimw.Timeout(10*time.Second)).Get("/sessions", s.handleSessions)
		r.With(chimw.Timeout(10*time.Second)).Get("/sessions/{id}", s.handleSession)
		r.With(chimw.Timeout(10*time.Second)).Get("/history", s.handleHistory)
		r.With(chimw.Timeout(10*time.Second)).Get("/history/sessions", s.handleHistorySessions)
		r.Get("/stream", s.handleStream)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start listens on addr and serves in the background until ctx is
// cancelled. It returns once the listener is bound.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.http = &http.Server{
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http server shutdown")
		}
	}()

	log.Info().Str("addr", ln.Addr().String()).Bool("auth", s.opts.Secret != "").Msg("spectator server listening")
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// writeError writes {"error":code}.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ sessions -----------------------------------

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.opts.Store.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list sessions")
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}

	type sessionRow struct {
		SessionID string    `json:"sessionId"`
		GameID    string    `json:"gameId"`
		Round     int       `json:"round"`
		Attempt   int       `json:"attempt"`
		Solved    bool      `json:"solved"`
		Over      bool      `json:"over"`
		Finished  bool      `json:"finished"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	out := make([]sessionRow, 0, len(list))
	for _, e := range list {
		out = append(out, sessionRow{
			SessionID: e.SessionID,
			GameID:    e.Snapshot.ID,
			Round:     e.Snapshot.Round,
			Attempt:   e.Snapshot.Cursor.Attempt,
			Solved:    e.Snapshot.Solved,
			Over:      e.Snapshot.Over,
			Finished:  e.Snapshot.Finished,
			UpdatedAt: e.Snapshot.UpdatedAt,
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.opts.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("get session")
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// ------------------------------ history ------------------------------------

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	rows, err := s.opts.History.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("history recent")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rows == nil {
		rows = []notify.Submission{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}

func (s *Server) handleHistorySessions(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	rows, err := s.opts.History.Sessions(r.Context(), defaultHistoryLimit)
	if err != nil {
		log.Error().Err(err).Msg("history sessions")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rows == nil {
		rows = []history.SessionRow{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}
