package httpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
	"github.com/robalobadob/wordle/apps/go-play/internal/history"
	"github.com/robalobadob/wordle/apps/go-play/internal/notify"
	"github.com/robalobadob/wordle/apps/go-play/internal/store"
	"github.com/robalobadob/wordle/apps/go-play/internal/stream"
)

type fakeHistory struct {
	rows  []notify.Submission
	limit int
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]notify.Submission, error) {
	f.limit = limit
	return f.rows, nil
}

func (f *fakeHistory) Sessions(context.Context, int) ([]history.SessionRow, error) {
	return []history.SessionRow{{SessionID: "s1", Games: 1, Submissions: len(f.rows)}}, nil
}

func do(t *testing.T, s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.Config{Word: "coder"}, nil)
	if err != nil {
		t.Fatalf("game.New() error = %v", err)
	}
	return g
}

func TestHealth(t *testing.T) {
	s := New(Options{Store: store.NewMemoryStore()})
	rec := do(t, s, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestNotFound(t *testing.T) {
	s := New(Options{Store: store.NewMemoryStore()})
	rec := do(t, s, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "not_found" {
		t.Errorf("got %d %s, want 404 not_found", rec.Code, rec.Body.String())
	}
}

func TestSessions(t *testing.T) {
	st := store.NewMemoryStore()
	s := New(Options{Store: st})

	rec := do(t, s, http.MethodGet, "/sessions/missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing session status = %d, want 404", rec.Code)
	}

	g := newGame(t)
	for _, r := range "route" {
		if err := g.AddLetter(r); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := g.Submit(); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(context.Background(), "s1", g.Snapshot()); err != nil {
		t.Fatal(err)
	}

	rec = do(t, s, http.MethodGet, "/sessions", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []struct {
		SessionID string `json:"sessionId"`
		GameID    string `json:"gameId"`
		Attempt   int    `json:"attempt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].SessionID != "s1" || list[0].GameID != g.ID() || list[0].Attempt != 1 {
		t.Errorf("list = %+v", list)
	}

	rec = do(t, s, http.MethodGet, "/sessions/s1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var snap map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if _, ok := snap["word"]; ok {
		t.Error("snapshot of a running game exposes the word")
	}
}

func TestHistory(t *testing.T) {
	s := New(Options{Store: store.NewMemoryStore()})
	rec := do(t, s, http.MethodGet, "/history", "", "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "history_disabled" {
		t.Errorf("disabled: got %d %s", rec.Code, rec.Body.String())
	}

	h := &fakeHistory{rows: []notify.Submission{{SessionID: "s1", Word: "route"}}}
	s = New(Options{Store: store.NewMemoryStore(), History: h})

	tests := []struct {
		query     string
		status    int
		wantLimit int
	}{
		{"", http.StatusOK, defaultHistoryLimit},
		{"?limit=5", http.StatusOK, 5},
		{"?limit=100000", http.StatusOK, maxHistoryLimit},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h.limit = 0
			rec := do(t, s, http.MethodGet, "/history"+tt.query, "", "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if h.limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", h.limit, tt.wantLimit)
			}
		})
	}

	rec = do(t, s, http.MethodGet, "/history/sessions", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"s1"`) {
		t.Errorf("history sessions: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("spectate-me"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	s := New(Options{
		Store:        store.NewMemoryStore(),
		Secret:       "test-secret",
		PasswordHash: string(hash),
		TokenTTL:     time.Minute,
	})

	if rec := do(t, s, http.MethodGet, "/sessions", "", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/sessions", "", "garbage"); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Errorf("health must stay public, status = %d", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/auth/token", `{"password":"wrong-pass"}`, "")
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "invalid_password" {
		t.Errorf("wrong password: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/auth/token", `{"password":"spectate-me"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d body %s", rec.Code, rec.Body.String())
	}
	var res tokenRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Token == "" || time.Until(res.ExpiresAt) <= 0 {
		t.Fatalf("token response = %+v", res)
	}

	if rec := do(t, s, http.MethodGet, "/sessions", "", res.Token); rec.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", rec.Code)
	}

	other, _, err := SignToken("other-secret", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, s, http.MethodGet, "/sessions", "", other); rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign token: status = %d, want 401", rec.Code)
	}

	expired, _, err := SignToken("test-secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, s, http.MethodGet, "/sessions", "", expired); rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status = %d, want 401", rec.Code)
	}
}

func TestAuthDisabled(t *testing.T) {
	s := New(Options{Store: store.NewMemoryStore()})
	rec := do(t, s, http.MethodPost, "/auth/token", `{"password":"whatever1"}`, "")
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "auth_disabled" {
		t.Errorf("got %d %s, want 404 auth_disabled", rec.Code, rec.Body.String())
	}
}

func TestHashPassword(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Error("HashPassword(short) error = nil")
	}
	h, err := HashPassword("long-enough")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(h), []byte("long-enough")) != nil {
		t.Error("hash does not verify")
	}
}

func TestStream(t *testing.T) {
	hub := stream.NewHub(5)
	hub.Publish(notify.Submission{SessionID: "s1", Attempt: 0, Word: "route"})

	ts := httptest.NewServer(New(Options{Store: store.NewMemoryStore(), Hub: hub}).Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/stream", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("Content-Type = %q", got)
	}

	sc := bufio.NewScanner(resp.Body)
	next := func() notify.Submission {
		t.Helper()
		for sc.Scan() {
			line := sc.Text()
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var sub notify.Submission
				if err := json.Unmarshal([]byte(data), &sub); err != nil {
					t.Fatalf("decode %q: %v", data, err)
				}
				return sub
			}
		}
		t.Fatalf("stream ended: %v", sc.Err())
		return notify.Submission{}
	}

	if got := next(); got.Word != "route" {
		t.Errorf("replayed word = %q, want route", got.Word)
	}

	// The handler subscribes before replaying, so once the replay has arrived
	// live submissions are delivered.
	hub.Publish(notify.Submission{SessionID: "s1", Attempt: 1, Word: "coder"})
	if got := next(); got.Word != "coder" || got.Attempt != 1 {
		t.Errorf("live submission = %+v", got)
	}
}

func TestStreamDisabled(t *testing.T) {
	s := New(Options{Store: store.NewMemoryStore()})
	rec := do(t, s, http.MethodGet, "/stream", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStream_SkipsUnencodableFrame(t *testing.T) {
	var logs lockedBuffer
	prevLogger, prevEncode := log.Logger, encodeFrame
	log.Logger = zerolog.New(&logs)
	encodeFrame = func(sub notify.Submission) ([]byte, error) {
		if sub.Word == "bad" {
			return nil, errors.New("cannot encode")
		}
		return json.Marshal(sub)
	}
	t.Cleanup(func() { log.Logger, encodeFrame = prevLogger, prevEncode })

	hub := stream.NewHub(5)
	hub.Publish(notify.Submission{Attempt: 0, Word: "bad"})
	hub.Publish(notify.Submission{Attempt: 1, Word: "coder"})

	ts := httptest.NewServer(New(Options{Store: store.NewMemoryStore(), Hub: hub}).Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/stream", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	var first string
	for sc.Scan() {
		if data, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
			first = data
			break
		}
	}
	if !strings.Contains(first, `"coder"`) {
		t.Errorf("first frame = %q, want the encodable submission", first)
	}
	if got := logs.String(); !strings.Contains(got, "encode stream frame") || !strings.Contains(got, `"level":"warn"`) {
		t.Errorf("logs = %q, want a warning for the skipped frame", got)
	}
}
