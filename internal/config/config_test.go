package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Game.Word != "coder" {
		t.Errorf("Game.Word = %q, want %q", cfg.Game.Word, "coder")
	}
	if cfg.Game.Attempts != 6 || cfg.Game.Letters != 5 {
		t.Errorf("dimensions = %dx%d, want 6x5", cfg.Game.Attempts, cfg.Game.Letters)
	}
	if cfg.Game.Scoring != "positional" {
		t.Errorf("Game.Scoring = %q, want positional", cfg.Game.Scoring)
	}
	if !cfg.History.On() {
		t.Error("History.On() = false, want default true")
	}
	if cfg.Stream.TokenTTL.Duration() != 24*time.Hour {
		t.Errorf("Stream.TokenTTL = %v, want 24h", cfg.Stream.TokenTTL.Duration())
	}
	if cfg.Stream.Addr != "" {
		t.Errorf("Stream.Addr = %q, want disabled by default", cfg.Stream.Addr)
	}
}

func TestParse_Full(t *testing.T) {
	yaml := `
game:
  word: sheep
  attempts: 8
  scoring: counted
log:
  level: debug
  file: /tmp/w.log
history:
  enabled: false
  dsn: /tmp/w.db
stream:
  addr: ":9000"
  secret: s3cret
  token_ttl: 90m
  replay: 5
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	gc := cfg.GameConfig()
	want := game.Config{Word: "sheep", Attempts: 8, Letters: 5, Alphabet: game.DefaultAlphabet, Scoring: game.ScoringCounted}
	if gc != want {
		t.Errorf("GameConfig() = %+v, want %+v", gc, want)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/w.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.History.On() {
		t.Error("History.On() = true, want false")
	}
	if cfg.Stream.Addr != ":9000" || cfg.Stream.Secret != "s3cret" || cfg.Stream.Replay != 5 {
		t.Errorf("Stream = %+v", cfg.Stream)
	}
	if cfg.Stream.TokenTTL.Duration() != 90*time.Minute {
		t.Errorf("TokenTTL = %v, want 90m", cfg.Stream.TokenTTL.Duration())
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_WORDLE_SECRET", "from-env")
	yaml := `
stream:
  secret: ${TEST_WORDLE_SECRET}
  addr: "${TEST_WORDLE_UNSET_ADDR:-:7000}"
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Stream.Secret != "from-env" {
		t.Errorf("Secret = %q, want from-env", cfg.Stream.Secret)
	}
	if cfg.Stream.Addr != ":7000" {
		t.Errorf("Addr = %q, want :7000", cfg.Stream.Addr)
	}
}

func TestParse_MissingEnvVar(t *testing.T) {
	_, err := Parse([]byte("stream:\n  secret: ${TEST_WORDLE_DEFINITELY_UNSET}\n"))
	if err == nil || !strings.Contains(err.Error(), "TEST_WORDLE_DEFINITELY_UNSET") {
		t.Errorf("Parse() error = %v, want missing variable error", err)
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("WORDLE_WORD", "ROUTE")
	t.Setenv("LOG_LEVEL", "warn")
	cfg, err := Parse([]byte("game:\n  word: coder\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Game.Word != "route" {
		t.Errorf("Game.Word = %q, want route", cfg.Game.Word)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"word length", "game:\n  word: code\n", "game:"},
		{"word outside custom alphabet", "game:\n  word: abc\n  letters: 3\n  alphabet: xyz\n", "outside the alphabet"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
		{"bad duration", "stream:\n  token_ttl: soon\n", "invalid duration"},
		{"hash without secret", "stream:\n  password_hash: abc\n", "requires stream.secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParse_GameErrorIsConfigError(t *testing.T) {
	_, err := Parse([]byte("game:\n  word: code\n"))
	if !errors.Is(err, game.ErrConfig) {
		t.Errorf("Parse() error = %v, want game.ErrConfig", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	if err := os.WriteFile(path, []byte("game:\n  word: sheep\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.Word != "sheep" {
		t.Errorf("Game.Word = %q, want sheep", cfg.Game.Word)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}
