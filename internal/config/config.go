// Package config loads runtime settings for the wordle binary.
//
// Settings come from, in increasing priority: built-in defaults, an optional
// YAML file, and environment variables. String values in the file may use
// ${VAR} or ${VAR:-default}.
//
// Example configuration:
//
//	game:
//	  word: coder
//	  attempts: 6
//	  letters: 5
//	  scoring: positional
//
//	log:
//	  level: info
//	  file: wordle.log
//
//	history:
//	  enabled: true
//	  dsn: ./data/wordle.db
//
//	stream:
//	  addr: ":5175"
//	  secret: ${STREAM_SECRET:-}
//	  token_ttl: 24h
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-play/internal/game"
)

const (
	defaultWord     = "coder"
	defaultLogLevel = "info"
	defaultLogFile  = "wordle.log"
	defaultDSN      = "./data/wordle.db"
	defaultTokenTTL = 24 * time.Hour
	defaultReplay   = 20
)

// Config is the root configuration structure.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Stream  StreamConfig  `yaml:"stream"`
}

// GameConfig mirrors game.Config.
type GameConfig struct {
	Word     string `yaml:"word"`
	Attempts int    `yaml:"attempts"`
	Letters  int    `yaml:"letters"`
	Alphabet string `yaml:"alphabet"`
	Scoring  string `yaml:"scoring"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	// Level is a zerolog level name. Defaults to info.
	Level string `yaml:"level"`

	// File receives logs while the terminal UI is running.
	File string `yaml:"file"`
}

// HistoryConfig controls the SQLite submission log.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// On reports whether history is enabled. Unset means enabled.
func (h HistoryConfig) On() bool { return h.Enabled == nil || *h.Enabled }

// StreamConfig controls the spectator HTTP server. An empty Addr disables it.
type StreamConfig struct {
	Addr string `yaml:"addr"`

	// Secret signs spectator tokens. Empty leaves the server open.
	Secret string `yaml:"secret"`

	// PasswordHash is a bcrypt hash exchanged for a token at /auth/token.
	PasswordHash string `yaml:"password_hash"`

	TokenTTL Duration `yaml:"token_ttl"`

	// Replay is how many recent submissions a new stream subscriber receives.
	Replay int `yaml:"replay"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// GameConfig converts to the engine's configuration.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Word:     c.Game.Word,
		Attempts: c.Game.Attempts,
		Letters:  c.Game.Letters,
		Alphabet: c.Game.Alphabet,
		Scoring:  game.Scoring(c.Game.Scoring),
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path (if non-empty), applies environment overrides and defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML. Empty data yields the defaults plus
// environment overrides.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		expanded, err := expandEnvVars(string(data))
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyEnv lets the environment override the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("WORDLE_WORD"); v != "" {
		c.Game.Word = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HISTORY_DSN"); v != "" {
		c.History.DSN = v
	}
	if v := os.Getenv("STREAM_ADDR"); v != "" {
		c.Stream.Addr = v
	}
	if v := os.Getenv("STREAM_SECRET"); v != "" {
		c.Stream.Secret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Game.Word == "" {
		c.Game.Word = defaultWord
	}
	gc := c.GameConfig().WithDefaults()
	c.Game.Attempts, c.Game.Letters = gc.Attempts, gc.Letters
	c.Game.Alphabet, c.Game.Scoring = gc.Alphabet, string(gc.Scoring)

	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = defaultLogFile
	}
	if c.History.DSN == "" {
		c.History.DSN = defaultDSN
	}
	if c.Stream.TokenTTL == 0 {
		c.Stream.TokenTTL = Duration(defaultTokenTTL)
	}
	if c.Stream.Replay == 0 {
		c.Stream.Replay = defaultReplay
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.GameConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("game: %w", err))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Stream.TokenTTL.Duration() < 0 {
		errs = append(errs, errors.New("stream.token_ttl must not be negative"))
	}
	if c.Stream.Replay < 0 {
		errs = append(errs, errors.New("stream.replay must not be negative"))
	}
	if c.Stream.PasswordHash != "" && c.Stream.Secret == "" {
		errs = append(errs, errors.New("stream.password_hash requires stream.secret"))
	}

	return errors.Join(errs...)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := envVarPattern.FindStringSubmatch(match)
		name := sub[1]
		hasDefault := sub[2] != ""

		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if hasDefault {
			return sub[3]
		}
		firstErr = fmt.Errorf("environment variable %q is not set", name)
		return match
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
