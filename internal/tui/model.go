// Package tui is the terminal host for a game.
//
// The bubbletea model converts key presses into input.Events, routes them,
// and publishes a snapshot to the session store after each one. Rendering
// lives in view.go.
package tui

import (
	"context"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-play/internal/input"
	"github.com/robalobadob/wordle/apps/go-play/internal/store"
)

const defaultWidth = 60

// Model is the bubbletea model for one play session.
type Model struct {
	router  *input.Router
	store   store.Store
	session string

	keys   keyMap
	help   help.Model
	width  int
	status string

	// copy writes to the system clipboard; swapped out in tests.
	copy func(string) error
}

// New returns a model driving the router's game. The store may be nil.
func New(r *input.Router, st store.Store, sessionID string) Model {
	m := Model{
		router:  r,
		store:   st,
		session: sessionID,
		keys:    defaultKeys(),
		help:    help.New(),
		width:   defaultWidth,
		copy:    clipboard.WriteAll,
	}
	m.save()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Share):
			m.share()
			return m, nil
		case key.Matches(msg, m.keys.Help) && !m.inAlphabet(msg):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		ev, ok := toEvent(msg)
		if !ok {
			return m, nil
		}
		act := m.router.Handle(ev)
		if act.Kind != input.Ignored {
			m.status = ""
			m.save()
		}
	}
	return m, nil
}

// share copies the emoji grid once the round is won or lost.
func (m *Model) share() {
	g := m.router.Game()
	if !g.Finished() {
		m.status = "finish the game to share it"
		return
	}
	if err := m.copy(g.Share()); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
		m.status = "could not copy to clipboard"
		return
	}
	m.status = "result copied to clipboard"
}

func (m Model) save() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(context.Background(), m.session, m.router.Game().Snapshot()); err != nil {
		log.Warn().Err(err).Str("session", m.session).Msg("save snapshot")
	}
}

func (m Model) inAlphabet(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && len(msg.Runes) == 1 &&
		strings.ContainsRune(m.router.Game().Config().Alphabet, unicode.ToLower(msg.Runes[0]))
}

// toEvent converts a terminal key press to a router event. Latin letters
// also carry their legacy key code.
func toEvent(msg tea.KeyMsg) (input.Event, bool) {
	switch msg.Type {
	case tea.KeyBackspace:
		return input.Event{Key: input.KeyBackspace}, true
	case tea.KeyEnter:
		return input.Event{Key: input.KeyEnter}, true
	case tea.KeyEsc:
		return input.Event{Key: input.KeyEscape}, true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return input.Event{}, false
		}
		r := msg.Runes[0]
		ev := input.Event{Key: string(r)}
		if u := unicode.ToUpper(r); u >= 'A' && u <= 'Z' {
			ev.Code = int(u)
		}
		return ev, true
	}
	return input.Event{}, false
}
