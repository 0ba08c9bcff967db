// internal/notify/notify.go
//
// Side channel for submitted words.
// Responsibilities:
//   - Dispatcher: the game's Notifier. Enqueues without blocking and delivers
//     to every Sink from one background goroutine.
//   - LogSink: writes each submission to the log ("realtime stream" stub).
//
// Notes:
//   - Delivery is best effort. A full queue drops the submission; a failing
//     sink is logged and skipped. Neither ever reaches the game.

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultQueueSize = 64
	deliverTimeout   = 2 * time.Second
)

// Submission is one submitted attempt as seen by observers.
type Submission struct {
	SessionID string    `json:"sessionId"`
	GameID    string    `json:"gameId"`
	Round     int       `json:"round"`
	Attempt   int       `json:"attempt"`
	Word      string    `json:"word"`
	At        time.Time `json:"at"`
}

// Sink receives submissions.
type Sink interface {
	Deliver(ctx context.Context, s Submission) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s Submission) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, s Submission) error { return f(ctx, s) }

// GameInfo supplies the identity of the game a submission belongs to.
// *game.Game satisfies it.
type GameInfo interface {
	ID() string
	Round() int
}

// Dispatcher fans submissions out to sinks asynchronously.
type Dispatcher struct {
	session string
	sinks   []Sink
	queue   chan Submission
	done    chan struct{}

	mu     sync.Mutex
	game   GameInfo
	closed bool
}

// NewDispatcher starts the delivery goroutine. Call Close to stop it.
func NewDispatcher(sessionID string, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		session: sessionID,
		sinks:   sinks,
		queue:   make(chan Submission, defaultQueueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Bind attaches the game whose ID and round stamp each submission.
// The game is built with the dispatcher as its notifier, so binding happens
// after construction.
func (d *Dispatcher) Bind(g GameInfo) {
	d.mu.Lock()
	d.game = g
	d.mu.Unlock()
}

// NotifySubmission implements game.Notifier. It never blocks.
func (d *Dispatcher) NotifySubmission(attempt int, word string) {
	s := Submission{
		SessionID: d.session,
		Attempt:   attempt,
		Word:      word,
		At:        time.Now().UTC(),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.game != nil {
		s.GameID, s.Round = d.game.ID(), d.game.Round()
	}
	if d.closed {
		log.Warn().Str("word", word).Msg("dispatcher closed, submission dropped")
		return
	}
	select {
	case d.queue <- s:
	default:
		log.Warn().Str("word", word).Int("attempt", attempt).Msg("notify queue full, submission dropped")
	}
}

// Close stops accepting submissions and waits for queued ones to be
// delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for s := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, s)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, s Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("word", s.Word).Msg("sink panicked")
		}
	}()
	if err := sink.Deliver(ctx, s); err != nil {
		log.Warn().Err(err).Str("word", s.Word).Int("attempt", s.Attempt).Msg("deliver submission")
	}
}

// LogSink logs every submission.
type LogSink struct{}

// Deliver implements Sink.
func (LogSink) Deliver(_ context.Context, s Submission) error {
	log.Info().
		Str("session", s.SessionID).
		Str("gameId", s.GameID).
		Int("attempt", s.Attempt).
		Msgf("transmitting %q to realtime stream", s.Word)
	return nil
}
