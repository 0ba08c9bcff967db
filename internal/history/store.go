// internal/history/store.go
//
// SQLite-backed log of submitted words.
// Responsibilities:
//   - Record every submission (Store is a notify.Sink).
//   - Read back recent submissions and per-session summaries.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/go-play/internal/notify"
)

const defaultLimit = 20

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the submission log. It is a notify.Sink.
type Store struct{ db *sql.DB }

// Open opens dsn, applies migrations and returns a ready Store.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// Deliver implements notify.Sink by recording the submission.
func (s *Store) Deliver(ctx context.Context, sub notify.Submission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions(session_id, game_id, round, attempt, word, created_at)
VALUES(?,?,?,?,?,?)`,
		sub.SessionID, sub.GameID, sub.Round, sub.Attempt, sub.Word, sub.At.UTC().Format(timeLayout),
	)
	return err
}

// Recent returns the newest submissions first. limit <= 0 means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]notify.Submission, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, game_id, round, attempt, word, created_at
FROM submissions
ORDER BY id DESC
LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notify.Submission, 0, limit)
	for rows.Next() {
		var sub notify.Submission
		var created string
		if err := rows.Scan(&sub.SessionID, &sub.GameID, &sub.Round, &sub.Attempt, &sub.Word, &created); err != nil {
			return nil, err
		}
		at, err := time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("submission created_at %q: %w", created, err)
		}
		sub.At = at
		out = append(out, sub)
	}
	return out, rows.Err()
}

// SessionRow summarizes one play session.
type SessionRow struct {
	SessionID   string `json:"sessionId"`
	Games       int    `json:"games"`
	Submissions int    `json:"submissions"`
	LastAt      string `json:"lastAt"`
}

// Sessions lists sessions by most recent activity. limit <= 0 means 20.
func (s *Store) Sessions(ctx context.Context, limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, COUNT(DISTINCT game_id), COUNT(1), MAX(created_at)
FROM submissions
GROUP BY session_id
ORDER BY MAX(created_at) DESC
LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var r SessionRow
		if err := rows.Scan(&r.SessionID, &r.Games, &r.Submissions, &r.LastAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
