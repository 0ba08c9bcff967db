// internal/httpserver/stream.go
//
// Server-Sent Events for live submissions.
// Responsibilities:
//   - GET /stream: replay the hub's recent submissions, then forward live ones.
//   - Per-frame write deadlines where the connection supports them.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-play/internal/notify"
)

const sseWriteTimeout = 10 * time.Second

// encodeFrame renders one submission for the stream.
var encodeFrame = func(sub notify.Submission) ([]byte, error) { return json.Marshal(sub) }

// handleStream sends submissions as Server-Sent Events: the replay buffer
// first, then live submissions until the client or server goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.opts.Hub == nil {
		writeError(w, http.StatusNotFound, "stream_disabled")
		return
	}
	if _, ok := w.(http.Flusher); !ok {
		writeError(w, http.StatusInternalServerError, "sse_unsupported")
		return
	}

	rc := http.NewResponseController(w)
	deadlines := true

	send := func(sub notify.Submission) error {
		data, err := encodeFrame(sub)
		if err != nil {
			log.Warn().Err(err).Str("word", sub.Word).Int("attempt", sub.Attempt).Msg("encode stream frame")
			return nil
		}
		if deadlines {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				deadlines = false
			}
		}
		if _, err := fmt.Fprintf(w, "event: submission\ndata: %s\n\n", data); err != nil {
			return err
		}
		return rc.Flush()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	ch, replay := s.opts.Hub.SubscribeWithReplay()
	defer s.opts.Hub.Unsubscribe(ch)
	log.Debug().Str("remote", r.RemoteAddr).Int("replay", len(replay)).Msg("stream subscriber joined")

	for _, sub := range replay {
		if err := send(sub); err != nil {
			return
		}
	}

	for {
		select {
		case sub, ok := <-ch:
			if !ok {
				return
			}
			if err := send(sub); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}
