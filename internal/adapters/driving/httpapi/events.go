package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/docwatch/internal/core/domain"
	"github.com/custodia-labs/docwatch/internal/logger"
)

// handleEvents streams change messages as server-sent events until the
// client disconnects or the feed drops the subscription.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	id, messages := s.feed.Subscribe(ctx)
	defer s.feed.Unsubscribe(id)
	logger.Debug("event stream %s opened", id)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				logger.Debug("event stream %s dropped", id)
				return
			}
			if err := writeEvent(w, msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent formats one message in the event-stream wire format.
func writeEvent(w io.Writer, msg domain.ChangeMessage) error {
	var err error
	switch msg.Kind {
	case domain.MessageFileChanged:
		_, err = fmt.Fprintf(w, "event: %s\ndata: {\"timestamp\": %d}\n\n", msg.Kind, msg.Timestamp)
	case domain.MessageKeepAlive:
		_, err = fmt.Fprintf(w, "event: %s\ndata: keep-alive\n\n", msg.Kind)
	}
	return err
}
