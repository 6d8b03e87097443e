package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Lerex702/elorank/internal/board"
	"github.com/charmbracelet/log"
)

// sseHeartbeat keeps idle event streams alive through proxies.
const sseHeartbeat = 30 * time.Second

// PageHandler serves the live leaderboard page. ?partial=true returns only
// the section the page swaps in on refresh.
func PageHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		render := board.Render
		if r.URL.Query().Get("partial") == "true" {
			render = board.RenderFragment
		}

		var buf bytes.Buffer
		if err := render(&buf, b.View()); err != nil {
			logger.Error("Failed to render leaderboard page", "error", err)
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}

// EventsHandler streams a "refresh" server-sent event carrying the board
// version every time the board changes.
func EventsHandler(b *board.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		changes, cancel := b.Subscribe()
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		logger.Debug("Event stream opened", "remote", r.RemoteAddr)
		heartbeat := time.NewTicker(sseHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				logger.Debug("Event stream closed", "remote", r.RemoteAddr)
				return
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case <-changes:
				fmt.Fprintf(w, "event: refresh\ndata: %d\n\n", b.View().Version)
				flusher.Flush()
			}
		}
	}
}
