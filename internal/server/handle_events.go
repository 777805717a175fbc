package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// handleEvents streams view snapshots as Server-Sent Events. A snapshot is
// sent after the first load and after every reload triggered by a change.
func handleEvents(logger *slog.Logger, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := openStream(r, deps, logger)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		if err := view.Activate(r.Context()); err != nil {
			writeServiceError(w, r, logger, err)
			return
		}
		defer view.Deactivate()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-view.Updates():
				data, ok, err := view.snapshotJSON()
				if err != nil {
					logger.Error("encoding snapshot", "view", view.Name(), "error", err)
					continue
				}
				if !ok {
					continue
				}
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
