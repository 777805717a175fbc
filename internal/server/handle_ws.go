package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// handleWSLive pushes view snapshots over a websocket. Client messages are
// ignored; the read side only watches for the close handshake.
func handleWSLive(logger *slog.Logger, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := openStream(r, deps, logger)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx := conn.CloseRead(r.Context())
		if err := view.Activate(ctx); err != nil {
			conn.Close(websocket.StatusInternalError, "view unavailable")
			return
		}
		defer view.Deactivate()

		for {
			select {
			case <-ctx.Done():
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
				if err := write(ctx, conn, data); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
