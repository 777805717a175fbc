package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/telemetry"
)

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// reportPanics recovers handler panics, reports them and answers 500.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func reportPanics(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				reqID := middleware.GetReqID(r.Context())
				logger.Error("panic serving request", "path", r.URL.Path, "request_id", reqID, "error", err)
				telemetry.CaptureError(err, map[string]string{
					"path":       r.URL.Path,
					"request_id": reqID,
					"panic":      "true",
				})

				if r.Header.Get("Connection") != "Upgrade" {
					writeError(w, http.StatusInternalServerError, "internal error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
