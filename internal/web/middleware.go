package web

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request through apex/log.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			entry := log.WithFields(log.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).Round(time.Microsecond).String(),
				"request_id": middleware.GetReqID(r.Context()),
			})
			if ww.Status() >= http.StatusInternalServerError {
				entry.Warn("request handled")
				return
			}
			entry.Info("request handled")
		}()

		next.ServeHTTP(ww, r)
	})
}
