package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет одну строку на запрос: метод, путь, статус, размер и длительность
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.statusCode()
			logf := logger.Info
			if status >= http.StatusInternalServerError {
				logf = logger.Error
			}
			logf("HTTP: %s %s status=%d bytes=%d duration_ms=%d request_id=%s",
				r.Method, r.URL.Path, status, rec.bytes, time.Since(start).Milliseconds(), GetRequestID(r.Context()))
		})
	}
}
