package middleware

import (
	"net/http"
	"time"

	"github.com/denmor86/ya-cryptowallet/internal/logger"
)

type (
	// сведения об ответе для записи в лог
	responseData struct {
		status int
		size   int
	}

	// LoggingResponseWriter запоминает код статуса и размер ответа
	LoggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *LoggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *LoggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// LogHandle - middleware-логер для запросов к admin API
func LogHandle(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &LoggingResponseWriter{
			ResponseWriter: w,
			responseData:   &responseData{},
		}

		h.ServeHTTP(lw, r)

		logger.Infow("admin request",
			"uri", r.RequestURI,
			"method", r.Method,
			"status", lw.responseData.status,
			"duration", time.Since(start),
			"size", lw.responseData.size,
		)
	})
}
