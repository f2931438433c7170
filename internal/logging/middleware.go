package logging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/0xReLogic/livepage/internal/config"
	"github.com/0xReLogic/livepage/internal/utils"
)

// RequestContextMiddleware attaches a request-scoped logger to the request context.
// When request IDs are enabled the ID is taken from the inbound header or generated,
// and echoed on the response.
func RequestContextMiddleware(cfg config.LoggingConfig) func(http.Handler) http.Handler {
	requestHeader := RequestHeaderName(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var requestID string
			if cfg.RequestID.Enabled {
				requestID = strings.TrimSpace(r.Header.Get(requestHeader))
				if requestID == "" {
					requestID = generateIdentifier("req")
					r.Header.Set(requestHeader, requestID)
				}
				w.Header().Set(requestHeader, requestID)
			}

			logger := WithContext(ctx)
			if requestID != "" {
				logger = logger.With().Str("request_id", requestID).Logger()
			}

			ctx = contextWithLogger(ctx, logger, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder records the response status code
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.wroteHeader {
		sr.status = code
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.wroteHeader {
		sr.WriteHeader(http.StatusOK)
	}
	return sr.ResponseWriter.Write(b)
}

// AccessLog logs every request at debug level.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if !rec.wroteHeader {
			status = http.StatusOK
		}
		logger := WithContext(r.Context())
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Str("remote_ip", utils.GetClientIP(r)).
			Dur("latency", time.Since(start)).
			Msg("request served")
	})
}

func generateIdentifier(prefix string) string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}
