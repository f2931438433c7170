package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/0xReLogic/livepage/internal/config"
)

const (
	testCustomReqHeader = "X-Custom-Req"
	testReqID           = "req-1"
)

func swapLoggerForTest(logger zerolog.Logger) func() {
	baseLoggerMu.Lock()
	previous := baseLogger
	baseLogger = logger
	baseLoggerMu.Unlock()
	return func() {
		baseLoggerMu.Lock()
		baseLogger = previous
		baseLoggerMu.Unlock()
	}
}

func firstLine(b []byte) []byte {
	if idx := bytes.IndexByte(b, '\n'); idx >= 0 {
		return b[:idx]
	}
	return b
}

func decodeLine(t *testing.T, b []byte) map[string]interface{} {
	t.Helper()
	line := firstLine(b)
	if len(line) == 0 {
		t.Fatal("expected log output")
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(line, &payload); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return payload
}

func TestRequestContextMiddleware_GeneratesIdentifier(t *testing.T) {
	cfg := config.LoggingConfig{
		RequestID: config.RequestIDConfig{Enabled: true},
	}

	buffer := bytes.Buffer{}
	restore := swapLoggerForTest(newLogger(&buffer, zerolog.InfoLevel, formatJSON, false))
	defer restore()

	var capturedRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestIDFromContext(r.Context())
		logger := WithContext(r.Context())
		logger.Info().Msg("test")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RequestContextMiddleware(cfg)(handler).ServeHTTP(rr, req)

	if capturedRequestID == "" {
		t.Fatal("expected generated request id")
	}
	if got := rr.Header().Get(defaultRequestHeader); got != capturedRequestID {
		t.Fatalf("expected response header request id %q, got %q", capturedRequestID, got)
	}

	payload := decodeLine(t, buffer.Bytes())
	if payload["request_id"] != capturedRequestID {
		t.Fatalf("expected log request_id %q, got %v", capturedRequestID, payload["request_id"])
	}
}

func TestRequestContextMiddleware_RespectsHeader(t *testing.T) {
	cfg := config.LoggingConfig{
		RequestID: config.RequestIDConfig{Enabled: true, Header: testCustomReqHeader},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != testReqID {
			t.Fatalf("expected request id %s, got %s", testReqID, got)
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(testCustomReqHeader, testReqID)
	RequestContextMiddleware(cfg)(handler).ServeHTTP(rr, req)

	if got := rr.Header().Get(testCustomReqHeader); got != testReqID {
		t.Fatalf("expected response header %s, got %s", testReqID, got)
	}
}

func TestRequestContextMiddleware_Disabled(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "" {
			t.Fatalf("expected no request id, got %s", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RequestContextMiddleware(config.LoggingConfig{})(handler).ServeHTTP(rr, req)

	if got := rr.Header().Get(defaultRequestHeader); got != "" {
		t.Fatalf("expected no request id header, got %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	buffer := bytes.Buffer{}
	restore := swapLoggerForTest(newLogger(&buffer, zerolog.DebugLevel, formatJSON, false))
	defer restore()

	handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.RemoteAddr = "203.0.113.7:4242"
	handler.ServeHTTP(rr, req)

	payload := decodeLine(t, buffer.Bytes())
	if payload["method"] != http.MethodGet {
		t.Errorf("expected method GET, got %v", payload["method"])
	}
	if payload["path"] != "/missing" {
		t.Errorf("expected path /missing, got %v", payload["path"])
	}
	if payload["status"] != float64(http.StatusNotFound) {
		t.Errorf("expected first status 404 to be recorded, got %v", payload["status"])
	}
	if payload["remote_ip"] != "203.0.113.7" {
		t.Errorf("expected remote_ip 203.0.113.7, got %v", payload["remote_ip"])
	}
}

func TestAccessLog_SilentAtInfo(t *testing.T) {
	buffer := bytes.Buffer{}
	restore := swapLoggerForTest(newLogger(&buffer, zerolog.InfoLevel, formatJSON, false))
	defer restore()

	handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if buffer.Len() != 0 {
		t.Fatalf("expected no output at info level, got %q", buffer.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"":        zerolog.InfoLevel,
		"unknown": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWithWriter_TextFormat(t *testing.T) {
	previous := L()
	defer setBaseLogger(previous)

	buffer := bytes.Buffer{}
	InitWithWriter(&buffer, config.LoggingConfig{Level: "info", Format: "text"})
	logger := L()
	logger.Info().Int("port", 5000).Msg("listening")

	out := buffer.String()
	if !strings.Contains(out, "listening") || !strings.Contains(out, "port=5000") {
		t.Fatalf("unexpected console output: %q", out)
	}
}
