package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/kkpa/jbh/pkg/logger"
)

// maxLoggedBody caps how much of a request or response body is logged.
const maxLoggedBody = 4 << 10

var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"cookie",
	"api_key",
}

// LoggingMiddleware logs each request and its response at debug level with
// headers and JSON bodies masked, and a one-line access entry at info level
// (warn for 4xx, error for 5xx).
func LoggingMiddleware(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lg := requestLogger(r, base)
			debug := lg.Enabled(r.Context(), slog.LevelDebug)

			if debug {
				lg.Debug("incoming request",
					"headers", maskHeaders(r.Header),
					"body", maskBody(peekBody(r)),
				)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var body bytes.Buffer
			if debug {
				ww.Tee(&body)
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			lg.Log(r.Context(), level, "response",
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", ww.BytesWritten(),
			)
			if debug && body.Len() > 0 {
				lg.Debug("response body", "body", maskBody(body.Bytes()))
			}
		})
	}
}

// requestLogger prefers the request-scoped logger installed by TraceID and
// falls back to base.
func requestLogger(r *http.Request, base *slog.Logger) *slog.Logger {
	lg, ok := logger.Lookup(r.Context())
	if !ok {
		lg = base.With("request_id", middleware.GetReqID(r.Context()))
	}
	return lg.With(
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
	)
}

func peekBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	raw, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(raw))
	return raw
}

func isSensitive(name string) bool {
	name = strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(name, field) {
			return true
		}
	}
	return false
}

func maskHeaders(headers http.Header) map[string]string {
	masked := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			masked[name] = "[FILTERED]"
			continue
		}
		masked[name] = strings.Join(values, ", ")
	}
	return masked
}

// maskBody replaces sensitive JSON values. Bodies that are not JSON are
// logged as-is, truncated.
func maskBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return truncate(string(body))
	}
	out, err := json.Marshal(maskJSON(data))
	if err != nil {
		return "[UNPRINTABLE]"
	}
	return truncate(string(out))
}

func maskJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if isSensitive(key) {
				v[key] = "[FILTERED]"
			} else {
				v[key] = maskJSON(value)
			}
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = maskJSON(item)
		}
		return v
	default:
		return v
	}
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "...(truncated)"
}
