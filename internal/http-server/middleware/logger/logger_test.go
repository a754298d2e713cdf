package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusUnprocessableEntity, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(New(log))
			r.Get("/x", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			buf.Reset()

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "incoming request", entry["msg"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, "203.0.113.7", entry["remote_addr"])
			assert.Equal(t, rec.Header().Get("X-Request-ID"), entry["request_id"])
		})
	}
}
