package api

import (
	"EnrollHub/internal/config"
	"EnrollHub/internal/ws"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubHandler implements nothing; the routes under test never reach the core.
type stubHandler struct {
	Handler
}

func TestRouterGates(t *testing.T) {
	conf := &config.Config{}
	conf.Listen.Timeout = time.Second
	conf.Enrollment.MaxScreenshotMB = 1
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(conf, log, stubHandler{}, ws.NewHub(log))

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"unknown path", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{"wrong method", http.MethodPut, "/api/v1/catalog", http.StatusMethodNotAllowed},
		{"admin without token", http.MethodGet, "/api/v1/admin/dashboard", http.StatusUnauthorized},
		{"export without token", http.MethodGet, "/api/v1/admin/registrations/export", http.StatusUnauthorized},
		{"websocket without token", http.MethodGet, "/api/v1/admin/ws", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}
