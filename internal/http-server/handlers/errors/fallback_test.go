package errors

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/i18n"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbacks(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		locale  entity.Locale
		status  int
		message string
	}{
		{"not found", NotFound(log), entity.LocaleEnglish, http.StatusNotFound, "Requested resource not found"},
		{"not found fr", NotFound(log), entity.LocaleFrench, http.StatusNotFound, "Ressource introuvable"},
		{"not allowed", NotAllowed(log), entity.LocaleEnglish, http.StatusMethodNotAllowed, "Method not allowed"},
		{"not allowed ar falls back", NotAllowed(log), entity.LocaleArabic, http.StatusMethodNotAllowed, "Method not allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
			req = req.WithContext(i18n.WithLocale(req.Context(), tt.locale))
			rec := httptest.NewRecorder()
			tt.handler(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
