package files

import (
	"EnrollHub/entity"
	"EnrollHub/impl/core"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type fakeCore struct{}

var uploaded = time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)

func (fakeCore) OpenFile(_ context.Context, fileID, _, sig string) (*entity.StoredFile, error) {
	switch {
	case sig != "good":
		return nil, core.ErrInvalidFileLink
	case fileID != "f1":
		return nil, errors.New("file not found")
	}
	return &entity.StoredFile{
		Name:       "screenshot-s1.png",
		Metadata:   entity.FileMetadata{MIMEType: "image/png"},
		Size:       9,
		UploadedAt: uploaded,
		Content:    io.NopCloser(strings.NewReader("png-bytes")),
	}, nil
}

func TestDownload(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Get("/files/{file_id}", Download(log, fakeCore{}))

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"ok", "/files/f1?expires=1&sig=good", http.StatusOK},
		{"bad signature", "/files/f1?expires=1&sig=bad", http.StatusForbidden},
		{"missing file", "/files/f2?expires=1&sig=good", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/f1?expires=1&sig=good", nil))
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename=screenshot-s1.png`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
	assert.Equal(t, uploaded.Format(http.TimeFormat), rec.Header().Get("Last-Modified"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}
