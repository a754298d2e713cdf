package files

import (
	"EnrollHub/entity"
	"EnrollHub/impl/core"
	"EnrollHub/internal/lib/sl"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Core interface {
	OpenFile(ctx context.Context, fileID, expires, signature string) (*entity.StoredFile, error)
}

// Download streams a stored screenshot. The link carries its own expiry and
// signature so it can be used from an <img src>.
// Endpoint: GET /api/v1/files/{file_id}?expires=...&sig=...
func Download(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileID := chi.URLParam(r, "file_id")
		logger := log.With(
			sl.Module("http.handlers.files"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("file_id", fileID),
		)

		query := r.URL.Query()
		file, err := handler.OpenFile(r.Context(), fileID, query.Get("expires"), query.Get("sig"))
		if errors.Is(err, core.ErrInvalidFileLink) {
			logger.Debug("rejected file link", sl.Err(err))
			http.Error(w, "Link is invalid or expired", http.StatusForbidden)
			return
		}
		if err != nil {
			logger.Error("failed to open file", sl.Err(err))
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer file.Content.Close()

		header := w.Header()
		header.Set("Content-Type", file.ContentType())
		header.Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": file.Name}))
		header.Set("Cache-Control", "private, max-age=300")
		if file.Size > 0 {
			header.Set("Content-Length", strconv.FormatInt(file.Size, 10))
		}
		if !file.UploadedAt.IsZero() {
			header.Set("Last-Modified", file.UploadedAt.UTC().Format(http.TimeFormat))
		}

		if _, err = io.Copy(w, file.Content); err != nil {
			logger.Error("failed to stream file", sl.Err(err))
		}
	}
}
