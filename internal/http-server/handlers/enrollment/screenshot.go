package enrollment

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const screenshotField = "screenshot"

// AttachScreenshot accepts a multipart upload of the payment receipt image.
// Uploads over maxBytes are refused.
func AttachScreenshot(log *slog.Logger, handler Core, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			logger.Debug("failed to parse upload", sl.Err(err))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				render.Status(r, http.StatusRequestEntityTooLarge)
				render.JSON(w, r, response.Error(fmt.Sprintf("Screenshot must be under %d bytes", maxBytes)))
				return
			}
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Upload must be a multipart form"))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile(screenshotField)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Field \"screenshot\" is required"))
			return
		}
		defer file.Close()

		if header.Size > maxBytes {
			render.Status(r, http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("Screenshot is too large"))
			return
		}
		image, err := io.ReadAll(file)
		if err != nil {
			logger.Error("failed to read upload", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Failed to read upload"))
			return
		}

		state, err := handler.AttachScreenshot(r.Context(), chi.URLParam(r, "id"), image)
		if err == nil {
			logger.Debug("screenshot attached",
				slog.String("session_id", state.ID),
				slog.Int("size", len(image)),
			)
		}
		respond(w, r, logger, state, err)
	}
}
