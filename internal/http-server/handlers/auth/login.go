package auth

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

const stateCookie = "oauth_state"

// Login redirects the administrator to the Google consent page.
func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		state := uuid.NewString()
		url := handler.LoginURL(state)
		if url == "" {
			logger.Error("sign-in is not configured")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Sign-in is not configured"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			Expires:  time.Now().Add(10 * time.Minute),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, url, http.StatusFound)
	}
}
