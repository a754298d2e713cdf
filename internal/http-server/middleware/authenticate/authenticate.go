package authenticate

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/api/cont"
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Authenticate interface {
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	IsAdmin(identity *entity.Identity) bool
}

// New admits only the configured administrator. A missing or invalid Bearer
// token is answered with 401, a valid token of anyone else with 403.
func New(log *slog.Logger, auth Authenticate) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			logger := log.With(
				mod,
				slog.String("path", r.URL.Path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := BearerToken(r)
			if token == "" {
				authFailed(w, r, http.StatusUnauthorized, "Authorization token not found")
				return
			}
			if auth == nil {
				authFailed(w, r, http.StatusUnauthorized, "Unauthorized: authentication not enabled")
				return
			}

			identity, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.With(sl.Secret("token", token)).Debug("authentication failed", sl.Err(err))
				authFailed(w, r, http.StatusUnauthorized, "Unauthorized: invalid token")
				return
			}
			if !auth.IsAdmin(identity) {
				logger.Warn("non-admin access attempt", slog.String("email", identity.Email))
				authFailed(w, r, http.StatusForbidden, "access denied")
				return
			}

			w.Header().Set("X-User", identity.Email)
			next.ServeHTTP(w, r.WithContext(cont.PutIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(fn)
	}
}

func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func authFailed(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, response.Error(message))
}
