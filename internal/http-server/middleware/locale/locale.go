package locale

import (
	"EnrollHub/internal/lib/i18n"
	"net/http"
)

// New stores the request locale, chosen from ?lang= or Accept-Language, in the context.
func New() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			l := i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", string(l))
			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), l)))
		}
		return http.HandlerFunc(fn)
	}
}
