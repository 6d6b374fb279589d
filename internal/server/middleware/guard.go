package middleware

import (
	"net/http"
	"strings"

	"github.com/chadmarket/backoffice/internal/model"
)

// Guard returns an HTTP middleware implementing the page-level session
// redirects:
//
//   - no session cookie on any page except /login → 303 to /login
//   - session cookie present on /login → 303 to /
//
// Static assets and the health endpoints pass through either way. API
// routes are not guarded here; they answer 401/403 JSON instead of
// redirecting.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if passthrough(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		_, err := r.Cookie(model.AuthCookie)
		hasSession := err == nil

		switch {
		case !hasSession && r.URL.Path != "/login":
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case hasSession && r.URL.Path == "/login":
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func passthrough(path string) bool {
	return strings.HasPrefix(path, "/assets/") ||
		strings.HasPrefix(path, "/api/") ||
		path == "/healthz" ||
		path == "/readyz" ||
		strings.Contains(path, ".") // static files (favicon.svg, robots.txt)
}
