package middleware

import (
	"net/http"
	"net/url"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// Page paths that bypass the session guard.
var publicPaths = []string{
	"/login",
	"/register",
	"/forgot-password",
}

// Page paths that require an active session.
var protectedPaths = []string{
	"/profile",
	"/settings",
	"/network",
	"/jobs",
	"/availability",
	"/companies",
}

// SessionGuard redirects page requests based on the __session cookie: root
// goes to /login or /network, signed-in users are bounced off the auth pages,
// and protected pages redirect to /login with a callbackUrl. When an auth
// client is available the cookie is verified with the provider rather than
// trusted on presence.
func SessionGuard(authClient *fbauth.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasSession := false
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				hasSession = true
				if authClient != nil {
					if _, err := authClient.VerifySessionCookie(r.Context(), cookie.Value); err != nil {
						hasSession = false
					}
				}
			}

			path := r.URL.Path

			if path == "/" {
				if hasSession {
					http.Redirect(w, r, "/network", http.StatusFound)
				} else {
					http.Redirect(w, r, "/login", http.StatusFound)
				}
				return
			}

			if hasPrefix(path, publicPaths) && hasSession {
				http.Redirect(w, r, "/network", http.StatusFound)
				return
			}

			if hasPrefix(path, protectedPaths) && !hasSession {
				http.Redirect(w, r, "/login?callbackUrl="+url.QueryEscape(path), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
