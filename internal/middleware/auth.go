package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/option"

	"github.com/bizlink/backend/internal/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// SessionCookieName is the cookie minted by /api/auth/session and checked by
// the page guard.
const SessionCookieName = "__session"

type FirebaseAuthConfig struct {
	ProjectID       string
	CredentialsJSON string
}

// NewFirebaseAuthClient builds the Firebase Admin auth client used for
// server-side verification of ID tokens and session cookies.
func NewFirebaseAuthClient(ctx context.Context, cfg FirebaseAuthConfig) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}

// Auth resolves the caller's identity into the request context. With a
// Firebase client it accepts a Bearer ID token or the __session cookie; with
// no client it falls back to verifying locally issued HS256 JWTs.
func Auth(authClient *fbauth.Client, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			cookieToken := sessionCookie(r)
			if token == "" && cookieToken == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authorization required"))
				return
			}

			var userID, email string

			if authClient != nil {
				var verified *fbauth.Token
				var err error
				if token != "" {
					verified, err = authClient.VerifyIDToken(r.Context(), token)
				}
				if verified == nil && cookieToken != "" {
					verified, err = authClient.VerifySessionCookie(r.Context(), cookieToken)
				}
				if err != nil || verified == nil {
					writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
					return
				}
				userID = verified.UID
				if v, ok := verified.Claims["email"].(string); ok {
					email = v
				}
			} else {
				if token == "" {
					token = cookieToken
				}
				var ok bool
				userID, email, ok = verifyLocalJWT(token, jwtSecret)
				if !ok {
					writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UserEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func sessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func verifyLocalJWT(tokenString, jwtSecret string) (userID, email string, ok bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}

	claims, claimsOK := token.Claims.(jwt.MapClaims)
	if !claimsOK {
		return "", "", false
	}

	userID, idOK := claims["user_id"].(string)
	if !idOK || userID == "" {
		return "", "", false
	}
	email, _ = claims["email"].(string)
	return userID, email, true
}

// GetUserID extracts the caller's user ID from context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserEmail extracts the caller's email from context.
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(UserEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
