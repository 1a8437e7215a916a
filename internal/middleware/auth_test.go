package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "local-test-secret"

func signLocalToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"email":   "a@x.com",
		"exp":     time.Now().Add(expiresIn).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// authRequest runs a request through Auth with no Firebase client, which is
// the locally issued HS256 token path.
func authRequest(t *testing.T, configure func(*http.Request)) (rec *httptest.ResponseRecorder, userID, email string) {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = GetUserID(r.Context())
		email = GetUserEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(nil, testJWTSecret)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	configure(req)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, userID, email
}

func TestAuthLocalBearerToken(t *testing.T) {
	token := signLocalToken(t, testJWTSecret, time.Hour)
	rec, userID, email := authRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if userID != "u1" || email != "a@x.com" {
		t.Errorf("context identity = (%q, %q), want (u1, a@x.com)", userID, email)
	}
}

func TestAuthLocalSessionCookie(t *testing.T) {
	token := signLocalToken(t, testJWTSecret, time.Hour)
	rec, userID, _ := authRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if userID != "u1" {
		t.Errorf("userID = %q, want u1", userID)
	}
}

func TestAuthExpiredLocalToken(t *testing.T) {
	token := signLocalToken(t, testJWTSecret, -time.Hour)
	rec, _, _ := authRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token code = %d, want 401", rec.Code)
	}
}

func TestAuthWrongSecretRejected(t *testing.T) {
	token := signLocalToken(t, "some-other-secret", time.Hour)
	rec, _, _ := authRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong-secret token code = %d, want 401", rec.Code)
	}
}

func TestAuthMissingCredentials(t *testing.T) {
	rec, _, _ := authRequest(t, func(*http.Request) {})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credentials code = %d, want 401", rec.Code)
	}
}

func TestAuthMalformedAuthorizationHeader(t *testing.T) {
	rec, _, _ := authRequest(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Token abc")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("malformed header code = %d, want 401", rec.Code)
	}
}
