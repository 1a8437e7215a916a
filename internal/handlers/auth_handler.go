package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bizlink/backend/internal/middleware"
	"github.com/bizlink/backend/internal/models"
	"github.com/bizlink/backend/internal/services"
)

// AuthHandler covers registration, login, session-cookie minting and the
// forgot-password flow. With a Firebase client, credentials live with the
// provider; without one, the local user service plus HS256 JWTs take over.
type AuthHandler struct {
	users             *services.UserService
	profiles          *services.ProfileService
	authClient        *fbauth.Client
	recaptcha         *services.RecaptchaVerifier
	mailer            *services.SendGridMailer
	jwtSecret         string
	jwtExpiration     time.Duration
	sessionExpiration time.Duration
}

func NewAuthHandler(
	users *services.UserService,
	profiles *services.ProfileService,
	authClient *fbauth.Client,
	recaptcha *services.RecaptchaVerifier,
	mailer *services.SendGridMailer,
	jwtSecret string,
	jwtExpiration time.Duration,
	sessionExpiration time.Duration,
) *AuthHandler {
	return &AuthHandler{
		users:             users,
		profiles:          profiles,
		authClient:        authClient,
		recaptcha:         recaptcha,
		mailer:            mailer,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		sessionExpiration: sessionExpiration,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	if h.recaptcha.Configured() {
		ok, reason, err := h.recaptcha.VerifyV2(r.Context(), req.RecaptchaToken, r.RemoteAddr)
		if err != nil {
			log.Printf("[Register] recaptcha error=%v", err)
		}
		if !ok {
			log.Printf("[Register] recaptcha rejected reason=%s", reason)
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Captcha verification failed"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var userID, token string

	if h.authClient != nil {
		user, err := h.authClient.CreateUser(ctx, (&fbauth.UserToCreate{}).
			Email(req.Email).
			Password(req.Password))
		if err != nil {
			if fbauth.IsEmailAlreadyExists(err) {
				writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
				return
			}
			log.Printf("[Register] create auth user error=%v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
			return
		}
		userID = user.UID

		// Custom token for the client to complete sign-in with the provider.
		token, err = h.authClient.CustomToken(ctx, userID)
		if err != nil {
			log.Printf("[Register] custom token user=%s error=%v", userID, err)
		}
	} else {
		user, err := h.users.Register(&req)
		if err != nil {
			if err == services.ErrEmailExists {
				writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
				return
			}
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
			return
		}
		userID = user.ID

		token, err = h.generateToken(userID, req.Email)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
			return
		}
	}

	profile, err := h.profiles.Create(ctx, userID, req.Email, req.ProfileType)
	if err != nil {
		log.Printf("[Register] create profile user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create profile"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.AuthResponse{
		Token:   token,
		Profile: profile,
	}))
}

// Login only serves the local fallback; with Firebase configured, sign-in
// happens against the provider and the server just mints the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.authClient != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Login is handled by the identity provider; exchange the ID token at /api/auth/session"))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.users.Login(&req)
	if err != nil {
		if err == services.ErrUserNotFound || err == services.ErrInvalidPassword {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	token, err := h.generateToken(user.ID, user.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	profile, err := h.profiles.GetByUserID(r.Context(), user.ID)
	if err != nil && err != services.ErrProfileNotFound {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token:   token,
		Profile: profile,
	}))
}

type sessionRequestBody struct {
	IDToken string `json:"idToken"`
}

// CreateSession exchanges a provider ID token (or a local JWT in fallback
// mode) for the __session cookie the page guard checks.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing idToken"))
		return
	}

	cookieValue := req.IDToken
	if h.authClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		sessionCookie, err := h.authClient.SessionCookie(ctx, req.IDToken, h.sessionExpiration)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
			return
		}
		cookieValue = sessionCookie
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		MaxAge:   int(h.sessionExpiration.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// ForgotPassword asks the provider for a reset link and mails it. The reply
// is the same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing email"))
		return
	}

	if h.authClient != nil && h.mailer.Configured() {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		link, err := h.authClient.PasswordResetLink(ctx, req.Email)
		if err != nil {
			log.Printf("[ForgotPassword] reset link email=%s error=%v", req.Email, err)
		} else if err := h.mailer.SendPasswordResetEmail(ctx, req.Email, link); err != nil {
			log.Printf("[ForgotPassword] send mail email=%s error=%v", req.Email, err)
		}
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{
		"message": "If an account exists for that email, a reset link has been sent",
	}))
}

func (h *AuthHandler) generateToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(h.jwtExpiration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
