package models

import (
	"net/mail"
	"time"
)

// User is a local-auth account used when no hosted identity provider is
// configured. With Firebase enabled, accounts live in Firebase Auth instead.
// Never sent to clients; API responses carry AuthResponse and Profile. The
// hash keeps a JSON name so the users.json snapshot round-trips it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	ProfileType    ProfileKind `json:"profileType"`
	RecaptchaToken string      `json:"recaptchaToken"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile,omitempty"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errors["email"] = "Email is invalid"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}
	if !r.ProfileType.Valid() {
		errors["profileType"] = "Profile type must be company or freelancer"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}
