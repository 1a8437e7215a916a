package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RecaptchaVerifier checks reCAPTCHA v2 tokens on registration. Optional; an
// unconfigured verifier passes everything through.
type RecaptchaVerifier struct {
	Secret     string
	HTTPClient *http.Client
	Endpoint   string
}

type recaptchaVerifyResponse struct {
	Success    bool      `json:"success"`
	ChallengeT time.Time `json:"challenge_ts"`
	Hostname   string    `json:"hostname"`
	ErrorCodes []string  `json:"error-codes"`
}

func NewRecaptchaVerifier(secret string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		Secret:   strings.TrimSpace(secret),
		Endpoint: "https://www.google.com/recaptcha/api/siteverify",
		HTTPClient: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (v *RecaptchaVerifier) Configured() bool {
	return v != nil && v.Secret != ""
}

// VerifyV2 verifies a reCAPTCHA v2 checkbox token. Returns (ok, reason, error).
func (v *RecaptchaVerifier) VerifyV2(ctx context.Context, token string, remoteIP string) (bool, string, error) {
	if !v.Configured() {
		return true, "verifier_not_configured", nil
	}
	if strings.TrimSpace(token) == "" {
		return false, "missing_token", nil
	}

	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, "request_build_failed", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return false, "request_failed", err
	}
	defer resp.Body.Close()

	var out recaptchaVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, "decode_failed", err
	}
	if !out.Success {
		return false, fmt.Sprintf("rejected: %s", strings.Join(out.ErrorCodes, ",")), nil
	}
	return true, "", nil
}
