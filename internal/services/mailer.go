package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SendGridMailer delivers transactional mail through the SendGrid v3 API.
// Used for password-reset links minted by the identity provider.
type SendGridMailer struct {
	APIKey     string
	FromEmail  string
	HTTPClient *http.Client
	Endpoint   string
}

func NewSendGridMailer(apiKey string, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:    strings.TrimSpace(apiKey),
		FromEmail: strings.TrimSpace(fromEmail),
		Endpoint:  "https://api.sendgrid.com/v3/mail/send",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (m *SendGridMailer) Configured() bool {
	return m != nil && m.APIKey != "" && m.FromEmail != ""
}

type sendGridEmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To      []sendGridEmailAddress `json:"to"`
	Subject string                 `json:"subject"`
}

type sendGridMailSendRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridEmailAddress      `json:"from"`
	Content          []sendGridContent         `json:"content"`
}

// SendPasswordResetEmail mails the provider-generated reset link to the user.
func (m *SendGridMailer) SendPasswordResetEmail(ctx context.Context, toEmail string, resetLink string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer not configured")
	}

	body := sendGridMailSendRequest{
		Personalizations: []sendGridPersonalization{
			{
				To:      []sendGridEmailAddress{{Email: toEmail}},
				Subject: "Reset your password",
			},
		},
		From: sendGridEmailAddress{Email: m.FromEmail, Name: "BizLink"},
		Content: []sendGridContent{
			{
				Type: "text/plain",
				Value: "We received a request to reset your password.\n\n" +
					"Open the link below to choose a new one:\n\n" + resetLink + "\n\n" +
					"If you didn't request this, you can ignore this email.",
			},
		},
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
