package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer implements domain.MailSender against the Resend HTTP API.
// With no API key configured it logs the mail instead, mirroring the
// console SMS driver.
type ResendMailer struct {
	client *http.Client
	apiKey string
	from   string
	appURL string
}

// NewResendMailer creates a new mail sender
func NewResendMailer(apiKey, from, appURL string) domain.MailSender {
	return &ResendMailer{
		client: &http.Client{Timeout: 10 * time.Second},
		apiKey: apiKey,
		from:   from,
		appURL: appURL,
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResetPassword implements domain.MailSender
func (m *ResendMailer) SendResetPassword(ctx context.Context, email, tempPassword string) error {
	if m.apiKey == "" {
		log.Printf("[MAIL to %s] temporary password issued", email)
		return nil
	}

	body := resendRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Your Woorkroom password has been reset",
		HTML: fmt.Sprintf(
			`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`+
				`<h2>Password Reset</h2>`+
				`<p>Your new temporary password:</p>`+
				`<div style="font-size: 20px; font-weight: bold; color: #1a73e8; margin: 10px 0;">%s</div>`+
				`<p>Please log in to <a href="%s" target="_blank">Woorkroom</a> and change it in your profile settings.</p>`+
				`<hr style="border:none; border-top:1px solid #ddd; margin:20px 0;">`+
				`<small style="color:#888;">If you did not request this change, you can safely ignore this email.</small>`+
				`</div>`,
			tempPassword, m.appURL,
		),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: resend returned %d", resp.StatusCode)
	}

	return nil
}
