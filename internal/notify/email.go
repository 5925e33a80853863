package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrMissingResendKey indicates the email sender was configured without
// credentials.
var ErrMissingResendKey = errors.New("resend: api key is required")

// EmailOptions configures the Resend email sender.
type EmailOptions struct {
	APIKey     string
	From       string
	BaseURL    string
	HTTPClient *http.Client
}

// EmailSender delivers HTML notification emails through the Resend API.
type EmailSender struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func NewEmailSender(opts EmailOptions) *EmailSender {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	from := strings.TrimSpace(opts.From)
	if from == "" {
		from = "ExpoStand <noreply@expostand.local>"
	}
	return &EmailSender{
		apiKey:     strings.TrimSpace(opts.APIKey),
		from:       from,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (s *EmailSender) HasCredentials() bool {
	return s.apiKey != ""
}

// Send delivers one HTML email. Credentials are checked here rather than at
// construction so the app can run without email configured.
func (s *EmailSender) Send(ctx context.Context, to, subject, html string) error {
	if !s.HasCredentials() {
		return ErrMissingResendKey
	}
	body, err := json.Marshal(sendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("resend: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("resend: %s", apiErr.Message)
		}
		return fmt.Errorf("resend: status %d", resp.StatusCode)
	}
	return nil
}
