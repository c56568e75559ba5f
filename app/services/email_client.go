package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// EmailProvider abstracts transactional email delivery for the notification flow
type EmailProvider interface {
	SendEmail(ctx context.Context, to []string, subject, html string) error
}

// ResendClient implements EmailProvider against the Resend REST API
type ResendClient struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	HTTPClient  *http.Client
}

func NewResendClient(baseURL, apiKey, fromAddress string, timeout time.Duration) *ResendClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ResendClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		APIKey:      apiKey,
		FromAddress: fromAddress,
		HTTPClient:  &http.Client{Timeout: timeout},
	}
}

type resendSendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendEmail dispatches one email. Fire-once: no retry, no delivery tracking.
func (c *ResendClient) SendEmail(ctx context.Context, to []string, subject, html string) error {
	payload := resendSendReq{
		From:    c.FromAddress,
		To:      to,
		Subject: subject,
		HTML:    html,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// SentEmail records one delivery made through the mock provider
type SentEmail struct {
	To      []string
	Subject string
	HTML    string
}

// MockEmailProvider records emails instead of sending them
type MockEmailProvider struct {
	mu   sync.Mutex
	sent []SentEmail
	Err  error
}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendEmail(_ context.Context, to []string, subject, html string) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, SentEmail{To: to, Subject: subject, HTML: html})
	return nil
}

// GetSentEmails returns a copy of everything recorded so far
func (p *MockEmailProvider) GetSentEmails() []SentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentEmail, len(p.sent))
	copy(out, p.sent)
	return out
}

// ClearSentEmails resets the recorded deliveries
func (p *MockEmailProvider) ClearSentEmails() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = nil
}
