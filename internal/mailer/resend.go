// Package mailer sends transactional email through the Resend API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewResendClientWithBaseURL exists for tests against a local server.
func NewResendClientWithBaseURL(apiKey, from, baseURL string) *ResendClient {
	c := NewResendClient(apiKey, from)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *ResendClient) SendVerificationEmail(ctx context.Context, to, username, code string) error {
	body := sendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: "Murmur verification code",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in one hour.</p>",
			username, code,
		),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("contacting resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	return nil
}
