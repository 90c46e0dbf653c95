package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/newsletter/internal/config"
	"github.com/ignite/newsletter/internal/domain"
)

// Client sends email through a REST delivery API. One POST to
// {base_url}/email per message; non-2xx responses are failures.
type Client struct {
	baseURL    string
	authToken  string
	sender     domain.SubscriberEmail
	httpClient *http.Client
}

// NewClient creates an email API client. The sender address must already
// be validated; the transport timeout comes from configuration.
func NewClient(cfg config.EmailConfig, sender domain.SubscriberEmail) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		sender:    sender,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

type sendEmailRequest struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"html_content"`
	TextContent string `json:"text_content"`
}

// Send delivers one email. It makes a single attempt and does not retry.
func (c *Client) Send(ctx context.Context, msg Email) error {
	payload := sendEmailRequest{
		From:        c.sender.String(),
		To:          msg.To.String(),
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLBody,
		TextContent: msg.TextBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating send request: %w", err)
	}
	req.Header.Set("Authorization", c.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(detail))
	}
	return nil
}
