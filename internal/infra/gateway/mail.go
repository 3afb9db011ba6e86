package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"interpreter-booking/internal/pkg/config"
	"interpreter-booking/internal/pkg/errs"
)

// MailClient delegates rendering to the mail service: it ships the template
// name plus data and lets the service expand it.
type MailClient struct {
	endpoint string
	sender   string
	client   *http.Client
}

func NewMailClient(cfg config.GatewayConfig) *MailClient {
	return &MailClient{
		endpoint: cfg.MailEndpoint,
		sender:   cfg.MailSender,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type mailRequest struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Name     string         `json:"name"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func (c *MailClient) Send(ctx context.Context, to, name, subject, template string, data map[string]any) error {
	raw, err := json.Marshal(mailRequest{
		From:     c.sender,
		To:       to,
		Name:     name,
		Subject:  subject,
		Template: template,
		Data:     data,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode mail request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return errs.Wrap(err, "failed to build mail request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "mail gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errs.New(fmt.Sprintf("mail gateway returned %d", resp.StatusCode))
	}
	return nil
}
