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

type SMSClient struct {
	endpoint string
	sender   string
	client   *http.Client
}

func NewSMSClient(cfg config.GatewayConfig) *SMSClient {
	return &SMSClient{
		endpoint: cfg.SMSEndpoint,
		sender:   cfg.SMSSender,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *SMSClient) Send(ctx context.Context, mobile, message string) error {
	raw, err := json.Marshal(map[string]string{
		"from":    c.sender,
		"to":      mobile,
		"message": message,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode sms request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return errs.Wrap(err, "failed to build sms request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "sms gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errs.New(fmt.Sprintf("sms gateway returned %d", resp.StatusCode))
	}
	return nil
}
