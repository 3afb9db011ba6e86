package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"interpreter-booking/internal/notify"
	"interpreter-booking/internal/pkg/config"
	"interpreter-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// PushClient talks to the push provider over HTTP. Payload contents are
// keyed by language tag; a send_after timestamp asks the provider to hold
// delivery.
type PushClient struct {
	endpoint string
	appID    string
	apiKey   string
	client   *http.Client
}

func NewPushClient(cfg config.GatewayConfig) *PushClient {
	return &PushClient{
		endpoint: cfg.PushEndpoint,
		appID:    cfg.PushAppID,
		apiKey:   cfg.PushAPIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type pushRequest struct {
	AppID            string            `json:"app_id"`
	IncludeUserIDs   []string          `json:"include_user_ids"`
	NotificationType string            `json:"notification_type"`
	JobID            string            `json:"job_id"`
	Immediate        bool              `json:"immediate"`
	Title            map[string]string `json:"title"`
	Contents         map[string]string `json:"contents"`
	SendAfter        *string           `json:"send_after,omitempty"`
}

func (c *PushClient) Send(ctx context.Context, userIDs []uuid.UUID, payload notify.Payload, title, text string, sendAfter *time.Time) error {
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	req := pushRequest{
		AppID:            c.appID,
		IncludeUserIDs:   ids,
		NotificationType: string(payload.NotificationType),
		JobID:            payload.JobID.String(),
		Immediate:        payload.Immediate,
		Title:            map[string]string{"en": title},
		Contents:         map[string]string{"en": text},
	}
	if sendAfter != nil {
		s := sendAfter.Format(time.RFC3339)
		req.SendAfter = &s
	}

	return c.post(ctx, req)
}

func (c *PushClient) post(ctx context.Context, body pushRequest) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to encode push request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return errs.Wrap(err, "failed to build push request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Basic "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return errs.Wrap(err, "push gateway unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errs.New(fmt.Sprintf("push gateway returned %d", resp.StatusCode))
	}
	return nil
}
