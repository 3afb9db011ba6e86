package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PushGateway delivers a push to a set of users. A non-nil sendAfter asks
// the provider to hold delivery until that time.
type PushGateway interface {
	Send(ctx context.Context, userIDs []uuid.UUID, payload Payload, title, text string, sendAfter *time.Time) error
}

type SMSGateway interface {
	Send(ctx context.Context, mobile, message string) error
}

// MailGateway renders the named template with data and sends it.
type MailGateway interface {
	Send(ctx context.Context, to, name, subject, template string, data map[string]any) error
}
