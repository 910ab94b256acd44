package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
)

// PushSubject is the NATS subject carrying push messages of an agency.
func PushSubject(agencyID string) string {
	return fmt.Sprintf("securefront.push.%s", agencyID)
}

type natsPublisher struct {
	conn *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, msg notification.PushMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}
	if err := p.conn.Publish(PushSubject(msg.AgencyID), data); err != nil {
		return fmt.Errorf("failed to publish push message: %w", err)
	}
	return nil
}

// NewNATSPublisher publishes push messages for a downstream push gateway.
func NewNATSPublisher(conn *nats.Conn) notification.Publisher {
	return &natsPublisher{conn: conn}
}

type logPublisher struct{}

func (logPublisher) Publish(ctx context.Context, msg notification.PushMessage) error {
	slog.InfoContext(ctx, "Push notification",
		"id", msg.ID,
		"agency_id", msg.AgencyID,
		"recipient_id", msg.RecipientID,
		"type", msg.Type,
		"title", msg.Title,
		"devices", len(msg.DeviceTokens),
	)
	return nil
}

// NewLogPublisher is used when no NATS server is configured.
func NewLogPublisher() notification.Publisher {
	return logPublisher{}
}
