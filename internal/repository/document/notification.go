package document

import (
	"context"
	"fmt"

	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
)

type notificationRecord struct {
	ID          string         `json:"id,omitempty"`
	AgencyID    string         `json:"agencyId"`
	RecipientID string         `json:"recipientId,omitempty"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
}

type notificationRepository struct {
	store docstore.Store
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	doc, err := docstore.Encode(notificationRecord{
		ID:          n.ID,
		AgencyID:    n.AgencyID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		Data:        n.Data,
	})
	if err != nil {
		return notification.Notification{}, err
	}
	saved, err := r.store.Put(ctx, docstore.CollectionNotifications, doc)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = saved.ID()
	if n.CreatedAt, err = parseTime("createdAt", saved.String(docstore.FieldCreatedAt)); err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

// DeviceTokens implements notification.Repository.
func (r *notificationRepository) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionDevices, "userId", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	tokens := make([]string, 0, len(docs))
	for _, doc := range docs {
		if token := doc.String("token"); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

func NewNotificationRepository(store docstore.Store) notification.Repository {
	return &notificationRepository{store: store}
}
