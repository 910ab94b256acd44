package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)

	// DeviceTokens returns the push tokens registered for a user
	DeviceTokens(ctx context.Context, userID string) ([]string, error)
}
