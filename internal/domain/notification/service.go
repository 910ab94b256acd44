package notification

import (
	"context"
)

// Service dispatches notifications in the background
type Service interface {
	// Queue never blocks the caller; a full queue drops the request with a warning
	Queue(ctx context.Context, req Request)

	// Stop drains the queue and waits for the workers
	Stop()
}

// Publisher delivers a push message to its transport.
type Publisher interface {
	Publish(ctx context.Context, msg PushMessage) error
}
