package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount     int           // default: 2
	QueueSize       int           // default: 1000
	DeliveryTimeout time.Duration // default: 10 seconds
}

type service struct {
	repo      notification.Repository
	publisher notification.Publisher
	config    Config

	queue    chan notification.Request
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(repo notification.Repository, publisher notification.Publisher, cfg Config) notification.Service {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 10 * time.Second
	}

	s := &service{
		repo:      repo,
		publisher: publisher,
		config:    cfg,
		queue:     make(chan notification.Request, cfg.QueueSize),
		stopCh:    make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

// worker delivers queued requests until Stop, then drains what is left.
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case req := <-s.queue:
			s.deliver(id, req)
		case <-s.stopCh:
			for {
				select {
				case req := <-s.queue:
					s.deliver(id, req)
				default:
					return
				}
			}
		}
	}
}

// deliver persists the notification, resolves the recipient's devices and publishes.
func (s *service) deliver(workerID int, req notification.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.DeliveryTimeout)
	defer cancel()

	n, err := s.repo.Create(ctx, notification.Notification{
		AgencyID:    req.AgencyID,
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
	})
	if err != nil {
		slog.Error("Failed to store notification", "worker", workerID, "type", req.Type, "error", err)
		return
	}

	msg := notification.PushMessage{
		ID:          n.ID,
		AgencyID:    n.AgencyID,
		RecipientID: n.RecipientID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Data:        n.Data,
		CreatedAt:   timeutil.FormatUTC(n.CreatedAt),
	}
	if n.RecipientID != "" {
		tokens, err := s.repo.DeviceTokens(ctx, n.RecipientID)
		if err != nil {
			slog.Warn("Failed to resolve device tokens", "worker", workerID, "recipient_id", n.RecipientID, "error", err)
		}
		msg.DeviceTokens = tokens
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		slog.Error("Failed to publish notification", "worker", workerID, "notification_id", n.ID, "error", err)
	}
}

// Queue implements notification.Service.
func (s *service) Queue(ctx context.Context, req notification.Request) {
	select {
	case <-s.stopCh:
		slog.WarnContext(ctx, "Notification dropped after stop", "type", req.Type)
		return
	default:
	}

	select {
	case s.queue <- req:
	default:
		slog.WarnContext(ctx, "Notification queue full, dropping", "type", req.Type, "agency_id", req.AgencyID)
	}
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("Notification service stopped")
	})
}
