package notification

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/securefront/workforce-backend-go/internal/domain/notification"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
	"github.com/securefront/workforce-backend-go/internal/repository/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu       sync.Mutex
	messages []notification.PushMessage
	started  chan struct{}
	release  chan struct{}
}

func (p *capturePublisher) Publish(_ context.Context, msg notification.PushMessage) error {
	if p.started != nil {
		p.started <- struct{}{}
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *capturePublisher) all() []notification.PushMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.PushMessage(nil), p.messages...)
}

func TestNotificationService_DeliversAndPersists(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	_, err := store.Put(ctx, docstore.CollectionDevices, docstore.Document{"userId": "emp-1", "token": "tok-1"})
	require.NoError(t, err)
	_, err = store.Put(ctx, docstore.CollectionDevices, docstore.Document{"userId": "emp-1", "token": ""})
	require.NoError(t, err)

	pub := &capturePublisher{}
	svc := NewNotificationService(document.NewNotificationRepository(store), pub, Config{WorkerCount: 1})

	svc.Queue(ctx, notification.Request{
		AgencyID: "agency-1", RecipientID: "emp-1", Type: notification.TypeClockIn, Title: "Clocked in", Message: "Harbour Gate",
	})
	svc.Queue(ctx, notification.Request{
		AgencyID: "agency-1", Type: notification.TypeAbsenteesMarked, Title: "Absentees marked", Data: map[string]any{"count": 2},
	})
	svc.Stop()

	msgs := pub.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, notification.TypeClockIn, msgs[0].Type)
	assert.Equal(t, []string{"tok-1"}, msgs[0].DeviceTokens)
	assert.NotEmpty(t, msgs[0].ID)
	assert.NotEmpty(t, msgs[0].CreatedAt)
	assert.Empty(t, msgs[1].DeviceTokens)

	stored, err := store.List(ctx, docstore.CollectionNotifications)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestNotificationService_QueueFullDrops(t *testing.T) {
	pub := &capturePublisher{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewNotificationService(document.NewNotificationRepository(docstore.NewMemory()), pub, Config{WorkerCount: 1, QueueSize: 1})
	ctx := context.Background()

	svc.Queue(ctx, notification.Request{AgencyID: "agency-1", Type: notification.TypeShiftApplied, Title: "first"})
	<-pub.started

	svc.Queue(ctx, notification.Request{AgencyID: "agency-1", Type: notification.TypeShiftApplied, Title: "second"})
	svc.Queue(ctx, notification.Request{AgencyID: "agency-1", Type: notification.TypeShiftApplied, Title: "dropped"})

	go func() {
		for range pub.started {
		}
	}()
	close(pub.release)
	svc.Stop()
	close(pub.started)

	msgs := pub.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Title)
	assert.Equal(t, "second", msgs[1].Title)

	svc.Queue(ctx, notification.Request{AgencyID: "agency-1", Title: "after stop"})
	svc.Stop()
	assert.Len(t, pub.all(), 2)
}

func TestNATSPublisher(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set")
	}
	nc, err := nats.Connect(url)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	sub, err := nc.SubscribeSync(PushSubject("agency-1"))
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	err = NewNATSPublisher(nc).Publish(context.Background(), notification.PushMessage{
		ID: "n-1", AgencyID: "agency-1", Type: notification.TypeClockOut, Title: "Clocked out",
	})
	require.NoError(t, err)

	raw, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)

	var got notification.PushMessage
	require.NoError(t, json.Unmarshal(raw.Data, &got))
	assert.Equal(t, "n-1", got.ID)
	assert.Equal(t, notification.TypeClockOut, got.Type)
}
