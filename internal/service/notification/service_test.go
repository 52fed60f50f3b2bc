package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/staffhive/hrms-backend-go/internal/domain/notification"
	"github.com/staffhive/hrms-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	mu       sync.Mutex
	inserted []*notification.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, n)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, notifications...)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notification.Notification
	for _, n := range f.inserted {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.inserted {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.inserted {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.inserted {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

func TestQueueFlushesOnStop(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     10,
		FlushInterval: time.Hour,
		WorkerCount:   1,
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Queue(context.Background(), notification.CreateNotificationRequest{
			UserID:    "user-1",
			CompanyID: "comp-1",
			Kind:      notification.KindGeneral,
			Title:     "hello",
			Message:   "world",
		}))
	}

	svc.Stop()
	assert.Equal(t, 3, repo.count())
}

func TestQueueFullFallsBackToDirectInsert(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     1,
	})
	defer svc.Stop()

	// Fill the queue faster than the worker can drain it; every request
	// must end up inserted one way or the other.
	for i := 0; i < 20; i++ {
		require.NoError(t, svc.Queue(context.Background(), notification.CreateNotificationRequest{
			UserID: "user-1",
			Kind:   notification.KindGeneral,
			Title:  "t",
		}))
	}
}

func TestSubscribeReceivesPublishedNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     1,
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
	})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "user-1")
	defer cleanup()

	require.NoError(t, svc.Queue(context.Background(), notification.CreateNotificationRequest{
		UserID:  "user-1",
		Kind:    notification.KindLeaveApproved,
		Title:   "Leave Request Approved",
		Message: "Your 2-day casual leave request has been approved",
	}))

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, notification.KindLeaveApproved, event.Data.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for SSE event")
	}
}

func TestListAndMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{WorkerCount: 1})
	defer svc.Stop()

	require.NoError(t, repo.Create(context.Background(), &notification.Notification{
		ID: "n-1", UserID: "user-1", Kind: notification.KindGeneral, Title: "a",
	}))
	require.NoError(t, repo.Create(context.Background(), &notification.Notification{
		ID: "n-2", UserID: "user-1", Kind: notification.KindGeneral, Title: "b",
	}))

	list, err := svc.List(context.Background(), "user-1", false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkRead(context.Background(), "user-1", "n-1"))

	count, err := svc.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllRead(context.Background(), "user-1"))
	count, err = svc.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
