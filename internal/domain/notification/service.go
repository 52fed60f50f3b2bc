package notification

import "context"

type Service interface {
	// Queue enqueues a notification for async batch insertion. Delivery is
	// best effort; a failed insert is logged and dropped.
	Queue(ctx context.Context, req CreateNotificationRequest) error

	List(ctx context.Context, userID string, unreadOnly bool) (*NotificationListResponse, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID string, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error

	// Subscribe opens an SSE subscription for a user.
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	Stop()
}
