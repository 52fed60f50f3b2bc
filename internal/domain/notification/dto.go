package notification

import "time"

// CreateNotificationRequest is what producers hand to the queue.
type CreateNotificationRequest struct {
	UserID        string
	CompanyID     string
	Kind          Kind
	Title         string
	Message       string
	RelatedEntity *string
}

type NotificationResponse struct {
	ID            string    `json:"id"`
	Kind          Kind      `json:"kind"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RelatedEntity *string   `json:"related_entity,omitempty"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// SSEEvent is a notification pushed over an SSE stream.
type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
