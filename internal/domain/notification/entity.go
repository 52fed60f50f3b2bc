package notification

import "time"

// Kind classifies what a notification is about.
type Kind string

const (
	KindLeaveSubmitted Kind = "leave_submitted"
	KindLeaveApproved  Kind = "leave_approved"
	KindLeaveRejected  Kind = "leave_rejected"
	KindLeaveCancelled Kind = "leave_cancelled"
	KindGeneral        Kind = "general"
)

type Notification struct {
	ID            string
	UserID        string
	CompanyID     string
	Kind          Kind
	Title         string
	Message       string
	RelatedEntity *string
	IsRead        bool
	CreatedAt     time.Time
}
