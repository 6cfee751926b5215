package domain

import "time"

type NotificationType string

const (
	NotificationTaskAssigned   NotificationType = "TASK_ASSIGNED"
	NotificationInviteAccepted NotificationType = "INVITE_ACCEPTED"
)

// Notification is immutable once created, apart from ReadAt moving from nil
// to a timestamp exactly once.
type Notification struct {
	ID             string           `json:"id"`
	UserID         string           `json:"userId"`
	OrganizationID string           `json:"organizationId"`
	Type           NotificationType `json:"type"`
	EntityID       *string          `json:"entityId"`
	Message        string           `json:"message"`
	ReadAt         *time.Time       `json:"readAt"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// IsRead reports whether the notification has been marked read.
func (n Notification) IsRead() bool { return n.ReadAt != nil }
