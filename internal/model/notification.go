package model

import "time"

// NotificationKind classifies the event a notification reports.
type NotificationKind string

const (
	NotificationTask     NotificationKind = "task"
	NotificationMessage  NotificationKind = "message"
	NotificationGrade    NotificationKind = "grade"
	NotificationSystem   NotificationKind = "system"
	NotificationDeadline NotificationKind = "deadline"
)

// NotificationPriority ranks notifications for display ordering.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is one delivered event on a user's notification feed.
type Notification struct {
	ID        int                  `json:"id"`
	UserID    int                  `json:"user_id"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Kind      NotificationKind     `json:"kind"`
	Priority  NotificationPriority `json:"priority"`
	IsRead    bool                 `json:"is_read"`
	CreatedAt time.Time            `json:"created_at"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
}
