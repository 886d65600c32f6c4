package ports

import (
	"context"
	"time"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is one transient toast surfaced to the console user.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier stores and serves recent notifications. Implementations expire
// old entries on their own schedule.
type Notifier interface {
	Push(ctx context.Context, n Notification) error
	Recent(ctx context.Context) ([]Notification, error)
}
