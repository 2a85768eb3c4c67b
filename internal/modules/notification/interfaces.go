package notification

import (
	"context"

	"homeserve/internal/domain"
)

// NotificationStore — only the methods the notification service uses.
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, recipientID int64) error
	MarkAllAsRead(ctx context.Context, recipientID int64) error
}
