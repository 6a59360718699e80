package notification

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, n Notification) error
	CreateBatch(ctx context.Context, ns []Notification) error
	ListByRecipient(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}
