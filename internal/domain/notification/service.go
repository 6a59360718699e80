package notification

import (
	"context"

	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/sse"
)

// Notifier is the write side used by the workflow services. Delivery is
// best-effort: implementations log failures and never return them.
type Notifier interface {
	Notify(ctx context.Context, recipientIDs []string, typ Type, title, message string, data map[string]any)
}

// Service is the read/stream surface exposed over HTTP.
type Service interface {
	Notifier

	List(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (ListResponse, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	Subscribe(recipientID string) (chan sse.Event, func())
}
