package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/user"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/email"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/sse"
)

type notificationServiceImpl struct {
	repo     notification.Repository
	userRepo user.UserRepository
	hub      *sse.Hub
	mail     email.Sender
}

func NewNotificationService(
	repo notification.Repository,
	userRepo user.UserRepository,
	hub *sse.Hub,
	mail email.Sender,
) notification.Service {
	return &notificationServiceImpl{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		mail:     mail,
	}
}

// Notify persists one row per recipient, pushes over SSE and mails each
// recipient. Every failure is logged and swallowed: delivery never decides
// the outcome of the workflow operation that triggered it.
func (s *notificationServiceImpl) Notify(ctx context.Context, recipientIDs []string, typ notification.Type, title, message string, data map[string]any) {
	if len(recipientIDs) == 0 {
		return
	}

	rows := make([]notification.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		rows = append(rows, notification.Notification{
			ID:          uuid.NewString(),
			RecipientID: recipientID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        data,
			CreatedAt:   time.Now().UTC(),
		})
	}
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		slog.Error("failed to persist notifications", "type", typ, "error", err)
	}

	for _, row := range rows {
		s.hub.Publish(row.RecipientID, sse.Event{
			Event: string(typ),
			Data:  toResponse(row),
		})
	}

	go s.sendMail(recipientIDs, title, message)
}

func (s *notificationServiceImpl) sendMail(recipientIDs []string, title, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var addresses []string
	for _, id := range recipientIDs {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			slog.Warn("notification mail recipient lookup failed", "user_id", id, "error", err)
			continue
		}
		addresses = append(addresses, u.Email)
	}
	if len(addresses) == 0 {
		return
	}
	if err := s.mail.SendWorkflowUpdate(addresses, title, []string{message}); err != nil {
		slog.Warn("notification mail delivery failed", "error", err)
	}
}

func (s *notificationServiceImpl) List(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (notification.ListResponse, error) {
	rows, total, err := s.repo.ListByRecipient(ctx, recipientID, page, limit, unreadOnly)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.repo.UnreadCount(ctx, recipientID)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("count unread notifications: %w", err)
	}

	responses := make([]notification.Response, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toResponse(row))
	}
	return notification.ListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}

func (s *notificationServiceImpl) Subscribe(recipientID string) (chan sse.Event, func()) {
	return s.hub.Subscribe(recipientID)
}

func toResponse(n notification.Notification) notification.Response {
	return notification.Response{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
