package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) error {
	q := r.db.QuerierFrom(ctx)

	raw, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("encode notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
	`
	if _, err := q.Exec(ctx, query, n.ID, n.RecipientID, n.Type, n.Title, n.Message, raw); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	for _, n := range ns {
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) ([]notification.Notification, int64, error) {
	q := r.db.QuerierFrom(ctx)

	where := ` WHERE recipient_id = $1 AND ($2::bool = FALSE OR is_read = FALSE)`

	query := `
		SELECT id, recipient_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications` + where + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	lim, offset := pageToLimitOffset(page, limit)
	rows, err := q.Query(ctx, query, recipientID, unreadOnly, lim, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var (
			n   notification.Notification
			raw []byte
		)
		err := rows.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &raw, &n.IsRead, &n.ReadAt, &n.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &n.Data); err != nil {
				return nil, 0, fmt.Errorf("decode notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM notifications` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, recipientID, unreadOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepositoryImpl) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	q := r.db.QuerierFrom(ctx)

	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`
	if err := q.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, recipientID string) error {
	q := r.db.QuerierFrom(ctx)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND recipient_id = $2
	`
	tag, err := q.Exec(ctx, query, id, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}
