package notification

import "time"

type Response struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type ListResponse struct {
	Notifications []Response `json:"notifications"`
	Total         int64      `json:"total"`
	UnreadCount   int64      `json:"unread_count"`
}
