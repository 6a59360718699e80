package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/jwt"
)

type NotificationHandler struct {
	notificationService notification.Service
	jwtService          jwt.Service
}

func NewNotificationHandler(notificationService notification.Service, jwtService jwt.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		jwtService:          jwtService,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	resp, err := h.notificationService.List(r.Context(), middleware.UserID(r), page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notificationService.MarkRead(r.Context(), chi.URLParam(r, "id"), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked read", nil)
}

// GetStreamToken issues the short-lived token the SSE client passes as a
// query parameter, since EventSource cannot set headers.
func (h *NotificationHandler) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	token, expiresIn, err := h.jwtService.GenerateSSEToken(middleware.UserID(r))
	if err != nil {
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}
	response.Success(w, map[string]any{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream is the SSE endpoint. Auth comes from the ?token= stream token, not
// the normal Authorization header.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	userID, err := h.jwtService.ValidateSSEToken(tokenString)
	if err != nil {
		response.Unauthorized(w, "Invalid stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notificationService.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
