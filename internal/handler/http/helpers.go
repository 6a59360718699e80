package http

import (
	"net/http"
	"strconv"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
)

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func parseStatus(r *http.Request) *workflow.Status {
	raw := r.URL.Query().Get("status")
	switch workflow.Status(raw) {
	case workflow.StatusPending, workflow.StatusApproved, workflow.StatusRejected, workflow.StatusCancelled:
		s := workflow.Status(raw)
		return &s
	default:
		return nil
	}
}

func listMeta(page, limit int, total int64) *response.Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
