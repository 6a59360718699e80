package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
)

type AttendanceHandler struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r)

	resp, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Punched in", resp)
}

func (h *AttendanceHandler) PunchOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r)

	resp, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Punched out", resp)
}

func (h *AttendanceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := now.AddDate(0, -1, 0)
	to := now

	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			to = parsed
		}
	}

	resp, err := h.attendanceService.GetMyAttendance(r.Context(), middleware.EmployeeID(r), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.GetWeeklyStats(r.Context(), middleware.EmployeeID(r), time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *AttendanceHandler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateEditRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r)

	resp, err := h.attendanceService.SubmitEditRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Edit request submitted", resp)
}

func (h *AttendanceHandler) ApproveEdit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.ApproveEditRequest(r.Context(), chi.URLParam(r, "id"), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Edit request approved", resp)
}

func (h *AttendanceHandler) RejectEdit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.attendanceService.RejectEditRequest(r.Context(), chi.URLParam(r, "id"), middleware.UserID(r), body.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Edit request rejected", resp)
}

func (h *AttendanceHandler) ListEdits(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := attendance.EditRequestFilter{Status: parseStatus(r), Page: page, Limit: limit}

	resp, total, err := h.attendanceService.ListEditRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, resp, listMeta(page, limit, total))
}

func (h *AttendanceHandler) ListMyEdits(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := attendance.EditRequestFilter{Status: parseStatus(r), Page: page, Limit: limit}

	resp, total, err := h.attendanceService.ListMyEditRequests(r.Context(), middleware.EmployeeID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, resp, listMeta(page, limit, total))
}
