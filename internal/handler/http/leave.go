package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
)

type LeaveHandler struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

func (h *LeaveHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r)

	resp, err := h.leaveService.SubmitRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", resp)
}

func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	req := leave.DecideRequestRequest{
		RequestID: chi.URLParam(r, "id"),
		ActorID:   middleware.UserID(r),
	}
	resp, err := h.leaveService.ApproveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", resp)
}

func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := leave.DecideRequestRequest{
		RequestID: chi.URLParam(r, "id"),
		ActorID:   middleware.UserID(r),
		Reason:    body.Reason,
	}
	resp, err := h.leaveService.RejectRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", resp)
}

func (h *LeaveHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.leaveService.CancelRequest(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *LeaveHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := leave.RequestFilter{Status: parseStatus(r), Page: page, Limit: limit}

	resp, total, err := h.leaveService.ListMyRequests(r.Context(), middleware.EmployeeID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, resp, listMeta(page, limit, total))
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := leave.RequestFilter{Status: parseStatus(r), Page: page, Limit: limit}

	resp, total, err := h.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, resp, listMeta(page, limit, total))
}

func (h *LeaveHandler) MyBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.leaveService.GetMyBalance(r.Context(), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
