package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/middleware"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
)

type ExitHandler struct {
	exitService exit.ExitService
}

func NewExitHandler(exitService exit.ExitService) *ExitHandler {
	return &ExitHandler{exitService: exitService}
}

func (h *ExitHandler) SubmitResignation(w http.ResponseWriter, r *http.Request) {
	var req exit.CreateResignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = middleware.EmployeeID(r)

	resp, err := h.exitService.SubmitResignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Resignation submitted", resp)
}

func (h *ExitHandler) ApproveResignation(w http.ResponseWriter, r *http.Request) {
	req := exit.DecideResignationRequest{
		ResignationID: chi.URLParam(r, "id"),
		ActorID:       middleware.UserID(r),
	}
	resp, err := h.exitService.ApproveResignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation approved", resp)
}

func (h *ExitHandler) RejectResignation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	req := exit.DecideResignationRequest{
		ResignationID: chi.URLParam(r, "id"),
		ActorID:       middleware.UserID(r),
		Reason:        body.Reason,
	}
	resp, err := h.exitService.RejectResignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation rejected", resp)
}

func (h *ExitHandler) CancelResignation(w http.ResponseWriter, r *http.Request) {
	err := h.exitService.CancelResignation(r.Context(), chi.URLParam(r, "id"), middleware.EmployeeID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Resignation cancelled", nil)
}

func (h *ExitHandler) GetResignation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.exitService.GetResignation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ExitHandler) ListMyResignations(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := exit.ResignationFilter{Status: parseStatus(r), Page: page, Limit: limit}

	resp, total, err := h.exitService.ListMyResignations(r.Context(), middleware.EmployeeID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, resp, listMeta(page, limit, total))
}

func (h *ExitHandler) ListResignations(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := exit.ResignationFilter{Status: parseStatus(r), Page: page, Limit: limit}

	resp, total, err := h.exitService.ListResignations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, resp, listMeta(page, limit, total))
}

func (h *ExitHandler) GetClearance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.exitService.GetClearance(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ExitHandler) UpdateClearanceItem(w http.ResponseWriter, r *http.Request) {
	var req exit.UpdateClearanceItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.ItemID = chi.URLParam(r, "itemID")
	req.ActorID = middleware.UserID(r)

	resp, err := h.exitService.UpdateClearanceItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clearance item updated", resp)
}

func (h *ExitHandler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	resp, err := h.exitService.GetSettlement(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *ExitHandler) UpdateSettlement(w http.ResponseWriter, r *http.Request) {
	var req exit.UpdateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	resp, err := h.exitService.UpdateSettlement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settlement updated", resp)
}

func (h *ExitHandler) UpdateSettlementStatus(w http.ResponseWriter, r *http.Request) {
	var req exit.UpdateSettlementStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	resp, err := h.exitService.UpdateSettlementStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Settlement status updated", resp)
}
