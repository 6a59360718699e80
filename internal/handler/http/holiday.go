package http

import (
	"encoding/json"
	"net/http"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/calendar"
	"github.com/worklane-hq/hr-backoffice-go/internal/handler/http/response"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/validator"
)

type HolidayHandler struct {
	holidayRepo calendar.HolidayRepository
}

func NewHolidayHandler(holidayRepo calendar.HolidayRepository) *HolidayHandler {
	return &HolidayHandler{holidayRepo: holidayRepo}
}

type createHolidayRequest struct {
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type holidayResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Create appends a holiday. Existing request durations are unaffected: they
// were computed from the holiday snapshot taken at submission.
func (h *HolidayHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	var errs validator.ValidationErrors
	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	created, err := h.holidayRepo.Create(r.Context(), calendar.Holiday{
		Date:        date,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created", toHolidayResponse(created))
}

func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		holidays []calendar.Holiday
		err      error
	)

	fromRaw, toRaw := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromRaw != "" && toRaw != "" {
		from, okFrom := validator.IsValidDate(fromRaw)
		to, okTo := validator.IsValidDate(toRaw)
		if !okFrom || !okTo {
			response.BadRequest(w, "from and to must be valid dates (YYYY-MM-DD)", nil)
			return
		}
		holidays, err = h.holidayRepo.ListByRange(r.Context(), from, to)
	} else {
		holidays, err = h.holidayRepo.List(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]holidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		responses = append(responses, toHolidayResponse(holiday))
	}
	response.Success(w, responses)
}

func toHolidayResponse(holiday calendar.Holiday) holidayResponse {
	return holidayResponse{
		ID:          holiday.ID,
		Date:        holiday.Date.Format(calendar.DateKey),
		Name:        holiday.Name,
		Description: holiday.Description,
	}
}
