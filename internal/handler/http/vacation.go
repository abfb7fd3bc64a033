package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type vacationHandlerImpl struct {
	vacationService vacation.VacationService
	loc             *time.Location
}

func NewVacationHandler(vacationService vacation.VacationService, loc *time.Location) VacationHandler {
	return &vacationHandlerImpl{
		vacationService: vacationService,
		loc:             loc,
	}
}

// Create implements VacationHandler.
func (h *vacationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req vacation.CreateVacationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	created, err := h.vacationService.CreateVacationRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Vacation request created", vacationResponse(created, h.loc))
}

// ListMine implements VacationHandler.
func (h *vacationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	requests, err := h.vacationService.ListMyVacationRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	resp := make([]vacation.VacationResponse, 0, len(requests))
	for _, v := range requests {
		resp = append(resp, vacationResponse(v, h.loc))
	}
	response.Success(w, resp)
}

// UpdateStatus implements VacationHandler.
func (h *vacationHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req vacation.UpdateVacationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.vacationService.UpdateVacationStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request updated", vacationResponse(updated, h.loc))
}
