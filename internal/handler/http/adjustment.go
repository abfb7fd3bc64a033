package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AdjustmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)

	// Approver endpoints
	List(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type adjustmentHandlerImpl struct {
	adjustmentService adjustment.AdjustmentService
	loc               *time.Location
}

func NewAdjustmentHandler(adjustmentService adjustment.AdjustmentService, loc *time.Location) AdjustmentHandler {
	return &adjustmentHandlerImpl{
		adjustmentService: adjustmentService,
		loc:               loc,
	}
}

func (h *adjustmentHandlerImpl) writeList(w http.ResponseWriter, requests []adjustment.AdjustmentRequest) {
	resp := make([]adjustment.AdjustmentResponse, 0, len(requests))
	for _, a := range requests {
		resp = append(resp, adjustmentResponse(a, h.loc))
	}
	response.Success(w, resp)
}

// Create implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req adjustment.CreateAdjustmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	created, err := h.adjustmentService.CreateAdjustmentRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Adjustment request created", adjustmentResponse(created, h.loc))
}

// ListMine implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	requests, err := h.adjustmentService.ListMyAdjustmentRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	h.writeList(w, requests)
}

// List implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *adjustment.Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := adjustment.Status(s)
		if !st.IsValid() {
			response.HandleError(w, r, validator.ValidationErrors{{
				Field:   "status",
				Message: "status must be one of PENDING, APPROVED, REJECTED",
			}})
			return
		}
		status = &st
	}

	requests, err := h.adjustmentService.ListAdjustmentRequests(r.Context(), status)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	h.writeList(w, requests)
}

// PendingCount implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.adjustmentService.CountPendingAdjustmentRequests(r.Context())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, map[string]int64{"pending_count": count})
}

// Get implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.adjustmentService.GetAdjustmentRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Success(w, adjustmentResponse(a, h.loc))
}

// Approve implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	a, err := h.adjustmentService.ApproveAdjustmentRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, "Adjustment request approved", adjustmentResponse(a, h.loc))
}

// Reject implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	a, err := h.adjustmentService.RejectAdjustmentRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, "Adjustment request rejected", adjustmentResponse(a, h.loc))
}
