package vacation

import "context"

type VacationService interface {
	CreateVacationRequest(ctx context.Context, req CreateVacationRequest) (VacationRequest, error)
	UpdateVacationStatus(ctx context.Context, req UpdateVacationStatusRequest) (VacationRequest, error)
	GetVacationRequest(ctx context.Context, id string) (VacationRequest, error)
	ListMyVacationRequests(ctx context.Context, employeeID string) ([]VacationRequest, error)
}
