package adjustment

import "context"

type AdjustmentService interface {
	CreateAdjustmentRequest(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentRequest, error)

	// ApproveAdjustmentRequest applies the correction to the day's record,
	// recomputes its metrics and marks the request APPROVED.
	ApproveAdjustmentRequest(ctx context.Context, id string) (AdjustmentRequest, error)

	// RejectAdjustmentRequest marks the request REJECTED without touching attendance.
	RejectAdjustmentRequest(ctx context.Context, id string) (AdjustmentRequest, error)

	GetAdjustmentRequest(ctx context.Context, id string) (AdjustmentRequest, error)
	ListMyAdjustmentRequests(ctx context.Context, employeeID string) ([]AdjustmentRequest, error)
	ListAdjustmentRequests(ctx context.Context, status *Status) ([]AdjustmentRequest, error)
	CountPendingAdjustmentRequests(ctx context.Context) (int64, error)
}
