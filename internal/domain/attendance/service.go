package attendance

import (
	"context"
)

// ApprovalService is the admin workflow that freezes a day's events once
// approved. The APPROVED freeze is enforced here and re-checked by the timer
// service on every mutating call.
type ApprovalService interface {
	// Approve transitions a PENDING day to APPROVED and freezes it
	Approve(ctx context.Context, req ApproveRequest) (RecordResponse, error)

	// Reject transitions a PENDING day to REJECTED with a reason
	Reject(ctx context.Context, req RejectRequest) (RecordResponse, error)

	// BulkApprove approves a set of days with per-id success reporting
	BulkApprove(ctx context.Context, req BulkApproveRequest) (BulkApproveResponse, error)

	// List retrieves records with filters (admin)
	List(ctx context.Context, filter ListFilter) (ListRecordResponse, error)

	// Get retrieves a single record by id
	Get(ctx context.Context, id string) (RecordResponse, error)
}
