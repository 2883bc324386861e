package attendance

import (
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ApproveRequest struct {
	ID      string  `json:"-"`
	Comment *string `json:"comment,omitempty"`
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	} else if len(r.Reason) < 10 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason must be at least 10 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkApproveRequest struct {
	RecordIDs []string `json:"record_ids"`
	Comment   *string  `json:"comment,omitempty"`
}

func (r *BulkApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "record_ids",
			Message: "at least one record id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkApproveItemResult reports the outcome of one record in a bulk approve.
// Items are independent: a failing id never rolls back the others.
type BulkApproveItemResult struct {
	RecordID string  `json:"record_id"`
	Success  bool    `json:"success"`
	Error    *string `json:"error,omitempty"`
}

type BulkApproveResponse struct {
	Results  []BulkApproveItemResult `json:"results"`
	Approved int                     `json:"approved"`
	Failed   int                     `json:"failed"`
}

type ListFilter struct {
	EmployeeID     *string
	StartDate      *string
	EndDate        *string
	ApprovalStatus *string
	Page           int
	Limit          int
}

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Date             string  `json:"date"`
	CheckInTs        *int64  `json:"check_in_ts,omitempty"`
	CheckOutTs       *int64  `json:"check_out_ts,omitempty"`
	TotalWorkMinutes int     `json:"total_work_minutes"`
	Status           string  `json:"status"`
	ApprovalStatus   string  `json:"approval_status"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
}

type ListRecordResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
