package attendance

import (
	"time"
)

// RecordStatus enum
type RecordStatus string

const (
	StatusInProgress RecordStatus = "IN_PROGRESS"
	StatusCompleted  RecordStatus = "COMPLETED"
	StatusCorrected  RecordStatus = "CORRECTED"
)

// ApprovalStatus enum
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Record is the per-employee-per-day attendance summary. Date is the local
// calendar day as "YYYY-MM-DD", unique per employee. Check-in/out and the
// work-minutes total are derived from the day's timer events.
type Record struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	Date             string
	CheckInTs        *int64
	CheckOutTs       *int64
	TotalWorkMinutes int
	Status           RecordStatus
	ApprovalStatus   ApprovalStatus
	ApprovedBy       *string
	ApprovedAt       *time.Time
	RejectionReason  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}
