package timer

import (
	"time"
)

// EventType is the closed set of clock actions. Unknown values are rejected
// at the request boundary.
type EventType string

const (
	EventWork EventType = "WORK"
	EventRest EventType = "REST"
	EventEnd  EventType = "END"
)

func (t EventType) Valid() bool {
	switch t {
	case EventWork, EventRest, EventEnd:
		return true
	}
	return false
}

// Event is one atomic clock action. Timestamps are unix seconds; EndTs is set
// when the next event closes the interval this event opened. Duration fields
// are derived on read and never stored.
type Event struct {
	ID                 string
	AttendanceRecordID string
	EmployeeID         string
	CompanyID          string
	Type               EventType
	Ts                 int64
	EndTs              *int64
	Memo               *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CorrectionAction enum
type CorrectionAction string

const (
	CorrectionUpdate    CorrectionAction = "UPDATE"
	CorrectionDelete    CorrectionAction = "DELETE"
	CorrectionCancelEnd CorrectionAction = "CANCEL_END"
)

// CorrectionStatus enum. Admin-initiated corrections are APPROVED immediately,
// employee self-edits stay PENDING until an admin reviews them.
type CorrectionStatus string

const (
	CorrectionApproved CorrectionStatus = "APPROVED"
	CorrectionPending  CorrectionStatus = "PENDING"
)

// Correction is one append-only audit row, written for every event mutation.
type Correction struct {
	ID                 string
	TimerEventID       *string
	AttendanceRecordID string
	CompanyID          string
	ActorID            string
	Action             CorrectionAction
	Field              *string
	BeforeValue        *string
	AfterValue         *string
	Reason             string
	Status             CorrectionStatus
	CreatedAt          time.Time
}

// WorkTimeTotals is the result of replaying one day's event sequence.
type WorkTimeTotals struct {
	WorkSeconds  int64
	BreakSeconds int64
}
