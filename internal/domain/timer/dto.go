package timer

import (
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/validator"
)

// ========================================
// TIMER DTOs
// ========================================

type ClockActionRequest struct {
	Action string  `json:"action"`
	Memo   *string `json:"memo,omitempty"`
}

func (r *ClockActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if !EventType(r.Action).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of WORK, REST, END",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelLastEndRequest struct {
	Date string `json:"date"`
}

func (r *CancelLastEndRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CorrectEventRequest struct {
	EventID string  `json:"-"`
	Ts      *int64  `json:"ts,omitempty"`
	Type    *string `json:"event_type,omitempty"`
	Memo    *string `json:"memo,omitempty"`
	Reason  string  `json:"reason"`
}

func (r *CorrectEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a correction reason is required",
		})
	}

	if r.Ts == nil && r.Type == nil && r.Memo == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of ts, event_type, memo must be provided",
		})
	}

	if r.Ts != nil && *r.Ts <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ts",
			Message: "ts must be a positive unix timestamp in seconds",
		})
	}

	if r.Type != nil && !EventType(*r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "event_type",
			Message: "event_type must be one of WORK, REST, END",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeleteEventRequest struct {
	EventID string `json:"-"`
	Reason  string `json:"reason"`
}

func (r *DeleteEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EventID) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_id",
			Message: "event_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a deletion reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"event_type"`
	Ts                   int64   `json:"ts"`
	EndTs                *int64  `json:"end_ts,omitempty"`
	DurationFromPrevious *int64  `json:"duration_from_previous,omitempty"`
	DurationFromNext     *int64  `json:"duration_from_next,omitempty"`
	Memo                 *string `json:"memo,omitempty"`
}

type DayResponse struct {
	Date              string          `json:"date"`
	EmployeeID        string          `json:"employee_id"`
	State             string          `json:"state"`
	NextActions       []string        `json:"next_actions"`
	CheckInTs         *int64          `json:"check_in_ts,omitempty"`
	CheckOutTs        *int64          `json:"check_out_ts,omitempty"`
	TotalWorkSeconds  int64           `json:"total_work_seconds"`
	TotalBreakSeconds int64           `json:"total_break_seconds"`
	TotalWorkMinutes  int             `json:"total_work_minutes"`
	ApprovalStatus    string          `json:"approval_status"`
	Events            []EventResponse `json:"events"`
}
