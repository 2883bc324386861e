package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrDayAlreadyExists  = errors.New("an attendance record already exists for this employee and date")
	ErrAlreadyProcessed  = errors.New("attendance day has already been approved or rejected")
	ErrApprovedImmutable = errors.New("day already approved")
)
