package response

import (
	"errors"
	"net/http"

	"github.com/shiftledger/shiftledger-backend-go/internal/domain/attendance"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/employee"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/payroll"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Timer domain errors
	switch {
	case errors.Is(err, timer.ErrNotWorking):
		Conflict(w, "Cannot take a break while not working")
	case errors.Is(err, timer.ErrDayNotStarted):
		Conflict(w, "The work day has not been started")
	case errors.Is(err, timer.ErrDayEnded):
		Conflict(w, "The work day has already ended")
	case errors.Is(err, timer.ErrNoEndToCancel):
		Conflict(w, "No checkout to cancel")
	case errors.Is(err, timer.ErrCancelLimitReached):
		Conflict(w, "Checkout cancellation limit reached for today")
	case errors.Is(err, timer.ErrEventNotFound):
		NotFound(w, "Timer event not found")
	case errors.Is(err, timer.ErrNotEventOwner):
		Forbidden(w, "Not allowed to access this timer event")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDayAlreadyExists):
		Conflict(w, "Attendance day already exists")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance day already processed")
	case errors.Is(err, attendance.ErrApprovedImmutable):
		Forbidden(w, "Approved attendance days cannot be changed")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, "Payroll already exists for this employee and period")
	case errors.Is(err, payroll.ErrNotPriced):
		Conflict(w, "Payroll amounts have not been priced yet")
	case errors.Is(err, payroll.ErrNotFailed):
		Conflict(w, "No failed payrolls to retry")
	case errors.Is(err, payroll.ErrNothingToDisburse):
		Conflict(w, "No pending payrolls to disburse")
	case errors.Is(err, payroll.ErrInsufficientFunds):
		Conflict(w, "Wallet balance is insufficient for the batch")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidWallet):
		BadRequest(w, "Wallet address is not a valid ledger address", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
