package attendance

import (
	"context"
)

// RecordRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type RecordRepository interface {
	// Create inserts a new day record. The (employee_id, date) unique
	// constraint makes concurrent first clock-ins surface ErrDayAlreadyExists
	// rather than duplicate days.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee-day,
	// nil when the day has no record yet
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string, companyID string) (*Record, error)

	// Update rewrites the derived summary and approval fields
	Update(ctx context.Context, record Record) error

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter ListFilter, companyID string) ([]Record, int64, error)
}
