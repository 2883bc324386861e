package employee

import (
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RegisterWalletRequest struct {
	EmployeeID string `json:"-"`
	Address    string `json:"address"`
}

func (r *RegisterWalletRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{
			Field:   "address",
			Message: "address is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	FullName      string          `json:"full_name"`
	Email         *string         `json:"email,omitempty"`
	HourlyRateUSD decimal.Decimal `json:"hourly_rate_usd"`
	WalletAddress *string         `json:"wallet_address,omitempty"`
	IsActive      bool            `json:"is_active"`
}
