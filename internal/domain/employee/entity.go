package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	CompanyID     string
	FullName      string
	Email         *string
	HourlyRateUSD decimal.Decimal
	WalletAddress *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
