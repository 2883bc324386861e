package employee

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/employee"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/payroll"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	gateway      payroll.LedgerGateway
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, gateway payroll.LedgerGateway) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		gateway:      gateway,
	}
}

// Helper to get identity claims from JWT context
func claimsFromContext(ctx context.Context) (companyID, employeeID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)
	role, _ = claims["role"].(string)

	return companyID, employeeID, role, nil
}

// RegisterWallet implements employee.EmployeeService. Employees may only
// register their own wallet; admins may register anyone's.
func (s *EmployeeServiceImpl) RegisterWallet(ctx context.Context, req employee.RegisterWalletRequest) (employee.EmployeeResponse, error) {
	companyID, selfID, role, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.EmployeeID == "" {
		req.EmployeeID = selfID
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if role != "admin" && role != "owner" && req.EmployeeID != selfID {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	if !s.gateway.ValidateAddress(req.Address) {
		return employee.EmployeeResponse{}, employee.ErrInvalidWallet
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateWalletAddress(ctx, emp.ID, companyID, req.Address); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update wallet address: %w", err)
	}
	emp.WalletAddress = &req.Address

	return toEmployeeResponse(emp), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(emp), nil
}

// ListActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	results := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		results = append(results, toEmployeeResponse(emp))
	}

	return results, nil
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:            emp.ID,
		FullName:      emp.FullName,
		Email:         emp.Email,
		HourlyRateUSD: emp.HourlyRateUSD,
		WalletAddress: emp.WalletAddress,
		IsActive:      emp.IsActive,
	}
}
