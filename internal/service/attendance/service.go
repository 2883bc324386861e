package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/attendance"
)

type ApprovalServiceImpl struct {
	recordRepo attendance.RecordRepository
	clock      clockwork.Clock
}

func NewApprovalService(recordRepo attendance.RecordRepository, clock clockwork.Clock) attendance.ApprovalService {
	return &ApprovalServiceImpl{
		recordRepo: recordRepo,
		clock:      clock,
	}
}

// Helper to get identity claims from JWT context
func claimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// Approve implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, req attendance.ApproveRequest) (attendance.RecordResponse, error) {
	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.recordRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if rec.ApprovalStatus != attendance.ApprovalPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	now := s.clock.Now()
	rec.ApprovalStatus = attendance.ApprovalApproved
	rec.ApprovedBy = &userID
	rec.ApprovedAt = &now
	rec.RejectionReason = nil

	if err := s.recordRepo.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to approve attendance day: %w", err)
	}

	return toRecordResponse(rec), nil
}

// Reject implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, req attendance.RejectRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.recordRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if rec.ApprovalStatus != attendance.ApprovalPending {
		return attendance.RecordResponse{}, attendance.ErrAlreadyProcessed
	}

	now := s.clock.Now()
	rec.ApprovalStatus = attendance.ApprovalRejected
	rec.ApprovedBy = &userID
	rec.ApprovedAt = &now
	rec.RejectionReason = &req.Reason

	if err := s.recordRepo.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to reject attendance day: %w", err)
	}

	return toRecordResponse(rec), nil
}

// BulkApprove implements attendance.ApprovalService. Each record id is
// processed on its own; a failing id is reported in its result item and never
// blocks the remaining ids.
func (s *ApprovalServiceImpl) BulkApprove(ctx context.Context, req attendance.BulkApproveRequest) (attendance.BulkApproveResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkApproveResponse{}, err
	}

	resp := attendance.BulkApproveResponse{
		Results: make([]attendance.BulkApproveItemResult, 0, len(req.RecordIDs)),
	}

	for _, id := range req.RecordIDs {
		item := attendance.BulkApproveItemResult{RecordID: id}

		_, err := s.Approve(ctx, attendance.ApproveRequest{ID: id, Comment: req.Comment})
		if err != nil {
			msg := err.Error()
			item.Error = &msg
			resp.Failed++
		} else {
			item.Success = true
			resp.Approved++
		}

		resp.Results = append(resp.Results, item)
	}

	return resp, nil
}

// List implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListRecordResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListRecordResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.recordRepo.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListRecordResponse{}, fmt.Errorf("failed to list attendance days: %w", err)
	}

	resp := attendance.ListRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toRecordResponse(rec))
	}

	return resp, nil
}

// Get implements attendance.ApprovalService.
func (s *ApprovalServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.recordRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(rec), nil
}

func toRecordResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		Date:             rec.Date,
		CheckInTs:        rec.CheckInTs,
		CheckOutTs:       rec.CheckOutTs,
		TotalWorkMinutes: rec.TotalWorkMinutes,
		Status:           string(rec.Status),
		ApprovalStatus:   string(rec.ApprovalStatus),
		ApprovedBy:       rec.ApprovedBy,
		RejectionReason:  rec.RejectionReason,
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.ApprovedAt != nil {
		at := rec.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}

	return resp
}
