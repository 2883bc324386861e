package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testUserID    = "user-admin"
)

type fakeRecordRepo struct {
	records []attendance.Record
	seq     int
}

func (f *fakeRecordRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.seq++
	record.ID = fmt.Sprintf("rec-%d", f.seq)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id && rec.CompanyID == companyID {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string, companyID string) (*attendance.Record, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date == date && rec.CompanyID == companyID {
			cp := rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, record attendance.Record) error {
	for i := range f.records {
		if f.records[i].ID == record.ID && f.records[i].CompanyID == record.CompanyID {
			f.records[i] = record
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) List(ctx context.Context, filter attendance.ListFilter, companyID string) ([]attendance.Record, int64, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.CompanyID != companyID {
			continue
		}
		if filter.ApprovalStatus != nil && string(rec.ApprovalStatus) != *filter.ApprovalStatus {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func adminCtx(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"user_id":    testUserID,
		"role":       "admin",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func seedRecord(repo *fakeRecordRepo, employeeID string, status attendance.ApprovalStatus) attendance.Record {
	rec, _ := repo.Create(context.Background(), attendance.Record{
		EmployeeID:       employeeID,
		CompanyID:        testCompanyID,
		Date:             "2026-08-03",
		TotalWorkMinutes: 480,
		Status:           attendance.StatusCompleted,
		ApprovalStatus:   status,
	})
	return rec
}

func newApprovalFixture() (*fakeRecordRepo, attendance.ApprovalService) {
	repo := &fakeRecordRepo{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 4, 10, 0, 0, 0, time.UTC))
	return repo, NewApprovalService(repo, clock)
}

// Test approving a pending day freezes it with approver metadata
func TestApprovalService_Approve(t *testing.T) {
	repo, svc := newApprovalFixture()
	ctx := adminCtx(t)
	rec := seedRecord(repo, "employee-1", attendance.ApprovalPending)

	resp, err := svc.Approve(ctx, attendance.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)

	assert.Equal(t, "APPROVED", resp.ApprovalStatus)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, testUserID, *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)
}

// Test approving twice is rejected, not silently repeated
func TestApprovalService_Approve_AlreadyProcessed(t *testing.T) {
	repo, svc := newApprovalFixture()
	ctx := adminCtx(t)
	rec := seedRecord(repo, "employee-1", attendance.ApprovalPending)

	_, err := svc.Approve(ctx, attendance.ApproveRequest{ID: rec.ID})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, attendance.ApproveRequest{ID: rec.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyProcessed)
}

// Test rejection requires a substantive reason
func TestApprovalService_Reject_ReasonTooShort(t *testing.T) {
	repo, svc := newApprovalFixture()
	ctx := adminCtx(t)
	rec := seedRecord(repo, "employee-1", attendance.ApprovalPending)

	_, err := svc.Reject(ctx, attendance.RejectRequest{ID: rec.ID, Reason: "bad"})
	assert.Error(t, err)

	resp, err := svc.Reject(ctx, attendance.RejectRequest{ID: rec.ID, Reason: "hours do not match the door logs"})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", resp.ApprovalStatus)
	require.NotNil(t, resp.RejectionReason)
}

// Test bulk approval isolates failures per record
func TestApprovalService_BulkApprove_PartialFailure(t *testing.T) {
	repo, svc := newApprovalFixture()
	ctx := adminCtx(t)

	var ids []string
	for i := 0; i < 4; i++ {
		rec := seedRecord(repo, fmt.Sprintf("employee-%d", i), attendance.ApprovalPending)
		ids = append(ids, rec.ID)
	}
	already := seedRecord(repo, "employee-done", attendance.ApprovalApproved)
	repo.records = append(repo.records, attendance.Record{
		ID:             "rec-other-org",
		EmployeeID:     "employee-x",
		CompanyID:      "company-2",
		Date:           "2026-08-03",
		ApprovalStatus: attendance.ApprovalPending,
	})
	ids = append(ids, already.ID, "rec-missing", "rec-other-org")

	resp, err := svc.BulkApprove(ctx, attendance.BulkApproveRequest{RecordIDs: ids})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Approved)
	assert.Equal(t, 3, resp.Failed)
	assert.Len(t, resp.Results, 7)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[4].Success)
	assert.NotNil(t, resp.Results[4].Error)
	assert.False(t, resp.Results[5].Success)

	// The other company's record is invisible to this admin, so it reports
	// failed and stays untouched.
	assert.False(t, resp.Results[6].Success)
	for _, rec := range repo.records {
		if rec.ID == "rec-other-org" {
			assert.Equal(t, attendance.ApprovalPending, rec.ApprovalStatus)
		}
	}
}

// Test bulk approval with no ids fails validation
func TestApprovalService_BulkApprove_Empty(t *testing.T) {
	_, svc := newApprovalFixture()
	ctx := adminCtx(t)

	_, err := svc.BulkApprove(ctx, attendance.BulkApproveRequest{})
	assert.Error(t, err)
}

// Test a record from another company is invisible
func TestApprovalService_Get_CrossCompany(t *testing.T) {
	repo, svc := newApprovalFixture()
	ctx := adminCtx(t)

	repo.seq++
	repo.records = append(repo.records, attendance.Record{
		ID:             "rec-other",
		EmployeeID:     "employee-x",
		CompanyID:      "company-2",
		Date:           "2026-08-03",
		ApprovalStatus: attendance.ApprovalPending,
	})

	_, err := svc.Get(ctx, "rec-other")
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
