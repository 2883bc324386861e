package timer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/attendance"
	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
	"github.com/shiftledger/shiftledger-backend-go/internal/pkg/database"
	"github.com/shiftledger/shiftledger-backend-go/internal/repository/postgresql"
)

// maxEndCancellations bounds cancel-last-end per employee per calendar day.
const maxEndCancellations = 3

type TimerServiceImpl struct {
	db             *database.DB
	eventRepo      timer.EventRepository
	correctionRepo timer.CorrectionRepository
	recordRepo     attendance.RecordRepository
	clock          clockwork.Clock
}

func NewTimerService(
	db *database.DB,
	eventRepo timer.EventRepository,
	correctionRepo timer.CorrectionRepository,
	recordRepo attendance.RecordRepository,
	clock clockwork.Clock,
) timer.TimerService {
	return &TimerServiceImpl{
		db:             db,
		eventRepo:      eventRepo,
		correctionRepo: correctionRepo,
		recordRepo:     recordRepo,
		clock:          clock,
	}
}

// inTx runs fn in a single database transaction when a pool handle is
// present; repositories pick the transaction up from the context.
func (s *TimerServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// Helper to get identity claims from JWT context
func claimsFromContext(ctx context.Context) (companyID, employeeID, userID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)
	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)

	return companyID, employeeID, userID, role, nil
}

func isAdminRole(role string) bool {
	return role == "admin" || role == "owner"
}

// ClockAction implements timer.TimerService.
func (s *TimerServiceImpl) ClockAction(ctx context.Context, req timer.ClockActionRequest) (timer.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timer.DayResponse{}, err
	}

	companyID, employeeID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return timer.DayResponse{}, err
	}
	if employeeID == "" {
		return timer.DayResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	action := timer.EventType(req.Action)
	now := s.clock.Now()
	date := now.Format("2006-01-02")

	rec, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}

	if rec == nil {
		if action != timer.EventWork {
			return timer.DayResponse{}, timer.ErrDayNotStarted
		}
		created, err := s.recordRepo.Create(ctx, attendance.Record{
			EmployeeID:     employeeID,
			CompanyID:      companyID,
			Date:           date,
			Status:         attendance.StatusInProgress,
			ApprovalStatus: attendance.ApprovalPending,
		})
		if err != nil {
			// A concurrent first clock-in won the unique constraint; fall
			// through to the freshly created record and validate as usual.
			if err == attendance.ErrDayAlreadyExists {
				rec, err = s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
				if err != nil || rec == nil {
					return timer.DayResponse{}, fmt.Errorf("failed to reload attendance day: %w", err)
				}
			} else {
				return timer.DayResponse{}, fmt.Errorf("failed to create attendance day: %w", err)
			}
		} else {
			rec = &created
		}
	}

	if rec.ApprovalStatus == attendance.ApprovalApproved {
		return timer.DayResponse{}, attendance.ErrApprovedImmutable
	}

	last, err := s.eventRepo.GetLastByRecord(ctx, rec.ID, companyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to get last event: %w", err)
	}

	state := timer.StateFromLastEvent(last)
	if !timer.ActionLegal(state, action) {
		switch {
		case state == timer.StateEnded:
			return timer.DayResponse{}, timer.ErrDayEnded
		case action == timer.EventRest:
			return timer.DayResponse{}, timer.ErrNotWorking
		default:
			return timer.DayResponse{}, timer.ErrDayNotStarted
		}
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		_, err := s.eventRepo.Create(ctx, timer.Event{
			AttendanceRecordID: rec.ID,
			EmployeeID:         employeeID,
			CompanyID:          companyID,
			Type:               action,
			Ts:                 now.Unix(),
			Memo:               req.Memo,
		})
		if err != nil {
			return fmt.Errorf("failed to append timer event: %w", err)
		}
		return s.refreshRecord(ctx, rec, nil)
	})
	if err != nil {
		return timer.DayResponse{}, err
	}

	return s.buildDay(ctx, *rec)
}

// GetDay implements timer.TimerService.
func (s *TimerServiceImpl) GetDay(ctx context.Context, employeeID string, date string) (timer.DayResponse, error) {
	companyID, selfID, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return timer.DayResponse{}, err
	}
	if employeeID == "" {
		employeeID = selfID
	}
	if !isAdminRole(role) && employeeID != selfID {
		return timer.DayResponse{}, timer.ErrNotEventOwner
	}

	rec, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}
	if rec == nil {
		return timer.DayResponse{
			Date:           date,
			EmployeeID:     employeeID,
			State:          string(timer.StateNone),
			NextActions:    actionsToStrings(timer.NextLegalActions(timer.StateNone)),
			ApprovalStatus: string(attendance.ApprovalPending),
			Events:         []timer.EventResponse{},
		}, nil
	}

	return s.buildDay(ctx, *rec)
}

// CancelLastEnd implements timer.TimerService.
func (s *TimerServiceImpl) CancelLastEnd(ctx context.Context, req timer.CancelLastEndRequest) (timer.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timer.DayResponse{}, err
	}

	companyID, employeeID, userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return timer.DayResponse{}, err
	}
	if employeeID == "" {
		return timer.DayResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	rec, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, req.Date, companyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to get attendance day: %w", err)
	}
	if rec == nil {
		return timer.DayResponse{}, attendance.ErrRecordNotFound
	}
	if rec.ApprovalStatus == attendance.ApprovalApproved {
		return timer.DayResponse{}, attendance.ErrApprovedImmutable
	}

	last, err := s.eventRepo.GetLastByRecord(ctx, rec.ID, companyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to get last event: %w", err)
	}
	if last == nil || last.Type != timer.EventEnd {
		return timer.DayResponse{}, timer.ErrNoEndToCancel
	}

	// The ceiling counts cancellations performed today, keyed by the local
	// calendar day so it resets at midnight.
	today := s.clock.Now().Format("2006-01-02")
	count, err := s.correctionRepo.CountCancelEnds(ctx, employeeID, today, companyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to count checkout cancellations: %w", err)
	}
	if count >= maxEndCancellations {
		return timer.DayResponse{}, timer.ErrCancelLimitReached
	}

	before := fmt.Sprintf("END@%d", last.Ts)
	actor := userID
	if actor == "" {
		actor = employeeID
	}
	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.eventRepo.Delete(ctx, last.ID, companyID); err != nil {
			return fmt.Errorf("failed to remove checkout event: %w", err)
		}
		_, err := s.correctionRepo.Create(ctx, timer.Correction{
			TimerEventID:       &last.ID,
			AttendanceRecordID: rec.ID,
			CompanyID:          companyID,
			ActorID:            actor,
			Action:             timer.CorrectionCancelEnd,
			BeforeValue:        &before,
			Reason:             "checkout cancelled",
			Status:             timer.CorrectionApproved,
		})
		if err != nil {
			return fmt.Errorf("failed to write cancellation audit entry: %w", err)
		}
		return s.refreshRecord(ctx, rec, nil)
	})
	if err != nil {
		return timer.DayResponse{}, err
	}

	return s.buildDay(ctx, *rec)
}

// CorrectEvent implements timer.TimerService.
// Admin corrections are effective immediately; employee self-edits are written
// with a PENDING correction status so an admin can review them.
func (s *TimerServiceImpl) CorrectEvent(ctx context.Context, req timer.CorrectEventRequest) (timer.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timer.DayResponse{}, err
	}

	companyID, employeeID, userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return timer.DayResponse{}, err
	}

	ev, err := s.eventRepo.GetByID(ctx, req.EventID, companyID)
	if err != nil {
		return timer.DayResponse{}, err
	}

	if !isAdminRole(role) && ev.EmployeeID != employeeID {
		return timer.DayResponse{}, timer.ErrNotEventOwner
	}

	rec, err := s.recordRepo.GetByID(ctx, ev.AttendanceRecordID, companyID)
	if err != nil {
		return timer.DayResponse{}, err
	}
	if rec.ApprovalStatus == attendance.ApprovalApproved {
		return timer.DayResponse{}, attendance.ErrApprovedImmutable
	}

	status := timer.CorrectionPending
	if isAdminRole(role) {
		status = timer.CorrectionApproved
	}
	actor := userID
	if actor == "" {
		actor = employeeID
	}

	updated := ev
	var audits []timer.Correction

	if req.Ts != nil && *req.Ts != ev.Ts {
		field := "ts"
		before := strconv.FormatInt(ev.Ts, 10)
		after := strconv.FormatInt(*req.Ts, 10)
		audits = append(audits, timer.Correction{
			TimerEventID:       &ev.ID,
			AttendanceRecordID: rec.ID,
			CompanyID:          companyID,
			ActorID:            actor,
			Action:             timer.CorrectionUpdate,
			Field:              &field,
			BeforeValue:        &before,
			AfterValue:         &after,
			Reason:             req.Reason,
			Status:             status,
		})
		updated.Ts = *req.Ts
	}
	if req.Type != nil && timer.EventType(*req.Type) != ev.Type {
		field := "event_type"
		before := string(ev.Type)
		after := *req.Type
		audits = append(audits, timer.Correction{
			TimerEventID:       &ev.ID,
			AttendanceRecordID: rec.ID,
			CompanyID:          companyID,
			ActorID:            actor,
			Action:             timer.CorrectionUpdate,
			Field:              &field,
			BeforeValue:        &before,
			AfterValue:         &after,
			Reason:             req.Reason,
			Status:             status,
		})
		updated.Type = timer.EventType(*req.Type)
	}
	if req.Memo != nil {
		field := "memo"
		before := ""
		if ev.Memo != nil {
			before = *ev.Memo
		}
		audits = append(audits, timer.Correction{
			TimerEventID:       &ev.ID,
			AttendanceRecordID: rec.ID,
			CompanyID:          companyID,
			ActorID:            actor,
			Action:             timer.CorrectionUpdate,
			Field:              &field,
			BeforeValue:        &before,
			AfterValue:         req.Memo,
			Reason:             req.Reason,
			Status:             status,
		})
		updated.Memo = req.Memo
	}

	if len(audits) == 0 {
		return s.buildDay(ctx, rec)
	}

	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.eventRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update timer event: %w", err)
		}
		for _, audit := range audits {
			if _, err := s.correctionRepo.Create(ctx, audit); err != nil {
				return fmt.Errorf("failed to write correction audit entry: %w", err)
			}
		}
		corrected := attendance.StatusCorrected
		return s.refreshRecord(ctx, &rec, &corrected)
	})
	if err != nil {
		return timer.DayResponse{}, err
	}

	return s.buildDay(ctx, rec)
}

// DeleteEvent implements timer.TimerService.
func (s *TimerServiceImpl) DeleteEvent(ctx context.Context, req timer.DeleteEventRequest) (timer.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timer.DayResponse{}, err
	}

	companyID, employeeID, userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return timer.DayResponse{}, err
	}

	ev, err := s.eventRepo.GetByID(ctx, req.EventID, companyID)
	if err != nil {
		return timer.DayResponse{}, err
	}

	if !isAdminRole(role) && ev.EmployeeID != employeeID {
		return timer.DayResponse{}, timer.ErrNotEventOwner
	}

	rec, err := s.recordRepo.GetByID(ctx, ev.AttendanceRecordID, companyID)
	if err != nil {
		return timer.DayResponse{}, err
	}
	if rec.ApprovalStatus == attendance.ApprovalApproved {
		return timer.DayResponse{}, attendance.ErrApprovedImmutable
	}

	status := timer.CorrectionPending
	if isAdminRole(role) {
		status = timer.CorrectionApproved
	}
	actor := userID
	if actor == "" {
		actor = employeeID
	}
	before := fmt.Sprintf("%s@%d", ev.Type, ev.Ts)
	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.eventRepo.Delete(ctx, ev.ID, companyID); err != nil {
			return fmt.Errorf("failed to delete timer event: %w", err)
		}
		_, err := s.correctionRepo.Create(ctx, timer.Correction{
			TimerEventID:       &ev.ID,
			AttendanceRecordID: rec.ID,
			CompanyID:          companyID,
			ActorID:            actor,
			Action:             timer.CorrectionDelete,
			BeforeValue:        &before,
			Reason:             req.Reason,
			Status:             status,
		})
		if err != nil {
			return fmt.Errorf("failed to write deletion audit entry: %w", err)
		}
		corrected := attendance.StatusCorrected
		return s.refreshRecord(ctx, &rec, &corrected)
	})
	if err != nil {
		return timer.DayResponse{}, err
	}

	return s.buildDay(ctx, rec)
}

// refreshRecord rederives the record summary from the stored events. Nothing
// is backfilled into other events; durations always come from timestamps on
// the next read.
func (s *TimerServiceImpl) refreshRecord(ctx context.Context, rec *attendance.Record, forceStatus *attendance.RecordStatus) error {
	events, err := s.eventRepo.ListByRecord(ctx, rec.ID, rec.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	sortEvents(events)

	now := s.clock.Now()
	live := rec.Date == now.Format("2006-01-02")
	totals := ReconstructWorkTime(events, live, now.Unix())

	rec.CheckInTs = nil
	rec.CheckOutTs = nil
	if len(events) > 0 && events[0].Type == timer.EventWork {
		ts := events[0].Ts
		rec.CheckInTs = &ts
	}
	if len(events) > 0 {
		last := events[len(events)-1]
		if last.Type == timer.EventEnd {
			ts := last.Ts
			rec.CheckOutTs = &ts
		}
	}

	rec.TotalWorkMinutes = int(totals.WorkSeconds / 60)
	switch {
	case forceStatus != nil:
		rec.Status = *forceStatus
	case rec.CheckOutTs != nil:
		rec.Status = attendance.StatusCompleted
	default:
		rec.Status = attendance.StatusInProgress
	}

	if err := s.recordRepo.Update(ctx, *rec); err != nil {
		return fmt.Errorf("failed to update attendance day: %w", err)
	}

	return nil
}

func (s *TimerServiceImpl) buildDay(ctx context.Context, rec attendance.Record) (timer.DayResponse, error) {
	events, err := s.eventRepo.ListByRecord(ctx, rec.ID, rec.CompanyID)
	if err != nil {
		return timer.DayResponse{}, fmt.Errorf("failed to list events: %w", err)
	}
	sortEvents(events)

	now := s.clock.Now()
	live := rec.Date == now.Format("2006-01-02")
	totals := ReconstructWorkTime(events, live, now.Unix())

	var last *timer.Event
	if len(events) > 0 {
		last = &events[len(events)-1]
	}
	state := timer.StateFromLastEvent(last)

	nextActions := []string{}
	if rec.ApprovalStatus != attendance.ApprovalApproved {
		nextActions = actionsToStrings(timer.NextLegalActions(state))
	}

	return timer.DayResponse{
		Date:              rec.Date,
		EmployeeID:        rec.EmployeeID,
		State:             string(state),
		NextActions:       nextActions,
		CheckInTs:         rec.CheckInTs,
		CheckOutTs:        rec.CheckOutTs,
		TotalWorkSeconds:  totals.WorkSeconds,
		TotalBreakSeconds: totals.BreakSeconds,
		TotalWorkMinutes:  int(totals.WorkSeconds / 60),
		ApprovalStatus:    string(rec.ApprovalStatus),
		Events:            annotateEvents(events),
	}, nil
}

func actionsToStrings(actions []timer.EventType) []string {
	result := make([]string, 0, len(actions))
	for _, a := range actions {
		result = append(result, string(a))
	}
	return result
}
