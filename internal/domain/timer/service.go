package timer

import (
	"context"
)

// TimerService defines business logic for the attendance timer.
type TimerService interface {
	// ClockAction validates the requested action against the last persisted
	// event and appends it; creates the attendance day on first WORK
	ClockAction(ctx context.Context, req ClockActionRequest) (DayResponse, error)

	// GetDay returns the reconstructed day view with legal next actions
	GetDay(ctx context.Context, employeeID string, date string) (DayResponse, error)

	// CancelLastEnd removes the terminal END event, bounded per day
	CancelLastEnd(ctx context.Context, req CancelLastEndRequest) (DayResponse, error)

	// CorrectEvent edits ts/type/memo of an event with a mandatory audit reason
	CorrectEvent(ctx context.Context, req CorrectEventRequest) (DayResponse, error)

	// DeleteEvent removes an event with a mandatory audit reason
	DeleteEvent(ctx context.Context, req DeleteEventRequest) (DayResponse, error)
}
