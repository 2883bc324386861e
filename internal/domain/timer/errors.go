package timer

import "errors"

// Timer domain errors
var (
	// Clock action errors
	ErrNotWorking    = errors.New("you are not working, taking a break is not possible")
	ErrDayNotStarted = errors.New("you have not started working today")
	ErrDayEnded      = errors.New("you have already checked out today")

	// Cancel-last-end errors
	ErrNoEndToCancel      = errors.New("there is no checkout to cancel")
	ErrCancelLimitReached = errors.New("checkout can be cancelled at most 3 times per day")

	// Correction errors
	ErrEventNotFound = errors.New("timer event not found")
	ErrNotEventOwner = errors.New("you can only correct your own events")
)
