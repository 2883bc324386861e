package timer

import (
	"testing"
	"time"

	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) int64 {
	return time.Date(2026, 8, 3, hour, min, 0, 0, time.UTC).Unix()
}

func ev(t timer.EventType, at int64) timer.Event {
	return timer.Event{Type: t, Ts: at}
}

// Test a full day: work, lunch break, work again, checkout
func TestReconstructWorkTime_FullDay(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
		ev(timer.EventRest, ts(12, 0)),
		ev(timer.EventWork, ts(13, 0)),
		ev(timer.EventEnd, ts(17, 30)),
	}

	totals := ReconstructWorkTime(events, false, ts(23, 0))

	assert.Equal(t, int64(7*3600+1800), totals.WorkSeconds)
	assert.Equal(t, int64(3600), totals.BreakSeconds)
	assert.Equal(t, 450, int(totals.WorkSeconds/60))
}

// Test that duplicate WORK events never inflate worked time
func TestReconstructWorkTime_DuplicateWorkCollapses(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
		ev(timer.EventWork, ts(10, 0)),
		ev(timer.EventWork, ts(10, 30)),
		ev(timer.EventEnd, ts(11, 0)),
	}

	totals := ReconstructWorkTime(events, false, ts(23, 0))

	assert.Equal(t, int64(2*3600), totals.WorkSeconds)
	assert.Equal(t, int64(0), totals.BreakSeconds)
}

// Test that a live day's open work interval extends to now
func TestReconstructWorkTime_LiveOpenWork(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
	}

	totals := ReconstructWorkTime(events, true, ts(10, 0))

	assert.Equal(t, int64(3600), totals.WorkSeconds)
}

// Test that a live day's open break extends to now without counting as work
func TestReconstructWorkTime_LiveOpenBreak(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
		ev(timer.EventRest, ts(11, 0)),
	}

	totals := ReconstructWorkTime(events, true, ts(11, 30))

	assert.Equal(t, int64(2*3600), totals.WorkSeconds)
	assert.Equal(t, int64(1800), totals.BreakSeconds)
}

// Test that a historical day with no END contributes nothing for the open tail
func TestReconstructWorkTime_HistoricalOpenTailIsZero(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
	}

	totals := ReconstructWorkTime(events, false, ts(23, 0))

	assert.Equal(t, int64(0), totals.WorkSeconds)
	assert.Equal(t, int64(0), totals.BreakSeconds)
}

// Test that the result does not depend on when it is recomputed for a closed day
func TestReconstructWorkTime_HistoricalDeterminism(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
		ev(timer.EventRest, ts(12, 0)),
		ev(timer.EventWork, ts(12, 45)),
		ev(timer.EventEnd, ts(17, 0)),
	}

	first := ReconstructWorkTime(events, false, ts(18, 0))
	later := ReconstructWorkTime(events, false, ts(18, 0)+86400*30)

	assert.Equal(t, first, later)
}

// Test that work plus break covers the whole closed span
func TestReconstructWorkTime_Conservation(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(8, 0)),
		ev(timer.EventRest, ts(10, 15)),
		ev(timer.EventWork, ts(10, 45)),
		ev(timer.EventRest, ts(12, 30)),
		ev(timer.EventWork, ts(13, 0)),
		ev(timer.EventEnd, ts(16, 0)),
	}

	totals := ReconstructWorkTime(events, false, ts(23, 0))
	span := ts(16, 0) - ts(8, 0)

	assert.Equal(t, span, totals.WorkSeconds+totals.BreakSeconds)
}

func TestReconstructWorkTime_Empty(t *testing.T) {
	totals := ReconstructWorkTime(nil, true, ts(12, 0))

	assert.Equal(t, int64(0), totals.WorkSeconds)
	assert.Equal(t, int64(0), totals.BreakSeconds)
}

// Test that interval fields are derived from neighbouring timestamps
func TestAnnotateEvents_Durations(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventWork, ts(9, 0)),
		ev(timer.EventRest, ts(12, 0)),
		ev(timer.EventEnd, ts(13, 0)),
	}

	annotated := annotateEvents(events)

	assert.Len(t, annotated, 3)
	assert.Nil(t, annotated[0].DurationFromPrevious)
	assert.Equal(t, ts(12, 0), *annotated[0].EndTs)
	assert.Equal(t, int64(3*3600), *annotated[0].DurationFromNext)
	assert.Equal(t, int64(3*3600), *annotated[1].DurationFromPrevious)
	assert.Equal(t, int64(3600), *annotated[1].DurationFromNext)
	assert.Nil(t, annotated[2].DurationFromNext)
	assert.Nil(t, annotated[2].EndTs)
}

// Test that events shifted by a correction are re-sorted before replay
func TestSortEvents_Reorders(t *testing.T) {
	events := []timer.Event{
		ev(timer.EventRest, ts(12, 0)),
		ev(timer.EventWork, ts(9, 0)),
	}

	sortEvents(events)

	assert.Equal(t, timer.EventWork, events[0].Type)
	assert.Equal(t, timer.EventRest, events[1].Type)
}
