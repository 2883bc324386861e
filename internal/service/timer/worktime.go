package timer

import (
	"sort"

	"github.com/shiftledger/shiftledger-backend-go/internal/domain/timer"
)

// ReconstructWorkTime replays one day's ordered event sequence into total
// worked and break seconds.
//
// The walk keeps at most one open work interval and one open break interval.
// A WORK event closes an open break and opens work if none is open; a repeated
// WORK while already working is a deliberate no-op, so "resume work" duplicates
// never inflate totals. REST closes open work and opens a break. END closes
// both and the day stays closed.
//
// live marks the selected date as today: an interval still open after the walk
// is extended to now. For any other day an unterminated tail contributes
// nothing; the day is treated as not yet finalized. This is the only place
// wall-clock time enters the calculation.
func ReconstructWorkTime(events []timer.Event, live bool, now int64) timer.WorkTimeTotals {
	var totals timer.WorkTimeTotals
	var openWork, openBreak *int64

	for i := range events {
		ev := events[i]
		switch ev.Type {
		case timer.EventWork:
			if openBreak != nil {
				totals.BreakSeconds += ev.Ts - *openBreak
				openBreak = nil
			}
			if openWork == nil {
				ts := ev.Ts
				openWork = &ts
			}
		case timer.EventRest:
			if openWork != nil {
				totals.WorkSeconds += ev.Ts - *openWork
				openWork = nil
			}
			if openBreak == nil {
				ts := ev.Ts
				openBreak = &ts
			}
		case timer.EventEnd:
			if openWork != nil {
				totals.WorkSeconds += ev.Ts - *openWork
				openWork = nil
			}
			if openBreak != nil {
				totals.BreakSeconds += ev.Ts - *openBreak
				openBreak = nil
			}
		}
	}

	if live {
		if openWork != nil {
			totals.WorkSeconds += now - *openWork
		}
		if openBreak != nil {
			totals.BreakSeconds += now - *openBreak
		}
	}

	return totals
}

// sortEvents orders events by timestamp. Repositories return them ordered
// already; corrections that move a timestamp rely on this re-sort.
func sortEvents(events []timer.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Ts < events[j].Ts
	})
}

// annotateEvents derives the per-event interval fields from neighbouring
// timestamps. Nothing here is stored; deleting an event simply changes what
// the next read derives.
func annotateEvents(events []timer.Event) []timer.EventResponse {
	responses := make([]timer.EventResponse, 0, len(events))
	for i := range events {
		ev := events[i]
		resp := timer.EventResponse{
			ID:   ev.ID,
			Type: string(ev.Type),
			Ts:   ev.Ts,
			Memo: ev.Memo,
		}
		if i > 0 {
			d := ev.Ts - events[i-1].Ts
			resp.DurationFromPrevious = &d
		}
		if i < len(events)-1 {
			next := events[i+1].Ts
			d := next - ev.Ts
			resp.EndTs = &next
			resp.DurationFromNext = &d
		}
		responses = append(responses, resp)
	}
	return responses
}
