package timer

// DayState is the timer state of one employee-day, derived from the last
// persisted event rather than tracked separately.
type DayState string

const (
	StateNone    DayState = "NONE"
	StateWorking DayState = "WORKING"
	StateOnBreak DayState = "ON_BREAK"
	StateEnded   DayState = "ENDED"
)

// StateFromLastEvent derives the day state from the last event, if any.
func StateFromLastEvent(last *Event) DayState {
	if last == nil {
		return StateNone
	}
	switch last.Type {
	case EventWork:
		return StateWorking
	case EventRest:
		return StateOnBreak
	case EventEnd:
		return StateEnded
	}
	return StateNone
}

// NextLegalActions returns the set of clock actions legal from a given state.
// This is the single transition table: both the day view shown to clients and
// the append guard consult it, so the two can never disagree.
//
// WORK from WORKING is legal: it models "resume work" and the reconstructor
// collapses consecutive WORK events so duplicates never inflate totals.
// From ENDED nothing is legal except cancel-last-end, which is not a clock
// action.
func NextLegalActions(state DayState) []EventType {
	switch state {
	case StateNone:
		return []EventType{EventWork}
	case StateWorking:
		return []EventType{EventWork, EventRest, EventEnd}
	case StateOnBreak:
		return []EventType{EventWork, EventEnd}
	case StateEnded:
		return nil
	}
	return nil
}

// ActionLegal reports whether action is legal from state.
func ActionLegal(state DayState, action EventType) bool {
	for _, a := range NextLegalActions(state) {
		if a == action {
			return true
		}
	}
	return false
}
