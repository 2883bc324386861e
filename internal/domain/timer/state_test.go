package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateFromLastEvent(t *testing.T) {
	assert.Equal(t, StateNone, StateFromLastEvent(nil))
	assert.Equal(t, StateWorking, StateFromLastEvent(&Event{Type: EventWork}))
	assert.Equal(t, StateOnBreak, StateFromLastEvent(&Event{Type: EventRest}))
	assert.Equal(t, StateEnded, StateFromLastEvent(&Event{Type: EventEnd}))
}

// Test the full transition table
func TestNextLegalActions(t *testing.T) {
	assert.Equal(t, []EventType{EventWork}, NextLegalActions(StateNone))
	assert.Equal(t, []EventType{EventWork, EventRest, EventEnd}, NextLegalActions(StateWorking))
	assert.Equal(t, []EventType{EventWork, EventEnd}, NextLegalActions(StateOnBreak))
	assert.Nil(t, NextLegalActions(StateEnded))
}

func TestActionLegal(t *testing.T) {
	// Resume work is legal while already working
	assert.True(t, ActionLegal(StateWorking, EventWork))

	// A break requires being at work
	assert.False(t, ActionLegal(StateNone, EventRest))
	assert.False(t, ActionLegal(StateOnBreak, EventRest))

	// Nothing is legal after checkout
	assert.False(t, ActionLegal(StateEnded, EventWork))
	assert.False(t, ActionLegal(StateEnded, EventRest))
	assert.False(t, ActionLegal(StateEnded, EventEnd))

	// Checkout requires a started day
	assert.False(t, ActionLegal(StateNone, EventEnd))
	assert.True(t, ActionLegal(StateOnBreak, EventEnd))
}

func TestEventTypeValid(t *testing.T) {
	assert.True(t, EventType("WORK").Valid())
	assert.True(t, EventType("REST").Valid())
	assert.True(t, EventType("END").Valid())
	assert.False(t, EventType("LUNCH").Valid())
	assert.False(t, EventType("").Valid())
}
