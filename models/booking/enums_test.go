package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionEdges(t *testing.T) {
	legal := map[BookingStatus][]BookingStatus{
		StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
		StatusConfirmed: {StatusCompleted, StatusCancelled},
	}

	for _, from := range AllBookingStatuses() {
		for _, to := range AllBookingStatuses() {
			expected := false
			for _, s := range legal[from] {
				if s == to {
					expected = true
				}
			}
			assert.Equal(t, expected, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoOutboundEdges(t *testing.T) {
	for _, from := range AllBookingStatuses() {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range AllBookingStatuses() {
			assert.False(t, from.CanTransitionTo(to), "terminal %s must not reach %s", from, to)
		}
	}
}

func TestTerminalAndRelease(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())

	for _, s := range AllBookingStatuses() {
		assert.Equal(t, s.IsTerminal(), s.ReleasesCoolie(), "release must track terminality for %s", s)
	}
}

func TestStatusValidity(t *testing.T) {
	for _, s := range AllBookingStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, BookingStatus("in_progress").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}
