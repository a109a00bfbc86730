package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentDerivedHelpers(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	past := Appointment{ScheduledAt: now.Add(-2 * time.Hour), Status: AppointmentPending}
	assert.True(t, past.IsPast(now))
	assert.True(t, past.IsToday(now))
	assert.False(t, past.IsUpcoming(now))

	laterToday := Appointment{ScheduledAt: now.Add(3 * time.Hour), Status: AppointmentPending}
	assert.False(t, laterToday.IsPast(now))
	assert.True(t, laterToday.IsToday(now))
	assert.True(t, laterToday.IsUpcoming(now))

	tomorrow := Appointment{ScheduledAt: now.Add(24 * time.Hour), Status: AppointmentConfirmed}
	assert.False(t, tomorrow.IsToday(now))
	// future but no longer pending
	assert.False(t, tomorrow.IsUpcoming(now))

	// exact instant: not past, not upcoming
	exact := Appointment{ScheduledAt: now, Status: AppointmentPending}
	assert.False(t, exact.IsPast(now))
	assert.False(t, exact.IsUpcoming(now))
}
