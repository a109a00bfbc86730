package services

import (
	"testing"
	"time"

	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newAppointmentFixture(t *testing.T) (*AppointmentService, *models.Client, *models.Vehicle, *models.Employee) {
	t.Helper()

	db := newTestDB(t)
	client, vehicle := seedClientAndVehicle(t, db)
	employee := seedEmployee(t, db, "Carlos Lima")

	svc := NewAppointmentService(db, newTestBus())
	svc.now = func() time.Time { return testNow }
	return svc, client, vehicle, employee
}

func (s *AppointmentService) mustCreate(t *testing.T, input CreateAppointmentInput) *models.Appointment {
	t.Helper()
	appointment, err := s.Create(testCtx(), input)
	require.NoError(t, err)
	return appointment
}

func TestAppointmentCreateRejectsPastDates(t *testing.T) {
	svc, client, vehicle, _ := newAppointmentFixture(t)

	cases := []struct {
		name string
		at   time.Time
	}{
		{"yesterday", testNow.Add(-24 * time.Hour)},
		{"a second ago", testNow.Add(-time.Second)},
		{"exactly now", testNow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(testCtx(), CreateAppointmentInput{
				ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: tc.at,
			})
			assert.ErrorIs(t, err, ErrAppointmentDateNotFuture)
		})
	}

	appointment := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(time.Second),
	})
	assert.Equal(t, models.AppointmentPending, appointment.Status)
}

func TestAppointmentConflictWindow(t *testing.T) {
	svc, client, vehicle, employee := newAppointmentFixture(t)

	base := testNow.Add(48 * time.Hour)
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})

	cases := []struct {
		name     string
		at       time.Time
		conflict bool
	}{
		{"same instant", base, true},
		{"half hour later", base.Add(30 * time.Minute), true},
		{"exactly one hour later", base.Add(time.Hour), true},
		{"one hour before, end touches start", base.Add(-time.Hour), true},
		{"just over an hour later", base.Add(time.Hour + time.Second), false},
		{"just over an hour before", base.Add(-time.Hour - time.Second), false},
		{"two hours later", base.Add(2 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conflict, err := svc.HasConflict(testCtx(), employee.ID, tc.at, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.conflict, conflict)
		})
	}
}

func TestAppointmentCreateRejectsDoubleBooking(t *testing.T) {
	svc, client, vehicle, employee := newAppointmentFixture(t)

	base := testNow.Add(24 * time.Hour)
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})

	_, err := svc.Create(testCtx(), CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID,
		ScheduledAt: base.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrAppointmentSlotTaken)
}

func TestAppointmentUnassignedSkipsConflictCheck(t *testing.T) {
	svc, client, vehicle, _ := newAppointmentFixture(t)

	base := testNow.Add(24 * time.Hour)
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: base,
	})
	// same slot, still unassigned: no conflict possible
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: base,
	})
}

func TestAppointmentCancelledSlotIsFree(t *testing.T) {
	svc, client, vehicle, employee := newAppointmentFixture(t)

	base := testNow.Add(24 * time.Hour)
	first := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})

	_, err := svc.SetStatus(testCtx(), first.ID, models.AppointmentCancelled)
	require.NoError(t, err)

	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})
}

func TestAppointmentRescheduleExcludesSelf(t *testing.T) {
	svc, client, vehicle, employee := newAppointmentFixture(t)

	base := testNow.Add(24 * time.Hour)
	appointment := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})

	// moving inside its own window must not trip the conflict check
	newAt := base.Add(15 * time.Minute)
	updated, err := svc.Update(testCtx(), appointment.ID, UpdateAppointmentInput{ScheduledAt: &newAt})
	require.NoError(t, err)
	assert.True(t, updated.ScheduledAt.Equal(newAt))
}

func TestAppointmentUpdateRejectsPastDates(t *testing.T) {
	svc, client, vehicle, _ := newAppointmentFixture(t)

	appointment := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(24 * time.Hour),
	})

	cases := []struct {
		name string
		at   time.Time
	}{
		{"yesterday", testNow.Add(-24 * time.Hour)},
		{"a second ago", testNow.Add(-time.Second)},
		{"exactly now", testNow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at := tc.at
			_, err := svc.Update(testCtx(), appointment.ID, UpdateAppointmentInput{ScheduledAt: &at})
			assert.ErrorIs(t, err, ErrAppointmentDateNotFuture)
		})
	}

	// the rejected updates must not have touched the stored instant
	stored, err := svc.FindByID(testCtx(), appointment.ID)
	require.NoError(t, err)
	assert.True(t, stored.ScheduledAt.Equal(appointment.ScheduledAt))
}

func TestAppointmentUpdateRejectsDoubleBooking(t *testing.T) {
	svc, client, vehicle, employee := newAppointmentFixture(t)

	base := testNow.Add(24 * time.Hour)
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})
	second := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID,
		ScheduledAt: base.Add(3 * time.Hour),
	})

	newAt := base.Add(30 * time.Minute)
	_, err := svc.Update(testCtx(), second.ID, UpdateAppointmentInput{ScheduledAt: &newAt})
	assert.ErrorIs(t, err, ErrAppointmentSlotTaken)
}

func TestAppointmentUpdateClearsEmployee(t *testing.T) {
	svc, client, vehicle, employee := newAppointmentFixture(t)

	base := testNow.Add(24 * time.Hour)
	appointment := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, EmployeeID: &employee.ID, ScheduledAt: base,
	})

	var zero uint
	updated, err := svc.Update(testCtx(), appointment.ID, UpdateAppointmentInput{EmployeeID: &zero})
	require.NoError(t, err)
	assert.Nil(t, updated.EmployeeID)
}

func TestAppointmentSetStatus(t *testing.T) {
	svc, client, vehicle, _ := newAppointmentFixture(t)

	appointment := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(time.Hour),
	})

	updated, err := svc.SetStatus(testCtx(), appointment.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, updated.Status)

	// no transition graph: completed can go back to pending
	updated, err = svc.SetStatus(testCtx(), appointment.ID, models.AppointmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, updated.Status)
	updated, err = svc.SetStatus(testCtx(), appointment.ID, models.AppointmentPending)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, updated.Status)

	_, err = svc.SetStatus(testCtx(), appointment.ID, models.AppointmentStatus("faturada"))
	assert.ErrorIs(t, err, ErrAppointmentBadStatus)
}

func TestAppointmentDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newAppointmentFixture(t)

	err := svc.Delete(testCtx(), 9999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentDeletedIsGone(t *testing.T) {
	svc, client, vehicle, _ := newAppointmentFixture(t)

	appointment := svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(time.Hour),
	})
	require.NoError(t, svc.Delete(testCtx(), appointment.ID))

	_, err := svc.FindByID(testCtx(), appointment.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAppointmentStats(t *testing.T) {
	svc, client, vehicle, _ := newAppointmentFixture(t)

	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(2 * time.Hour),
	})
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(4 * time.Hour),
		Status: models.AppointmentConfirmed,
	})
	svc.mustCreate(t, CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(72 * time.Hour),
	})

	stats, err := svc.Stats(testCtx())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[string(models.AppointmentPending)])
	assert.Equal(t, int64(1), stats.ByStatus[string(models.AppointmentConfirmed)])
	assert.Equal(t, int64(0), stats.ByStatus[string(models.AppointmentCancelled)])
	assert.Equal(t, int64(2), stats.TodayCount)
	require.Len(t, stats.NextToday, 2)

	var sum int64
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
}

func TestAppointmentEventsPublished(t *testing.T) {
	db := newTestDB(t)
	client, vehicle := seedClientAndVehicle(t, db)

	bus := events.NewBus()
	var seen []string
	bus.SubscribeAll(func(e *events.Event) { seen = append(seen, e.Type) })

	svc := NewAppointmentService(db, bus)
	svc.now = func() time.Time { return testNow }

	appointment, err := svc.Create(testCtx(), CreateAppointmentInput{
		ClientID: client.ID, VehicleID: vehicle.ID, ScheduledAt: testNow.Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(testCtx(), appointment.ID))

	assert.Contains(t, seen, events.EventAppointmentCreated)
	assert.Contains(t, seen, events.EventAppointmentDeleted)
	assert.Contains(t, seen, events.EventAppointmentStats)
}
