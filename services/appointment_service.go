package services

import (
	"context"
	"time"

	"oficina.app/configs/configslog"
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/pkg/events"
	"oficina.app/pkg/metrics"
	"oficina.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stable validation failures of the appointment lifecycle.
var (
	ErrAppointmentDateNotFuture = apperrors.NewValidation("appointment date must be in the future")
	ErrAppointmentSlotTaken     = apperrors.NewValidation("employee already has an appointment in this time slot")
	ErrAppointmentBadStatus     = apperrors.NewValidation("invalid appointment status")
)

// CreateAppointmentInput carries the writable fields of a new appointment.
type CreateAppointmentInput struct {
	ClientID    uint                     `json:"client_id"`
	VehicleID   uint                     `json:"vehicle_id"`
	EmployeeID  *uint                    `json:"employee_id"`
	ScheduledAt time.Time                `json:"scheduled_at"`
	Status      models.AppointmentStatus `json:"status"`
	Notes       string                   `json:"notes"`
}

// UpdateAppointmentInput updates any subset of fields; nil pointers leave the
// stored value untouched. An EmployeeID of 0 unassigns the appointment.
type UpdateAppointmentInput struct {
	ClientID    *uint                     `json:"client_id"`
	VehicleID   *uint                     `json:"vehicle_id"`
	EmployeeID  *uint                     `json:"employee_id"`
	ScheduledAt *time.Time                `json:"scheduled_at"`
	Status      *models.AppointmentStatus `json:"status"`
	Notes       *string                   `json:"notes"`
}

// IAppointmentService owns the scheduling rules: the future-date rule, the
// one-employee/one-slot exclusivity rule and the status lifecycle.
type IAppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error)
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Appointment, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]models.Appointment, error)
	FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	FindByRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	Today(ctx context.Context) ([]models.Appointment, error)
	Upcoming(ctx context.Context) ([]models.Appointment, error)
	SearchByClientName(ctx context.Context, name string) ([]models.Appointment, error)
	Update(ctx context.Context, id uint, input UpdateAppointmentInput) (*models.Appointment, error)
	SetStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error)
	Delete(ctx context.Context, id uint) error
	HasConflict(ctx context.Context, employeeID uint, at time.Time, excludeID uint) (bool, error)
	Stats(ctx context.Context) (*models.AppointmentStats, error)
}

// AppointmentService implements IAppointmentService.
type AppointmentService struct {
	repo      repositories.IAppointmentRepository
	clients   repositories.IClientRepository
	vehicles  repositories.IVehicleRepository
	employees repositories.IEmployeeRepository
	bus       *events.Bus
	now       func() time.Time
}

// NewAppointmentService wires an AppointmentService on db. Events are
// published on bus; a nil bus disables broadcasting.
func NewAppointmentService(db *gorm.DB, bus *events.Bus) *AppointmentService {
	return &AppointmentService{
		repo:      repositories.NewAppointmentRepository(db),
		clients:   repositories.NewClientRepository(db),
		vehicles:  repositories.NewVehicleRepository(db),
		employees: repositories.NewEmployeeRepository(db),
		bus:       bus,
		now:       time.Now,
	}
}

// checkReferences verifies that the referenced client, vehicle and employee
// exist before anything is written.
func (s *AppointmentService) checkReferences(ctx context.Context, clientID, vehicleID uint, employeeID *uint) error {
	if clientID != 0 {
		if _, err := s.clients.FindByID(ctx, clientID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("client", clientID)
			}
			return apperrors.Internal("appointment: check client", err)
		}
	}
	if vehicleID != 0 {
		if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("vehicle", vehicleID)
			}
			return apperrors.Internal("appointment: check vehicle", err)
		}
	}
	if employeeID != nil && *employeeID != 0 {
		if _, err := s.employees.FindByID(ctx, *employeeID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("employee", *employeeID)
			}
			return apperrors.Internal("appointment: check employee", err)
		}
	}
	return nil
}

// Create validates the future-date rule and the slot exclusivity rule, then
// persists a new appointment, defaulting its status to pending.
func (s *AppointmentService) Create(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error) {
	if !input.ScheduledAt.After(s.now()) {
		return nil, ErrAppointmentDateNotFuture
	}

	status := input.Status
	if status == "" {
		status = models.AppointmentPending
	}
	if !models.ValidAppointmentStatus(status) {
		return nil, ErrAppointmentBadStatus
	}

	if err := s.checkReferences(ctx, input.ClientID, input.VehicleID, input.EmployeeID); err != nil {
		return nil, err
	}

	if input.EmployeeID != nil && *input.EmployeeID != 0 {
		conflict, err := s.HasConflict(ctx, *input.EmployeeID, input.ScheduledAt, 0)
		if err != nil {
			return nil, err
		}
		if conflict {
			metrics.IncAppointmentConflict()
			return nil, ErrAppointmentSlotTaken
		}
	}

	appointment := models.Appointment{
		ClientID:    input.ClientID,
		VehicleID:   input.VehicleID,
		EmployeeID:  input.EmployeeID,
		ScheduledAt: input.ScheduledAt,
		Status:      status,
		Notes:       input.Notes,
	}
	if err := s.repo.Create(ctx, &appointment); err != nil {
		configslog.Log.Error("AppointmentService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("appointment: create", err)
	}

	created, err := s.repo.FindByID(ctx, appointment.ID)
	if err != nil {
		return nil, apperrors.Internal("appointment: reload after create", err)
	}

	s.broadcast(events.EventAppointmentCreated, created)
	s.broadcastStats(ctx)
	configslog.SLog.Infof("Appointment %d created for client %d at %s", created.ID, created.ClientID, created.ScheduledAt.Format(time.RFC3339))
	return created, nil
}

func (s *AppointmentService) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("appointment", id)
		}
		return nil, apperrors.Internal("appointment: find", err)
	}
	return appointment, nil
}

func (s *AppointmentService) FindAll(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.repo.FindAll(ctx)
	return appointments, apperrors.Internal("appointment: list", err)
}

func (s *AppointmentService) FindByClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	appointments, err := s.repo.FindByClient(ctx, clientID)
	return appointments, apperrors.Internal("appointment: list by client", err)
}

func (s *AppointmentService) FindByEmployee(ctx context.Context, employeeID uint) ([]models.Appointment, error) {
	appointments, err := s.repo.FindByEmployee(ctx, employeeID)
	return appointments, apperrors.Internal("appointment: list by employee", err)
}

func (s *AppointmentService) FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, ErrAppointmentBadStatus
	}
	appointments, err := s.repo.FindByStatus(ctx, status)
	return appointments, apperrors.Internal("appointment: list by status", err)
}

func (s *AppointmentService) FindByRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	appointments, err := s.repo.FindByRange(ctx, from, to)
	return appointments, apperrors.Internal("appointment: list by range", err)
}

// Today lists the current calendar day's appointments, earliest first.
func (s *AppointmentService) Today(ctx context.Context) ([]models.Appointment, error) {
	start, end := dayBounds(s.now())
	appointments, err := s.repo.FindByRange(ctx, start, end)
	return appointments, apperrors.Internal("appointment: list today", err)
}

// Upcoming lists appointments scheduled from now on.
func (s *AppointmentService) Upcoming(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.repo.FindUpcoming(ctx, s.now())
	return appointments, apperrors.Internal("appointment: list upcoming", err)
}

func (s *AppointmentService) SearchByClientName(ctx context.Context, name string) ([]models.Appointment, error) {
	appointments, err := s.repo.SearchByClientName(ctx, name)
	return appointments, apperrors.Internal("appointment: search", err)
}

// Update applies a partial update. When the scheduled instant changes, the
// future-date rule is re-checked and the conflict check re-runs against the
// effective employee, excluding the appointment itself.
func (s *AppointmentService) Update(ctx context.Context, id uint, input UpdateAppointmentInput) (*models.Appointment, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && !models.ValidAppointmentStatus(*input.Status) {
		return nil, ErrAppointmentBadStatus
	}

	var clientID, vehicleID uint
	if input.ClientID != nil {
		clientID = *input.ClientID
	}
	if input.VehicleID != nil {
		vehicleID = *input.VehicleID
	}
	if err := s.checkReferences(ctx, clientID, vehicleID, input.EmployeeID); err != nil {
		return nil, err
	}

	if input.ScheduledAt != nil {
		if !input.ScheduledAt.After(s.now()) {
			return nil, ErrAppointmentDateNotFuture
		}

		effective := existing.EmployeeID
		if input.EmployeeID != nil {
			if *input.EmployeeID == 0 {
				effective = nil
			} else {
				effective = input.EmployeeID
			}
		}
		if effective != nil {
			conflict, err := s.HasConflict(ctx, *effective, *input.ScheduledAt, id)
			if err != nil {
				return nil, err
			}
			if conflict {
				metrics.IncAppointmentConflict()
				return nil, ErrAppointmentSlotTaken
			}
		}
	}

	fields := map[string]any{}
	if input.ClientID != nil {
		fields["client_id"] = *input.ClientID
	}
	if input.VehicleID != nil {
		fields["vehicle_id"] = *input.VehicleID
	}
	if input.EmployeeID != nil {
		if *input.EmployeeID == 0 {
			fields["employee_id"] = nil
		} else {
			fields["employee_id"] = *input.EmployeeID
		}
	}
	if input.ScheduledAt != nil {
		fields["scheduled_at"] = *input.ScheduledAt
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("AppointmentService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("appointment: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.broadcast(events.EventAppointmentUpdated, updated)
	s.broadcastStats(ctx)
	return updated, nil
}

// SetStatus moves the appointment to any of the four canonical statuses.
// There is no transition graph: completed and cancelled appointments may be
// reopened.
func (s *AppointmentService) SetStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return nil, ErrAppointmentBadStatus
	}
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.Updates(ctx, id, map[string]any{"status": status}); err != nil {
		configslog.Log.Error("AppointmentService.SetStatus failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("appointment: set status", err)
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.broadcast(events.EventAppointmentStatusUpdated, updated)
	s.broadcastStats(ctx)
	return updated, nil
}

// Delete removes the appointment outright.
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing); err != nil {
		configslog.Log.Error("AppointmentService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("appointment: delete", err)
	}

	_ = s.bus.PublishJSON(events.EventAppointmentDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventAppointmentDeleted)
	s.broadcastStats(ctx)
	return nil
}

// HasConflict reports whether scheduling the employee at the given instant
// collides with one of their pending or confirmed appointments. The window
// is the hour starting at the instant, bounds inclusive, and only a
// candidate's endpoints are tested against it: a candidate slot that fully
// contains the new window without either endpoint falling inside it does not
// count. excludeID removes one appointment from consideration so a record
// never conflicts with itself.
func (s *AppointmentService) HasConflict(ctx context.Context, employeeID uint, at time.Time, excludeID uint) (bool, error) {
	candidates, err := s.repo.FindCandidates(ctx, employeeID, excludeID)
	if err != nil {
		return false, apperrors.Internal("appointment: conflict check", err)
	}

	start := at
	end := at.Add(models.AppointmentWindow)
	for _, candidate := range candidates {
		cStart := candidate.ScheduledAt
		cEnd := cStart.Add(models.AppointmentWindow)
		if within(cStart, start, end) || within(cEnd, start, end) {
			return true, nil
		}
	}
	return false, nil
}

// within reports whether t falls inside [from, to], inclusive on both ends.
func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// Stats recomputes the appointment projection: totals, per-status counts,
// today's count and a preview of today's first five appointments.
func (s *AppointmentService) Stats(ctx context.Context) (*models.AppointmentStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("appointment: stats", err)
	}

	byStatus := make(map[string]int64, 4)
	for _, status := range []models.AppointmentStatus{
		models.AppointmentPending,
		models.AppointmentConfirmed,
		models.AppointmentCompleted,
		models.AppointmentCancelled,
	} {
		count, err := s.repo.CountByStatus(ctx, status)
		if err != nil {
			return nil, apperrors.Internal("appointment: stats", err)
		}
		byStatus[string(status)] = count
	}

	today, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	preview := today
	if len(preview) > 5 {
		preview = preview[:5]
	}

	return &models.AppointmentStats{
		Total:      total,
		ByStatus:   byStatus,
		TodayCount: int64(len(today)),
		NextToday:  preview,
	}, nil
}

func (s *AppointmentService) broadcast(eventType string, appointment *models.Appointment) {
	room := ""
	if appointment.EmployeeID != nil {
		room = events.EmployeeRoom(*appointment.EmployeeID)
	}
	if err := s.bus.PublishJSONRoom(eventType, room, appointment); err != nil {
		configslog.Log.Warn("Appointment event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

func (s *AppointmentService) broadcastStats(ctx context.Context) {
	stats, err := s.Stats(ctx)
	if err != nil {
		configslog.Log.Warn("Appointment stats recompute failed", zap.Error(err))
		return
	}
	_ = s.bus.PublishJSON(events.EventAppointmentStats, stats)
	metrics.IncEvent(events.EventAppointmentStats)
}

// dayBounds returns the inclusive bounds of t's calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

var _ IAppointmentService = (*AppointmentService)(nil)
