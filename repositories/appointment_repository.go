package repositories

import (
	"context"
	"time"

	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IAppointmentRepository is the persistence surface of the appointment
// lifecycle manager.
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Appointment, error)
	FindByEmployee(ctx context.Context, employeeID uint) ([]models.Appointment, error)
	FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	FindByRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	FindUpcoming(ctx context.Context, from time.Time) ([]models.Appointment, error)
	FindCandidates(ctx context.Context, employeeID uint, excludeID uint) ([]models.Appointment, error)
	SearchByClientName(ctx context.Context, name string) ([]models.Appointment, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, appointment *models.Appointment) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.AppointmentStatus) (int64, error)
}

// AppointmentRepository implements IAppointmentRepository over GORM.
type AppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds an AppointmentRepository on db.
func NewAppointmentRepository(db *gorm.DB) IAppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Employee")
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.preload(ctx).First(&appointment, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			configslog.Log.Error("AppointmentRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translate(err)
	}
	return &appointment, nil
}

func (r *AppointmentRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).Order("scheduled_at ASC").Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) FindByClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).
		Where("client_id = ?", clientID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) FindByEmployee(ctx context.Context, employeeID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).
		Where("employee_id = ?", employeeID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).
		Where("status = ?", status).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) FindByRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).
		Where("scheduled_at BETWEEN ? AND ?", from, to).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) FindUpcoming(ctx context.Context, from time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).
		Where("scheduled_at >= ?", from).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

// FindCandidates returns the employee's appointments that can participate in
// a slot conflict: status pending or confirmed, optionally excluding one id.
// The window predicate itself lives in the service.
func (r *AppointmentRepository) FindCandidates(ctx context.Context, employeeID uint, excludeID uint) ([]models.Appointment, error) {
	query := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []models.AppointmentStatus{models.AppointmentPending, models.AppointmentConfirmed})
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var candidates []models.Appointment
	err := query.Find(&candidates).Error
	return candidates, err
}

func (r *AppointmentRepository) SearchByClientName(ctx context.Context, name string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.preload(ctx).
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("clients.name LIKE ?", "%"+name+"%").
		Order("appointments.scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

// Updates applies a partial field map. Unknown ids are a silent no-op at
// this layer; the service checks existence beforehand.
func (r *AppointmentRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Delete(appointment).Error
}

func (r *AppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context, status models.AppointmentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
