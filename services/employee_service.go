package services

import (
	"context"

	"oficina.app/configs/configslog"
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/pkg/events"
	"oficina.app/pkg/metrics"
	"oficina.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrEmployeeNameRequired = apperrors.NewValidation("employee name is required")

type CreateEmployeeInput struct {
	Name   string  `json:"name"`
	RoleID *uint   `json:"role_id"`
	Phone  string  `json:"phone"`
	Email  string  `json:"email"`
	Salary float64 `json:"salary"`
}

type UpdateEmployeeInput struct {
	Name   *string  `json:"name"`
	RoleID *uint    `json:"role_id"`
	Phone  *string  `json:"phone"`
	Email  *string  `json:"email"`
	Salary *float64 `json:"salary"`
	Active *bool    `json:"active"`
}

type IEmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error)
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindActive(ctx context.Context) ([]models.Employee, error)
	Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*models.Employee, error)
	SetRole(ctx context.Context, id uint, roleID uint) (*models.Employee, error)
	Delete(ctx context.Context, id uint) error
}

type EmployeeService struct {
	repo  repositories.IEmployeeRepository
	roles repositories.IRoleRepository
	bus   *events.Bus
}

func NewEmployeeService(db *gorm.DB, bus *events.Bus) *EmployeeService {
	return &EmployeeService{
		repo:  repositories.NewEmployeeRepository(db),
		roles: repositories.NewRoleRepository(db),
		bus:   bus,
	}
}

func (s *EmployeeService) checkRole(ctx context.Context, roleID *uint) error {
	if roleID == nil || *roleID == 0 {
		return nil
	}
	if _, err := s.roles.FindByID(ctx, *roleID); err != nil {
		if err == repositories.ErrNotFound {
			return apperrors.NewNotFound("role", *roleID)
		}
		return apperrors.Internal("employee: check role", err)
	}
	return nil
}

func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	if input.Name == "" {
		return nil, ErrEmployeeNameRequired
	}
	if err := s.checkRole(ctx, input.RoleID); err != nil {
		return nil, err
	}

	employee := models.Employee{
		Name:   input.Name,
		RoleID: input.RoleID,
		Phone:  input.Phone,
		Email:  input.Email,
		Salary: input.Salary,
		Active: true,
	}
	if err := s.repo.Create(ctx, &employee); err != nil {
		configslog.Log.Error("EmployeeService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("employee: create", err)
	}

	s.publish(events.EventEmployeeCreated, &employee)
	return &employee, nil
}

func (s *EmployeeService) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("employee", id)
		}
		return nil, apperrors.Internal("employee: find", err)
	}
	return employee, nil
}

func (s *EmployeeService) FindAll(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	return employees, apperrors.Internal("employee: list", err)
}

func (s *EmployeeService) FindActive(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindActive(ctx)
	return employees, apperrors.Internal("employee: list active", err)
}

func (s *EmployeeService) Update(ctx context.Context, id uint, input UpdateEmployeeInput) (*models.Employee, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, input.RoleID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.RoleID != nil {
		if *input.RoleID == 0 {
			fields["role_id"] = nil
		} else {
			fields["role_id"] = *input.RoleID
		}
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Salary != nil {
		fields["salary"] = *input.Salary
	}
	if input.Active != nil {
		fields["active"] = *input.Active
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("EmployeeService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("employee: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventEmployeeUpdated, updated)
	return updated, nil
}

// SetRole reassigns the employee's role. A zero roleID detaches them.
func (s *EmployeeService) SetRole(ctx context.Context, id uint, roleID uint) (*models.Employee, error) {
	rid := roleID
	return s.Update(ctx, id, UpdateEmployeeInput{RoleID: &rid})
}

func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	employee, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, employee); err != nil {
		configslog.Log.Error("EmployeeService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("employee: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventEmployeeDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventEmployeeDeleted)
	return nil
}

func (s *EmployeeService) publish(eventType string, employee *models.Employee) {
	if err := s.bus.PublishJSON(eventType, employee); err != nil {
		configslog.Log.Warn("Employee event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IEmployeeService = (*EmployeeService)(nil)
