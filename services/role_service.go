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

var ErrRoleNameRequired = apperrors.NewValidation("role name is required")

type CreateRoleInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateRoleInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type IRoleService interface {
	Create(ctx context.Context, input CreateRoleInput) (*models.Role, error)
	FindByID(ctx context.Context, id uint) (*models.Role, error)
	FindAll(ctx context.Context) ([]models.Role, error)
	Update(ctx context.Context, id uint, input UpdateRoleInput) (*models.Role, error)
	Delete(ctx context.Context, id uint) error
}

type RoleService struct {
	repo repositories.IRoleRepository
	bus  *events.Bus
}

func NewRoleService(db *gorm.DB, bus *events.Bus) *RoleService {
	return &RoleService{repo: repositories.NewRoleRepository(db), bus: bus}
}

func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*models.Role, error) {
	if input.Name == "" {
		return nil, ErrRoleNameRequired
	}

	role := models.Role{Name: input.Name, Description: input.Description}
	if err := s.repo.Create(ctx, &role); err != nil {
		configslog.Log.Error("RoleService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("role: create", err)
	}

	s.publish(events.EventRoleCreated, &role)
	return &role, nil
}

func (s *RoleService) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("role", id)
		}
		return nil, apperrors.Internal("role: find", err)
	}
	return role, nil
}

func (s *RoleService) FindAll(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.FindAll(ctx)
	return roles, apperrors.Internal("role: list", err)
}

func (s *RoleService) Update(ctx context.Context, id uint, input UpdateRoleInput) (*models.Role, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("RoleService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("role: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventRoleUpdated, updated)
	return updated, nil
}

// Delete removes the role; employees and users holding it are detached, not
// deleted.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	role, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, role); err != nil {
		configslog.Log.Error("RoleService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("role: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventRoleDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventRoleDeleted)
	return nil
}

func (s *RoleService) publish(eventType string, role *models.Role) {
	if err := s.bus.PublishJSON(eventType, role); err != nil {
		configslog.Log.Warn("Role event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IRoleService = (*RoleService)(nil)
