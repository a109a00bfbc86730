package repositories

import (
	"context"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IRoleRepository handles job role persistence.
type IRoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	FindByID(ctx context.Context, id uint) (*models.Role, error)
	FindAll(ctx context.Context) ([]models.Role, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, role *models.Role) error
}

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) IRoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *RoleRepository) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Role{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the role and detaches its employees.
func (r *RoleRepository) Delete(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("role_id = ?", role.ID).
			Update("role_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("role_id = ?", role.ID).
			Update("role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(role).Error
	})
}

var _ IRoleRepository = (*RoleRepository)(nil)
