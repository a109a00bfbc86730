package repositories

import (
	"context"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IUserRepository handles account persistence.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, user *models.User) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, active bool) (int64, error)
	CountLinkedToEmployee(ctx context.Context) (int64, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Employee").Preload("Role")
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.preload(ctx).First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.preload(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.preload(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Delete(user).Error
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("active = ?", active).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountLinkedToEmployee(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("employee_id IS NOT NULL").
		Count(&count).Error
	return count, err
}

var _ IUserRepository = (*UserRepository)(nil)
