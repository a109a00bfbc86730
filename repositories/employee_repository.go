package repositories

import (
	"context"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IEmployeeRepository handles staff persistence.
type IEmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindActive(ctx context.Context) ([]models.Employee, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, employee *models.Employee) error
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) IEmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Preload("Role").First(&employee, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Preload("Role").Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) FindActive(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("active = ?", true).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Delete(employee).Error
}

var _ IEmployeeRepository = (*EmployeeRepository)(nil)
