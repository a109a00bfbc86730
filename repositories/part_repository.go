package repositories

import (
	"context"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IPartRepository handles inventory persistence.
type IPartRepository interface {
	Create(ctx context.Context, part *models.Part) error
	FindByID(ctx context.Context, id uint) (*models.Part, error)
	FindByInternalCode(ctx context.Context, code string) (*models.Part, error)
	FindAll(ctx context.Context) ([]models.Part, error)
	SearchByName(ctx context.Context, name string) ([]models.Part, error)
	FindLowStock(ctx context.Context) ([]models.Part, error)
	FindZeroStock(ctx context.Context) ([]models.Part, error)
	FindBySupplier(ctx context.Context, supplierID uint) ([]models.Part, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, part *models.Part) error
	CountAll(ctx context.Context) (int64, error)
	StockValue(ctx context.Context) (float64, error)
}

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) IPartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) Create(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *PartRepository) FindByID(ctx context.Context, id uint) (*models.Part, error) {
	var part models.Part
	err := r.db.WithContext(ctx).First(&part, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &part, nil
}

func (r *PartRepository) FindByInternalCode(ctx context.Context, code string) (*models.Part, error) {
	var part models.Part
	err := r.db.WithContext(ctx).Where("internal_code = ?", code).First(&part).Error
	if err != nil {
		return nil, translate(err)
	}
	return &part, nil
}

func (r *PartRepository) FindAll(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	err := r.db.WithContext(ctx).Order("name ASC").Find(&parts).Error
	return parts, err
}

func (r *PartRepository) SearchByName(ctx context.Context, name string) ([]models.Part, error) {
	var parts []models.Part
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("name ASC").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) FindLowStock(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	err := r.db.WithContext(ctx).
		Where("quantity <= min_stock").
		Order("name ASC").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) FindZeroStock(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	err := r.db.WithContext(ctx).
		Where("quantity = 0").
		Order("name ASC").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) FindBySupplier(ctx context.Context, supplierID uint) ([]models.Part, error) {
	var parts []models.Part
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("name ASC").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Part{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *PartRepository) Delete(ctx context.Context, part *models.Part) error {
	return r.db.WithContext(ctx).Delete(part).Error
}

func (r *PartRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Part{}).Count(&count).Error
	return count, err
}

// StockValue sums quantity*cost over the whole inventory.
func (r *PartRepository) StockValue(ctx context.Context) (float64, error) {
	var value *float64
	err := r.db.WithContext(ctx).
		Model(&models.Part{}).
		Select("SUM(quantity * cost_price)").
		Scan(&value).Error
	if err != nil || value == nil {
		return 0, err
	}
	return *value, nil
}

var _ IPartRepository = (*PartRepository)(nil)
