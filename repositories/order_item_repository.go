package repositories

import (
	"context"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IOrderItemRepository handles order line persistence.
type IOrderItemRepository interface {
	Create(ctx context.Context, item *models.OrderItem) error
	FindByID(ctx context.Context, id uint) (*models.OrderItem, error)
	FindAll(ctx context.Context) ([]models.OrderItem, error)
	FindByOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	FindByKind(ctx context.Context, kind models.ItemKind) ([]models.OrderItem, error)
	CountByKind(ctx context.Context, kind models.ItemKind) (int64, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, item *models.OrderItem) error
	DeleteByOrder(ctx context.Context, orderID uint) error
}

type OrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) IOrderItemRepository {
	return &OrderItemRepository{db: db}
}

func (r *OrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *OrderItemRepository) FindByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *OrderItemRepository) FindAll(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).Order("id DESC").Find(&items).Error
	return items, err
}

func (r *OrderItemRepository) FindByOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *OrderItemRepository) FindByKind(ctx context.Context, kind models.ItemKind) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *OrderItemRepository) CountByKind(ctx context.Context, kind models.ItemKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("kind = ?", kind).
		Count(&count).Error
	return count, err
}

func (r *OrderItemRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *OrderItemRepository) Delete(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *OrderItemRepository) DeleteByOrder(ctx context.Context, orderID uint) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error
}

var _ IOrderItemRepository = (*OrderItemRepository)(nil)
