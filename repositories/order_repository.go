package repositories

import (
	"context"

	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IOrderRepository handles service order persistence.
type IOrderRepository interface {
	Create(ctx context.Context, order *models.ServiceOrder) error
	FindByID(ctx context.Context, id uint) (*models.ServiceOrder, error)
	FindAll(ctx context.Context) ([]models.ServiceOrder, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.ServiceOrder, error)
	FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.ServiceOrder, error)
	Save(ctx context.Context, order *models.ServiceOrder) error
	Delete(ctx context.Context, order *models.ServiceOrder) error
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) IOrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Employee").
		Preload("Items")
}

func (r *OrderRepository) Create(ctx context.Context, order *models.ServiceOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	err := r.preload(ctx).First(&order, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			configslog.Log.Error("OrderRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.ServiceOrder, error) {
	var orders []models.ServiceOrder
	err := r.preload(ctx).Order("opened_at DESC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByClient(ctx context.Context, clientID uint) ([]models.ServiceOrder, error) {
	var orders []models.ServiceOrder
	err := r.preload(ctx).
		Where("client_id = ?", clientID).
		Order("opened_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.ServiceOrder, error) {
	var orders []models.ServiceOrder
	err := r.preload(ctx).
		Where("status = ?", status).
		Order("opened_at DESC").
		Find(&orders).Error
	return orders, err
}

// Save persists a fully-loaded order, associations excluded.
func (r *OrderRepository) Save(ctx context.Context, order *models.ServiceOrder) error {
	return r.db.WithContext(ctx).Omit("Client", "Vehicle", "Employee", "Items").Save(order).Error
}

func (r *OrderRepository) Delete(ctx context.Context, order *models.ServiceOrder) error {
	return r.db.WithContext(ctx).Select("Items").Delete(order).Error
}

var _ IOrderRepository = (*OrderRepository)(nil)
