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

var (
	ErrItemBadKind       = apperrors.NewValidation("invalid item kind")
	ErrItemBadQuantity   = apperrors.NewValidation("item quantity must be positive")
	ErrItemNegativePrice = apperrors.NewValidation("item unit price cannot be negative")
	ErrItemOrderRequired = apperrors.NewValidation("item must belong to an order")
	ErrItemNoDescription = apperrors.NewValidation("item description is required")
)

type CreateOrderItemInput struct {
	OrderID     uint            `json:"order_id"`
	Description string          `json:"description"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   float64         `json:"unit_price"`
	Kind        models.ItemKind `json:"kind"`
}

type UpdateOrderItemInput struct {
	Description *string          `json:"description"`
	Quantity    *float64         `json:"quantity"`
	UnitPrice   *float64         `json:"unit_price"`
	Kind        *models.ItemKind `json:"kind"`
}

// IOrderItemService manages order lines. Every mutation recalculates the
// owning order's total.
type IOrderItemService interface {
	Create(ctx context.Context, input CreateOrderItemInput) (*models.OrderItem, error)
	FindByID(ctx context.Context, id uint) (*models.OrderItem, error)
	FindAll(ctx context.Context) ([]models.OrderItem, error)
	FindByOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	FindByKind(ctx context.Context, kind models.ItemKind) ([]models.OrderItem, error)
	CountByKind(ctx context.Context, kind models.ItemKind) (int64, error)
	Update(ctx context.Context, id uint, input UpdateOrderItemInput) (*models.OrderItem, error)
	Delete(ctx context.Context, id uint) error
	DeleteByOrder(ctx context.Context, orderID uint) error
}

type OrderItemService struct {
	repo   repositories.IOrderItemRepository
	orders *OrderService
	bus    *events.Bus
}

func NewOrderItemService(db *gorm.DB, bus *events.Bus) *OrderItemService {
	return &OrderItemService{
		repo:   repositories.NewOrderItemRepository(db),
		orders: NewOrderService(db, bus),
		bus:    bus,
	}
}

func (s *OrderItemService) Create(ctx context.Context, input CreateOrderItemInput) (*models.OrderItem, error) {
	if input.OrderID == 0 {
		return nil, ErrItemOrderRequired
	}
	if input.Description == "" {
		return nil, ErrItemNoDescription
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrItemBadQuantity
	}
	if input.UnitPrice < 0 {
		return nil, ErrItemNegativePrice
	}
	kind := input.Kind
	if kind == "" {
		kind = models.ItemService
	}
	if !models.ValidItemKind(kind) {
		return nil, ErrItemBadKind
	}
	if _, err := s.orders.FindByID(ctx, input.OrderID); err != nil {
		return nil, err
	}

	item := models.OrderItem{
		OrderID:     input.OrderID,
		Description: input.Description,
		Quantity:    quantity,
		UnitPrice:   input.UnitPrice,
		Kind:        kind,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		configslog.Log.Error("OrderItemService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("order item: create", err)
	}

	if _, err := s.orders.RecalculateTotal(ctx, item.OrderID); err != nil {
		return nil, err
	}
	s.publish(events.EventOrderItemCreated, &item)
	return &item, nil
}

func (s *OrderItemService) FindByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("order item", id)
		}
		return nil, apperrors.Internal("order item: find", err)
	}
	return item, nil
}

func (s *OrderItemService) FindAll(ctx context.Context) ([]models.OrderItem, error) {
	items, err := s.repo.FindAll(ctx)
	return items, apperrors.Internal("order item: list", err)
}

func (s *OrderItemService) FindByOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	items, err := s.repo.FindByOrder(ctx, orderID)
	return items, apperrors.Internal("order item: list by order", err)
}

func (s *OrderItemService) FindByKind(ctx context.Context, kind models.ItemKind) ([]models.OrderItem, error) {
	if !models.ValidItemKind(kind) {
		return nil, ErrItemBadKind
	}
	items, err := s.repo.FindByKind(ctx, kind)
	return items, apperrors.Internal("order item: list by kind", err)
}

func (s *OrderItemService) CountByKind(ctx context.Context, kind models.ItemKind) (int64, error) {
	if !models.ValidItemKind(kind) {
		return 0, ErrItemBadKind
	}
	count, err := s.repo.CountByKind(ctx, kind)
	return count, apperrors.Internal("order item: count by kind", err)
}

func (s *OrderItemService) Update(ctx context.Context, id uint, input UpdateOrderItemInput) (*models.OrderItem, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil && *input.Quantity <= 0 {
		return nil, ErrItemBadQuantity
	}
	if input.UnitPrice != nil && *input.UnitPrice < 0 {
		return nil, ErrItemNegativePrice
	}
	if input.Kind != nil && !models.ValidItemKind(*input.Kind) {
		return nil, ErrItemBadKind
	}

	fields := map[string]any{}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Quantity != nil {
		fields["quantity"] = *input.Quantity
	}
	if input.UnitPrice != nil {
		fields["unit_price"] = *input.UnitPrice
	}
	if input.Kind != nil {
		fields["kind"] = *input.Kind
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("OrderItemService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("order item: update", err)
		}
	}

	if _, err := s.orders.RecalculateTotal(ctx, existing.OrderID); err != nil {
		return nil, err
	}
	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventOrderItemUpdated, updated)
	return updated, nil
}

func (s *OrderItemService) Delete(ctx context.Context, id uint) error {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item); err != nil {
		configslog.Log.Error("OrderItemService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("order item: delete", err)
	}
	if _, err := s.orders.RecalculateTotal(ctx, item.OrderID); err != nil {
		return err
	}
	_ = s.bus.PublishJSON(events.EventOrderItemDeleted, map[string]any{"id": id, "order_id": item.OrderID})
	metrics.IncEvent(events.EventOrderItemDeleted)
	return nil
}

// DeleteByOrder drops every line of an order and zeroes its total.
func (s *OrderItemService) DeleteByOrder(ctx context.Context, orderID uint) error {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return err
	}
	if err := s.repo.DeleteByOrder(ctx, orderID); err != nil {
		configslog.Log.Error("OrderItemService.DeleteByOrder failed", zap.Uint("order_id", orderID), zap.Error(err))
		return apperrors.Internal("order item: delete by order", err)
	}
	if _, err := s.orders.RecalculateTotal(ctx, orderID); err != nil {
		return err
	}
	_ = s.bus.PublishJSON(events.EventOrderItemDeleted, map[string]any{"order_id": orderID})
	metrics.IncEvent(events.EventOrderItemDeleted)
	return nil
}

func (s *OrderItemService) publish(eventType string, item *models.OrderItem) {
	if err := s.bus.PublishJSON(eventType, item); err != nil {
		configslog.Log.Warn("Order item event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IOrderItemService = (*OrderItemService)(nil)
