package services

import (
	"context"
	"fmt"
	"time"

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
	ErrOrderBadStatus       = apperrors.NewValidation("invalid order status")
	ErrOrderAlreadyInvoiced = apperrors.NewValidation("order is already invoiced")
	ErrOrderBadPayment      = apperrors.NewValidation("invalid payment method")
)

type CreateOrderInput struct {
	ClientID   uint               `json:"client_id"`
	VehicleID  uint               `json:"vehicle_id"`
	EmployeeID *uint              `json:"employee_id"`
	Status     models.OrderStatus `json:"status"`
	Notes      string             `json:"notes"`
}

type UpdateOrderInput struct {
	ClientID   *uint               `json:"client_id"`
	VehicleID  *uint               `json:"vehicle_id"`
	EmployeeID *uint               `json:"employee_id"`
	Status     *models.OrderStatus `json:"status"`
	Notes      *string             `json:"notes"`
}

// IOrderService manages service orders: their status lifecycle, the derived
// total amount and invoicing into the finance ledger.
type IOrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.ServiceOrder, error)
	FindByID(ctx context.Context, id uint) (*models.ServiceOrder, error)
	FindAll(ctx context.Context) ([]models.ServiceOrder, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.ServiceOrder, error)
	FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.ServiceOrder, error)
	Update(ctx context.Context, id uint, input UpdateOrderInput) (*models.ServiceOrder, error)
	SetStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.ServiceOrder, error)
	Invoice(ctx context.Context, id uint, method models.PaymentMethod) (*models.ServiceOrder, error)
	RecalculateTotal(ctx context.Context, id uint) (*models.ServiceOrder, error)
	Delete(ctx context.Context, id uint) error
}

type OrderService struct {
	repo      repositories.IOrderRepository
	items     repositories.IOrderItemRepository
	clients   repositories.IClientRepository
	vehicles  repositories.IVehicleRepository
	employees repositories.IEmployeeRepository
	finance   repositories.IFinanceRepository
	bus       *events.Bus
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, bus *events.Bus) *OrderService {
	return &OrderService{
		repo:      repositories.NewOrderRepository(db),
		items:     repositories.NewOrderItemRepository(db),
		clients:   repositories.NewClientRepository(db),
		vehicles:  repositories.NewVehicleRepository(db),
		employees: repositories.NewEmployeeRepository(db),
		finance:   repositories.NewFinanceRepository(db),
		bus:       bus,
		now:       time.Now,
	}
}

func (s *OrderService) checkReferences(ctx context.Context, clientID, vehicleID uint, employeeID *uint) error {
	if clientID != 0 {
		if _, err := s.clients.FindByID(ctx, clientID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("client", clientID)
			}
			return apperrors.Internal("order: check client", err)
		}
	}
	if vehicleID != 0 {
		if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("vehicle", vehicleID)
			}
			return apperrors.Internal("order: check vehicle", err)
		}
	}
	if employeeID != nil && *employeeID != 0 {
		if _, err := s.employees.FindByID(ctx, *employeeID); err != nil {
			if err == repositories.ErrNotFound {
				return apperrors.NewNotFound("employee", *employeeID)
			}
			return apperrors.Internal("order: check employee", err)
		}
	}
	return nil
}

func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.ServiceOrder, error) {
	status := input.Status
	if status == "" {
		status = models.OrderOpen
	}
	if !models.ValidOrderStatus(status) {
		return nil, ErrOrderBadStatus
	}
	if err := s.checkReferences(ctx, input.ClientID, input.VehicleID, input.EmployeeID); err != nil {
		return nil, err
	}

	order := models.ServiceOrder{
		ClientID:   input.ClientID,
		VehicleID:  input.VehicleID,
		EmployeeID: input.EmployeeID,
		Status:     status,
		Notes:      input.Notes,
	}
	if status.IsClosing() {
		now := s.now()
		order.ClosedAt = &now
	}
	if err := s.repo.Create(ctx, &order); err != nil {
		configslog.Log.Error("OrderService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("order: create", err)
	}

	created, err := s.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventOrderCreated, created)
	configslog.SLog.Infof("Service order %d opened for client %d", created.ID, created.ClientID)
	return created, nil
}

func (s *OrderService) FindByID(ctx context.Context, id uint) (*models.ServiceOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("order", id)
		}
		return nil, apperrors.Internal("order: find", err)
	}
	return order, nil
}

func (s *OrderService) FindAll(ctx context.Context) ([]models.ServiceOrder, error) {
	orders, err := s.repo.FindAll(ctx)
	return orders, apperrors.Internal("order: list", err)
}

func (s *OrderService) FindByClient(ctx context.Context, clientID uint) ([]models.ServiceOrder, error) {
	orders, err := s.repo.FindByClient(ctx, clientID)
	return orders, apperrors.Internal("order: list by client", err)
}

func (s *OrderService) FindByStatus(ctx context.Context, status models.OrderStatus) ([]models.ServiceOrder, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrOrderBadStatus
	}
	orders, err := s.repo.FindByStatus(ctx, status)
	return orders, apperrors.Internal("order: list by status", err)
}

func (s *OrderService) Update(ctx context.Context, id uint, input UpdateOrderInput) (*models.ServiceOrder, error) {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status != nil && !models.ValidOrderStatus(*input.Status) {
		return nil, ErrOrderBadStatus
	}

	var clientID, vehicleID uint
	if input.ClientID != nil {
		clientID = *input.ClientID
	}
	if input.VehicleID != nil {
		vehicleID = *input.VehicleID
	}
	if err := s.checkReferences(ctx, clientID, vehicleID, input.EmployeeID); err != nil {
		return nil, err
	}

	if input.ClientID != nil {
		order.ClientID = *input.ClientID
	}
	if input.VehicleID != nil {
		order.VehicleID = *input.VehicleID
	}
	if input.EmployeeID != nil {
		if *input.EmployeeID == 0 {
			order.EmployeeID = nil
		} else {
			order.EmployeeID = input.EmployeeID
		}
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if input.Status != nil {
		s.applyStatus(order, *input.Status)
	}

	if err := s.repo.Save(ctx, order); err != nil {
		configslog.Log.Error("OrderService.Update failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("order: update", err)
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventOrderUpdated, updated)
	return updated, nil
}

// applyStatus moves the order to status, stamping ClosedAt when entering a
// closing status and clearing it when the order is reopened.
func (s *OrderService) applyStatus(order *models.ServiceOrder, status models.OrderStatus) {
	order.Status = status
	if status.IsClosing() {
		if order.ClosedAt == nil {
			now := s.now()
			order.ClosedAt = &now
		}
	} else {
		order.ClosedAt = nil
	}
}

func (s *OrderService) SetStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.ServiceOrder, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrOrderBadStatus
	}
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.applyStatus(order, status)
	if err := s.repo.Save(ctx, order); err != nil {
		configslog.Log.Error("OrderService.SetStatus failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("order: set status", err)
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventOrderUpdated, updated)
	return updated, nil
}

// Invoice closes the order as invoiced and records its total as an income
// entry in the finance ledger, dated today and linked back to the order.
func (s *OrderService) Invoice(ctx context.Context, id uint, method models.PaymentMethod) (*models.ServiceOrder, error) {
	if method == "" {
		method = models.PayCash
	}
	if !models.ValidPaymentMethod(method) {
		return nil, ErrOrderBadPayment
	}
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderInvoiced {
		return nil, ErrOrderAlreadyInvoiced
	}

	s.applyStatus(order, models.OrderInvoiced)
	if err := s.repo.Save(ctx, order); err != nil {
		configslog.Log.Error("OrderService.Invoice failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("order: invoice", err)
	}

	orderID := order.ID
	entry := models.FinanceEntry{
		Kind:          models.EntryIncome,
		Description:   fmt.Sprintf("Service order #%d", order.ID),
		Amount:        order.TotalAmount,
		EntryDate:     s.now(),
		PaymentMethod: method,
		OrderID:       &orderID,
	}
	if err := s.finance.Create(ctx, &entry); err != nil {
		configslog.Log.Error("OrderService.Invoice: income entry failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("order: invoice income entry", err)
	}

	invoiced, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventOrderInvoiced, invoiced)
	_ = s.bus.PublishJSON(events.EventFinanceCreated, &entry)
	metrics.IncEvent(events.EventFinanceCreated)
	configslog.SLog.Infof("Service order %d invoiced for %.2f", id, order.TotalAmount)
	return invoiced, nil
}

// RecalculateTotal resums the order's items into TotalAmount.
func (s *OrderService) RecalculateTotal(ctx context.Context, id uint) (*models.ServiceOrder, error) {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByOrder(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("order: load items", err)
	}
	var total float64
	for i := range items {
		total += items[i].Total()
	}

	order.TotalAmount = total
	if err := s.repo.Save(ctx, order); err != nil {
		configslog.Log.Error("OrderService.RecalculateTotal failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("order: recalculate total", err)
	}
	return s.FindByID(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, order); err != nil {
		configslog.Log.Error("OrderService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("order: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventOrderDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventOrderDeleted)
	return nil
}

func (s *OrderService) publish(eventType string, order *models.ServiceOrder) {
	if err := s.bus.PublishJSON(eventType, order); err != nil {
		configslog.Log.Warn("Order event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IOrderService = (*OrderService)(nil)
