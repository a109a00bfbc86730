package services

import (
	"context"
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
	ErrFinanceBadKind    = apperrors.NewValidation("invalid finance entry kind")
	ErrFinanceBadAmount  = apperrors.NewValidation("finance entry amount must be positive")
	ErrFinanceBadPayment = apperrors.NewValidation("invalid payment method")
)

type CreateFinanceEntryInput struct {
	Kind          models.EntryKind     `json:"kind"`
	Description   string               `json:"description"`
	Amount        float64              `json:"amount"`
	EntryDate     time.Time            `json:"entry_date"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	OrderID       *uint                `json:"order_id"`
}

type UpdateFinanceEntryInput struct {
	Kind          *models.EntryKind     `json:"kind"`
	Description   *string               `json:"description"`
	Amount        *float64              `json:"amount"`
	EntryDate     *time.Time            `json:"entry_date"`
	PaymentMethod *models.PaymentMethod `json:"payment_method"`
}

// IFinanceService manages the cash ledger and its aggregate totals.
type IFinanceService interface {
	Create(ctx context.Context, input CreateFinanceEntryInput) (*models.FinanceEntry, error)
	FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error)
	FindAll(ctx context.Context) ([]models.FinanceEntry, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]models.FinanceEntry, error)
	FindByKind(ctx context.Context, kind models.EntryKind) ([]models.FinanceEntry, error)
	FindByOrder(ctx context.Context, orderID uint) ([]models.FinanceEntry, error)
	Update(ctx context.Context, id uint, input UpdateFinanceEntryInput) (*models.FinanceEntry, error)
	Delete(ctx context.Context, id uint) error
	Totals(ctx context.Context, from, to *time.Time) (*models.FinanceTotals, error)
	TotalsByMethod(ctx context.Context, from, to *time.Time) (map[models.PaymentMethod]float64, error)
}

type FinanceService struct {
	repo   repositories.IFinanceRepository
	orders repositories.IOrderRepository
	bus    *events.Bus
	now    func() time.Time
}

func NewFinanceService(db *gorm.DB, bus *events.Bus) *FinanceService {
	return &FinanceService{
		repo:   repositories.NewFinanceRepository(db),
		orders: repositories.NewOrderRepository(db),
		bus:    bus,
		now:    time.Now,
	}
}

func (s *FinanceService) Create(ctx context.Context, input CreateFinanceEntryInput) (*models.FinanceEntry, error) {
	if !models.ValidEntryKind(input.Kind) {
		return nil, ErrFinanceBadKind
	}
	if input.Amount <= 0 {
		return nil, ErrFinanceBadAmount
	}
	method := input.PaymentMethod
	if method == "" {
		method = models.PayCash
	}
	if !models.ValidPaymentMethod(method) {
		return nil, ErrFinanceBadPayment
	}
	if input.OrderID != nil && *input.OrderID != 0 {
		if _, err := s.orders.FindByID(ctx, *input.OrderID); err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperrors.NewNotFound("order", *input.OrderID)
			}
			return nil, apperrors.Internal("finance: check order", err)
		}
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = s.now()
	}

	entry := models.FinanceEntry{
		Kind:          input.Kind,
		Description:   input.Description,
		Amount:        input.Amount,
		EntryDate:     entryDate,
		PaymentMethod: method,
		OrderID:       input.OrderID,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		configslog.Log.Error("FinanceService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("finance: create", err)
	}

	s.publish(events.EventFinanceCreated, &entry)
	return &entry, nil
}

func (s *FinanceService) FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("finance entry", id)
		}
		return nil, apperrors.Internal("finance: find", err)
	}
	return entry, nil
}

func (s *FinanceService) FindAll(ctx context.Context) ([]models.FinanceEntry, error) {
	entries, err := s.repo.FindAll(ctx)
	return entries, apperrors.Internal("finance: list", err)
}

func (s *FinanceService) FindByPeriod(ctx context.Context, from, to time.Time) ([]models.FinanceEntry, error) {
	entries, err := s.repo.FindByPeriod(ctx, from, to)
	return entries, apperrors.Internal("finance: list by period", err)
}

func (s *FinanceService) FindByKind(ctx context.Context, kind models.EntryKind) ([]models.FinanceEntry, error) {
	if !models.ValidEntryKind(kind) {
		return nil, ErrFinanceBadKind
	}
	entries, err := s.repo.FindByKind(ctx, kind)
	return entries, apperrors.Internal("finance: list by kind", err)
}

func (s *FinanceService) FindByOrder(ctx context.Context, orderID uint) ([]models.FinanceEntry, error) {
	entries, err := s.repo.FindByOrder(ctx, orderID)
	return entries, apperrors.Internal("finance: list by order", err)
}

func (s *FinanceService) Update(ctx context.Context, id uint, input UpdateFinanceEntryInput) (*models.FinanceEntry, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if input.Kind != nil && !models.ValidEntryKind(*input.Kind) {
		return nil, ErrFinanceBadKind
	}
	if input.Amount != nil && *input.Amount <= 0 {
		return nil, ErrFinanceBadAmount
	}
	if input.PaymentMethod != nil && !models.ValidPaymentMethod(*input.PaymentMethod) {
		return nil, ErrFinanceBadPayment
	}

	fields := map[string]any{}
	if input.Kind != nil {
		fields["kind"] = *input.Kind
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Amount != nil {
		fields["amount"] = *input.Amount
	}
	if input.EntryDate != nil {
		fields["entry_date"] = *input.EntryDate
	}
	if input.PaymentMethod != nil {
		fields["payment_method"] = *input.PaymentMethod
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("FinanceService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("finance: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventFinanceUpdated, updated)
	return updated, nil
}

func (s *FinanceService) Delete(ctx context.Context, id uint) error {
	entry, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, entry); err != nil {
		configslog.Log.Error("FinanceService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("finance: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventFinanceDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventFinanceDeleted)
	return nil
}

// Totals sums income and expense over an optional period. Nil bounds are
// open-ended.
func (s *FinanceService) Totals(ctx context.Context, from, to *time.Time) (*models.FinanceTotals, error) {
	totals := models.FinanceTotals{}

	income, err := s.repo.FindForTotals(ctx, from, to, models.EntryIncome)
	if err != nil {
		return nil, apperrors.Internal("finance: totals", err)
	}
	for i := range income {
		totals.Income += income[i].Amount
	}

	expense, err := s.repo.FindForTotals(ctx, from, to, models.EntryExpense)
	if err != nil {
		return nil, apperrors.Internal("finance: totals", err)
	}
	for i := range expense {
		totals.Expense += expense[i].Amount
	}

	totals.Balance = totals.Income - totals.Expense
	return &totals, nil
}

// TotalsByMethod breaks income down by payment method over an optional period.
func (s *FinanceService) TotalsByMethod(ctx context.Context, from, to *time.Time) (map[models.PaymentMethod]float64, error) {
	income, err := s.repo.FindForTotals(ctx, from, to, models.EntryIncome)
	if err != nil {
		return nil, apperrors.Internal("finance: totals by method", err)
	}
	totals := make(map[models.PaymentMethod]float64)
	for i := range income {
		totals[income[i].PaymentMethod] += income[i].Amount
	}
	return totals, nil
}

func (s *FinanceService) publish(eventType string, entry *models.FinanceEntry) {
	if err := s.bus.PublishJSON(eventType, entry); err != nil {
		configslog.Log.Warn("Finance event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IFinanceService = (*FinanceService)(nil)
