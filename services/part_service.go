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
	ErrPartNameRequired     = apperrors.NewValidation("part name is required")
	ErrPartCodeTaken        = apperrors.NewValidation("a part with this internal code already exists")
	ErrPartBadMovement      = apperrors.NewValidation("stock movement quantity must be positive")
	ErrPartInsufficient     = apperrors.NewValidation("insufficient stock")
	ErrPartNegativePrice    = apperrors.NewValidation("part prices cannot be negative")
	ErrPartNegativeQuantity = apperrors.NewValidation("part quantity cannot be negative")
)

// StockOp is the direction of a stock movement.
type StockOp string

const (
	StockIn  StockOp = "in"
	StockOut StockOp = "out"
)

type CreatePartInput struct {
	Name         string  `json:"name"`
	InternalCode string  `json:"internal_code"`
	SupplierCode string  `json:"supplier_code"`
	Quantity     int     `json:"quantity"`
	CostPrice    float64 `json:"cost_price"`
	SalePrice    float64 `json:"sale_price"`
	MinStock     int     `json:"min_stock"`
	SupplierID   *uint   `json:"supplier_id"`
}

type UpdatePartInput struct {
	Name         *string  `json:"name"`
	InternalCode *string  `json:"internal_code"`
	SupplierCode *string  `json:"supplier_code"`
	CostPrice    *float64 `json:"cost_price"`
	SalePrice    *float64 `json:"sale_price"`
	MinStock     *int     `json:"min_stock"`
	SupplierID   *uint    `json:"supplier_id"`
}

// IPartService manages the parts inventory: catalog data, stock movements
// and the low-stock projection.
type IPartService interface {
	Create(ctx context.Context, input CreatePartInput) (*models.Part, error)
	FindByID(ctx context.Context, id uint) (*models.Part, error)
	FindByInternalCode(ctx context.Context, code string) (*models.Part, error)
	FindAll(ctx context.Context) ([]models.Part, error)
	SearchByName(ctx context.Context, name string) ([]models.Part, error)
	FindLowStock(ctx context.Context) ([]models.Part, error)
	FindBySupplier(ctx context.Context, supplierID uint) ([]models.Part, error)
	Update(ctx context.Context, id uint, input UpdatePartInput) (*models.Part, error)
	Move(ctx context.Context, id uint, op StockOp, quantity int) (*models.Part, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*models.PartStats, error)
}

type PartService struct {
	repo repositories.IPartRepository
	bus  *events.Bus
}

func NewPartService(db *gorm.DB, bus *events.Bus) *PartService {
	return &PartService{repo: repositories.NewPartRepository(db), bus: bus}
}

func (s *PartService) Create(ctx context.Context, input CreatePartInput) (*models.Part, error) {
	if input.Name == "" {
		return nil, ErrPartNameRequired
	}
	if input.Quantity < 0 {
		return nil, ErrPartNegativeQuantity
	}
	if input.CostPrice < 0 || input.SalePrice < 0 {
		return nil, ErrPartNegativePrice
	}
	if input.InternalCode != "" {
		if _, err := s.repo.FindByInternalCode(ctx, input.InternalCode); err == nil {
			return nil, ErrPartCodeTaken
		} else if err != repositories.ErrNotFound {
			return nil, apperrors.Internal("part: check code", err)
		}
	}

	part := models.Part{
		Name:         input.Name,
		InternalCode: input.InternalCode,
		SupplierCode: input.SupplierCode,
		Quantity:     input.Quantity,
		CostPrice:    input.CostPrice,
		SalePrice:    input.SalePrice,
		MinStock:     input.MinStock,
		SupplierID:   input.SupplierID,
	}
	if err := s.repo.Create(ctx, &part); err != nil {
		configslog.Log.Error("PartService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("part: create", err)
	}

	s.publish(events.EventPartCreated, &part)
	s.broadcastStats(ctx)
	return &part, nil
}

func (s *PartService) FindByID(ctx context.Context, id uint) (*models.Part, error) {
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("part", id)
		}
		return nil, apperrors.Internal("part: find", err)
	}
	return part, nil
}

func (s *PartService) FindByInternalCode(ctx context.Context, code string) (*models.Part, error) {
	part, err := s.repo.FindByInternalCode(ctx, code)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("part", 0)
		}
		return nil, apperrors.Internal("part: find by code", err)
	}
	return part, nil
}

func (s *PartService) FindAll(ctx context.Context) ([]models.Part, error) {
	parts, err := s.repo.FindAll(ctx)
	return parts, apperrors.Internal("part: list", err)
}

func (s *PartService) SearchByName(ctx context.Context, name string) ([]models.Part, error) {
	parts, err := s.repo.SearchByName(ctx, name)
	return parts, apperrors.Internal("part: search", err)
}

func (s *PartService) FindLowStock(ctx context.Context) ([]models.Part, error) {
	parts, err := s.repo.FindLowStock(ctx)
	return parts, apperrors.Internal("part: list low stock", err)
}

func (s *PartService) FindBySupplier(ctx context.Context, supplierID uint) ([]models.Part, error) {
	parts, err := s.repo.FindBySupplier(ctx, supplierID)
	return parts, apperrors.Internal("part: list by supplier", err)
}

func (s *PartService) Update(ctx context.Context, id uint, input UpdatePartInput) (*models.Part, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CostPrice != nil && *input.CostPrice < 0 {
		return nil, ErrPartNegativePrice
	}
	if input.SalePrice != nil && *input.SalePrice < 0 {
		return nil, ErrPartNegativePrice
	}
	if input.InternalCode != nil && *input.InternalCode != "" && *input.InternalCode != existing.InternalCode {
		if other, err := s.repo.FindByInternalCode(ctx, *input.InternalCode); err == nil && other.ID != id {
			return nil, ErrPartCodeTaken
		} else if err != nil && err != repositories.ErrNotFound {
			return nil, apperrors.Internal("part: check code", err)
		}
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.InternalCode != nil {
		fields["internal_code"] = *input.InternalCode
	}
	if input.SupplierCode != nil {
		fields["supplier_code"] = *input.SupplierCode
	}
	if input.CostPrice != nil {
		fields["cost_price"] = *input.CostPrice
	}
	if input.SalePrice != nil {
		fields["sale_price"] = *input.SalePrice
	}
	if input.MinStock != nil {
		fields["min_stock"] = *input.MinStock
	}
	if input.SupplierID != nil {
		if *input.SupplierID == 0 {
			fields["supplier_id"] = nil
		} else {
			fields["supplier_id"] = *input.SupplierID
		}
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("PartService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("part: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventPartUpdated, updated)
	s.broadcastStats(ctx)
	return updated, nil
}

// Move applies a stock movement. Outbound movements never take the quantity
// below zero; they fail instead.
func (s *PartService) Move(ctx context.Context, id uint, op StockOp, quantity int) (*models.Part, error) {
	if quantity <= 0 {
		return nil, ErrPartBadMovement
	}
	part, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var next int
	switch op {
	case StockIn:
		next = part.Quantity + quantity
	case StockOut:
		next = part.Quantity - quantity
		if next < 0 {
			return nil, ErrPartInsufficient
		}
	default:
		return nil, apperrors.NewValidation("invalid stock operation %q", op)
	}

	if err := s.repo.Updates(ctx, id, map[string]any{"quantity": next}); err != nil {
		configslog.Log.Error("PartService.Move failed", zap.Uint("id", id), zap.Error(err))
		return nil, apperrors.Internal("part: move stock", err)
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated.LowStock() {
		configslog.SLog.Warnf("Part %d (%s) is low on stock: %d on hand, minimum %d",
			updated.ID, updated.Name, updated.Quantity, updated.MinStock)
	}

	_ = s.bus.PublishJSON(events.EventPartMoved, map[string]any{
		"id":       updated.ID,
		"op":       op,
		"moved":    quantity,
		"quantity": updated.Quantity,
	})
	metrics.IncEvent(events.EventPartMoved)
	s.broadcastStats(ctx)
	return updated, nil
}

func (s *PartService) Delete(ctx context.Context, id uint) error {
	part, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, part); err != nil {
		configslog.Log.Error("PartService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("part: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventPartDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventPartDeleted)
	s.broadcastStats(ctx)
	return nil
}

// Stats recomputes the inventory projection, including the low-stock alert
// list.
func (s *PartService) Stats(ctx context.Context) (*models.PartStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("part: stats", err)
	}
	low, err := s.repo.FindLowStock(ctx)
	if err != nil {
		return nil, apperrors.Internal("part: stats", err)
	}
	zero, err := s.repo.FindZeroStock(ctx)
	if err != nil {
		return nil, apperrors.Internal("part: stats", err)
	}
	value, err := s.repo.StockValue(ctx)
	if err != nil {
		return nil, apperrors.Internal("part: stats", err)
	}

	alerts := make([]models.StockAlert, 0, len(low))
	for i := range low {
		alerts = append(alerts, models.StockAlert{
			ID:       low[i].ID,
			Name:     low[i].Name,
			Quantity: low[i].Quantity,
			MinStock: low[i].MinStock,
		})
	}

	return &models.PartStats{
		Total:      total,
		LowStock:   int64(len(low)),
		ZeroStock:  int64(len(zero)),
		StockValue: value,
		Alerts:     alerts,
	}, nil
}

func (s *PartService) publish(eventType string, part *models.Part) {
	if err := s.bus.PublishJSON(eventType, part); err != nil {
		configslog.Log.Warn("Part event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

func (s *PartService) broadcastStats(ctx context.Context) {
	stats, err := s.Stats(ctx)
	if err != nil {
		configslog.Log.Warn("Part stats recompute failed", zap.Error(err))
		return
	}
	_ = s.bus.PublishJSON(events.EventPartStats, stats)
	metrics.IncEvent(events.EventPartStats)
}

var _ IPartService = (*PartService)(nil)
