package repositories

import (
	"context"
	"time"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IFinanceRepository handles finance entry persistence.
type IFinanceRepository interface {
	Create(ctx context.Context, entry *models.FinanceEntry) error
	FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error)
	FindAll(ctx context.Context) ([]models.FinanceEntry, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]models.FinanceEntry, error)
	FindByKind(ctx context.Context, kind models.EntryKind) ([]models.FinanceEntry, error)
	FindByOrder(ctx context.Context, orderID uint) ([]models.FinanceEntry, error)
	FindForTotals(ctx context.Context, from, to *time.Time, kind models.EntryKind) ([]models.FinanceEntry, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, entry *models.FinanceEntry) error
}

type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) IFinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) Create(ctx context.Context, entry *models.FinanceEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *FinanceRepository) FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error) {
	var entry models.FinanceEntry
	err := r.db.WithContext(ctx).Preload("Order").First(&entry, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *FinanceRepository) FindAll(ctx context.Context) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).Order("entry_date DESC").Find(&entries).Error
	return entries, err
}

func (r *FinanceRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).
		Where("entry_date BETWEEN ? AND ?", from, to).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *FinanceRepository) FindByKind(ctx context.Context, kind models.EntryKind) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *FinanceRepository) FindByOrder(ctx context.Context, orderID uint) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

// FindForTotals fetches entries for in-memory aggregation; period and kind
// filters are both optional.
func (r *FinanceRepository) FindForTotals(ctx context.Context, from, to *time.Time, kind models.EntryKind) ([]models.FinanceEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.FinanceEntry{})
	if from != nil && to != nil {
		query = query.Where("entry_date BETWEEN ? AND ?", *from, *to)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var entries []models.FinanceEntry
	err := query.Find(&entries).Error
	return entries, err
}

func (r *FinanceRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.FinanceEntry{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *FinanceRepository) Delete(ctx context.Context, entry *models.FinanceEntry) error {
	return r.db.WithContext(ctx).Delete(entry).Error
}

var _ IFinanceRepository = (*FinanceRepository)(nil)
