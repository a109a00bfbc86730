package repositories

import (
	"context"
	"time"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IUploadRepository handles upload record persistence.
type IUploadRepository interface {
	Create(ctx context.Context, upload *models.Upload) error
	FindByID(ctx context.Context, id uint) (*models.Upload, error)
	FindAll(ctx context.Context) ([]models.Upload, error)
	FindByOrder(ctx context.Context, orderID uint) ([]models.Upload, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Upload, error)
	FindByFileType(ctx context.Context, fileType string) ([]models.Upload, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]models.Upload, error)
	FindRecent(ctx context.Context, limit int) ([]models.Upload, error)
	SearchByFileName(ctx context.Context, name string) ([]models.Upload, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, upload *models.Upload) error
}

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) IUploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) preload(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Order").Preload("Client")
}

func (r *UploadRepository) Create(ctx context.Context, upload *models.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

func (r *UploadRepository) FindByID(ctx context.Context, id uint) (*models.Upload, error) {
	var upload models.Upload
	err := r.preload(ctx).First(&upload, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &upload, nil
}

func (r *UploadRepository) FindAll(ctx context.Context) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).Order("uploaded_at DESC").Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) FindByOrder(ctx context.Context, orderID uint) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).
		Where("order_id = ?", orderID).
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) FindByClient(ctx context.Context, clientID uint) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).
		Where("client_id = ?", clientID).
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) FindByFileType(ctx context.Context, fileType string) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).
		Where("file_type = ?", fileType).
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) FindByPeriod(ctx context.Context, from, to time.Time) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).
		Where("uploaded_at BETWEEN ? AND ?", from, to).
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) FindRecent(ctx context.Context, limit int) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) SearchByFileName(ctx context.Context, name string) ([]models.Upload, error) {
	var uploads []models.Upload
	err := r.preload(ctx).
		Where("file_url LIKE ?", "%"+name+"%").
		Order("uploaded_at DESC").
		Find(&uploads).Error
	return uploads, err
}

func (r *UploadRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Upload{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *UploadRepository) Delete(ctx context.Context, upload *models.Upload) error {
	return r.db.WithContext(ctx).Delete(upload).Error
}

var _ IUploadRepository = (*UploadRepository)(nil)
