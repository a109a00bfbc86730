package repositories

import (
	"context"

	"oficina.app/configs/configslog"
	"oficina.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IClientRepository handles client persistence.
type IClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByDocument(ctx context.Context, document string) (*models.Client, error)
	FindAll(ctx context.Context) ([]models.Client, error)
	SearchByName(ctx context.Context, name string) ([]models.Client, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, client *models.Client) error
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) IClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Preload("Vehicles").First(&client, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			configslog.Log.Error("ClientRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translate(err)
	}
	return &client, nil
}

func (r *ClientRepository) FindByDocument(ctx context.Context, document string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("document = ?", document).First(&client).Error
	if err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) SearchByName(ctx context.Context, name string) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ClientRepository) Delete(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Select("Vehicles").Delete(client).Error
}

var _ IClientRepository = (*ClientRepository)(nil)
