package repositories

import (
	"context"

	"oficina.app/models"

	"gorm.io/gorm"
)

// IVehicleRepository handles vehicle persistence.
type IVehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
	FindAll(ctx context.Context) ([]models.Vehicle, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	Updates(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, vehicle *models.Vehicle) error
}

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) IVehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Preload("Client").First(&vehicle, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).Preload("Client").Order("id ASC").Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) FindByClient(ctx context.Context, clientID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Preload("Client").Where("plate = ?", plate).First(&vehicle).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) Updates(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Delete(vehicle).Error
}

var _ IVehicleRepository = (*VehicleRepository)(nil)
