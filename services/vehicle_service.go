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
	ErrVehicleClientRequired = apperrors.NewValidation("vehicle must belong to a client")
	ErrVehiclePlateRequired  = apperrors.NewValidation("vehicle plate is required")
)

type CreateVehicleInput struct {
	ClientID uint   `json:"client_id"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Plate    string `json:"plate"`
	Chassis  string `json:"chassis"`
	Color    string `json:"color"`
	Engine   string `json:"engine"`
	Mileage  int    `json:"mileage"`
	Notes    string `json:"notes"`
}

type UpdateVehicleInput struct {
	ClientID *uint   `json:"client_id"`
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	Year     *int    `json:"year"`
	Plate    *string `json:"plate"`
	Chassis  *string `json:"chassis"`
	Color    *string `json:"color"`
	Engine   *string `json:"engine"`
	Mileage  *int    `json:"mileage"`
	Notes    *string `json:"notes"`
}

type IVehicleService interface {
	Create(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error)
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	FindAll(ctx context.Context) ([]models.Vehicle, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Vehicle, error)
	Update(ctx context.Context, id uint, input UpdateVehicleInput) (*models.Vehicle, error)
	Delete(ctx context.Context, id uint) error
}

type VehicleService struct {
	repo    repositories.IVehicleRepository
	clients repositories.IClientRepository
	bus     *events.Bus
}

func NewVehicleService(db *gorm.DB, bus *events.Bus) *VehicleService {
	return &VehicleService{
		repo:    repositories.NewVehicleRepository(db),
		clients: repositories.NewClientRepository(db),
		bus:     bus,
	}
}

func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error) {
	if input.ClientID == 0 {
		return nil, ErrVehicleClientRequired
	}
	if input.Plate == "" {
		return nil, ErrVehiclePlateRequired
	}
	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("client", input.ClientID)
		}
		return nil, apperrors.Internal("vehicle: check client", err)
	}

	vehicle := models.Vehicle{
		ClientID: input.ClientID,
		Brand:    input.Brand,
		Model:    input.Model,
		Year:     input.Year,
		Plate:    input.Plate,
		Chassis:  input.Chassis,
		Color:    input.Color,
		Engine:   input.Engine,
		Mileage:  input.Mileage,
		Notes:    input.Notes,
	}
	if err := s.repo.Create(ctx, &vehicle); err != nil {
		configslog.Log.Error("VehicleService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("vehicle: create", err)
	}

	s.publish(events.EventVehicleCreated, &vehicle)
	return &vehicle, nil
}

func (s *VehicleService) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("vehicle", id)
		}
		return nil, apperrors.Internal("vehicle: find", err)
	}
	return vehicle, nil
}

func (s *VehicleService) FindByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	vehicle, err := s.repo.FindByPlate(ctx, plate)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("vehicle", 0)
		}
		return nil, apperrors.Internal("vehicle: find by plate", err)
	}
	return vehicle, nil
}

func (s *VehicleService) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.repo.FindAll(ctx)
	return vehicles, apperrors.Internal("vehicle: list", err)
}

func (s *VehicleService) FindByClient(ctx context.Context, clientID uint) ([]models.Vehicle, error) {
	vehicles, err := s.repo.FindByClient(ctx, clientID)
	return vehicles, apperrors.Internal("vehicle: list by client", err)
}

func (s *VehicleService) Update(ctx context.Context, id uint, input UpdateVehicleInput) (*models.Vehicle, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if input.ClientID != nil {
		if *input.ClientID == 0 {
			return nil, ErrVehicleClientRequired
		}
		if _, err := s.clients.FindByID(ctx, *input.ClientID); err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperrors.NewNotFound("client", *input.ClientID)
			}
			return nil, apperrors.Internal("vehicle: check client", err)
		}
	}

	fields := map[string]any{}
	if input.ClientID != nil {
		fields["client_id"] = *input.ClientID
	}
	if input.Brand != nil {
		fields["brand"] = *input.Brand
	}
	if input.Model != nil {
		fields["model"] = *input.Model
	}
	if input.Year != nil {
		fields["year"] = *input.Year
	}
	if input.Plate != nil {
		fields["plate"] = *input.Plate
	}
	if input.Chassis != nil {
		fields["chassis"] = *input.Chassis
	}
	if input.Color != nil {
		fields["color"] = *input.Color
	}
	if input.Engine != nil {
		fields["engine"] = *input.Engine
	}
	if input.Mileage != nil {
		fields["mileage"] = *input.Mileage
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("VehicleService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("vehicle: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventVehicleUpdated, updated)
	return updated, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uint) error {
	vehicle, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, vehicle); err != nil {
		configslog.Log.Error("VehicleService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("vehicle: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventVehicleDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventVehicleDeleted)
	return nil
}

func (s *VehicleService) publish(eventType string, vehicle *models.Vehicle) {
	if err := s.bus.PublishJSON(eventType, vehicle); err != nil {
		configslog.Log.Warn("Vehicle event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IVehicleService = (*VehicleService)(nil)
