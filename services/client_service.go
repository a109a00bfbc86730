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
	ErrClientNameRequired   = apperrors.NewValidation("client name is required")
	ErrClientDocumentTaken  = apperrors.NewValidation("a client with this document already exists")
	ErrClientBadKind        = apperrors.NewValidation("invalid client kind")
	ErrClientDocumentNeeded = apperrors.NewValidation("client document is required")
)

// CreateClientInput carries the writable fields of a new client.
type CreateClientInput struct {
	Name     string            `json:"name"`
	Kind     models.ClientKind `json:"kind"`
	Document string            `json:"document"`
	Phone    string            `json:"phone"`
	Email    string            `json:"email"`
	Address  string            `json:"address"`
	City     string            `json:"city"`
	State    string            `json:"state"`
	ZipCode  string            `json:"zip_code"`
}

// UpdateClientInput updates any subset of fields; nil pointers are skipped.
type UpdateClientInput struct {
	Name     *string            `json:"name"`
	Kind     *models.ClientKind `json:"kind"`
	Document *string            `json:"document"`
	Phone    *string            `json:"phone"`
	Email    *string            `json:"email"`
	Address  *string            `json:"address"`
	City     *string            `json:"city"`
	State    *string            `json:"state"`
	ZipCode  *string            `json:"zip_code"`
}

type IClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*models.Client, error)
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByDocument(ctx context.Context, document string) (*models.Client, error)
	FindAll(ctx context.Context) ([]models.Client, error)
	SearchByName(ctx context.Context, name string) ([]models.Client, error)
	Update(ctx context.Context, id uint, input UpdateClientInput) (*models.Client, error)
	Delete(ctx context.Context, id uint) error
}

type ClientService struct {
	repo repositories.IClientRepository
	bus  *events.Bus
}

func NewClientService(db *gorm.DB, bus *events.Bus) *ClientService {
	return &ClientService{repo: repositories.NewClientRepository(db), bus: bus}
}

// Create enforces the unique-document rule before writing.
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	if input.Name == "" {
		return nil, ErrClientNameRequired
	}
	if input.Document == "" {
		return nil, ErrClientDocumentNeeded
	}
	kind := input.Kind
	if kind == "" {
		kind = models.ClientIndividual
	}
	if !models.ValidClientKind(kind) {
		return nil, ErrClientBadKind
	}

	if _, err := s.repo.FindByDocument(ctx, input.Document); err == nil {
		return nil, ErrClientDocumentTaken
	} else if err != repositories.ErrNotFound {
		return nil, apperrors.Internal("client: check document", err)
	}

	client := models.Client{
		Name:     input.Name,
		Kind:     kind,
		Document: input.Document,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		City:     input.City,
		State:    input.State,
		ZipCode:  input.ZipCode,
	}
	if err := s.repo.Create(ctx, &client); err != nil {
		configslog.Log.Error("ClientService.Create failed", zap.Error(err))
		return nil, apperrors.Internal("client: create", err)
	}

	s.publish(events.EventClientCreated, &client)
	configslog.SLog.Infof("Client %d created (%s)", client.ID, client.Name)
	return &client, nil
}

func (s *ClientService) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("client", id)
		}
		return nil, apperrors.Internal("client: find", err)
	}
	return client, nil
}

func (s *ClientService) FindByDocument(ctx context.Context, document string) (*models.Client, error) {
	client, err := s.repo.FindByDocument(ctx, document)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("client", 0)
		}
		return nil, apperrors.Internal("client: find by document", err)
	}
	return client, nil
}

func (s *ClientService) FindAll(ctx context.Context) ([]models.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	return clients, apperrors.Internal("client: list", err)
}

func (s *ClientService) SearchByName(ctx context.Context, name string) ([]models.Client, error) {
	clients, err := s.repo.SearchByName(ctx, name)
	return clients, apperrors.Internal("client: search", err)
}

// Update applies a partial update. A changed document is re-checked for
// uniqueness against other clients.
func (s *ClientService) Update(ctx context.Context, id uint, input UpdateClientInput) (*models.Client, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if input.Kind != nil && !models.ValidClientKind(*input.Kind) {
		return nil, ErrClientBadKind
	}
	if input.Document != nil {
		other, err := s.repo.FindByDocument(ctx, *input.Document)
		if err == nil && other.ID != id {
			return nil, ErrClientDocumentTaken
		}
		if err != nil && err != repositories.ErrNotFound {
			return nil, apperrors.Internal("client: check document", err)
		}
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Kind != nil {
		fields["kind"] = *input.Kind
	}
	if input.Document != nil {
		fields["document"] = *input.Document
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.City != nil {
		fields["city"] = *input.City
	}
	if input.State != nil {
		fields["state"] = *input.State
	}
	if input.ZipCode != nil {
		fields["zip_code"] = *input.ZipCode
	}

	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			configslog.Log.Error("ClientService.Update failed", zap.Uint("id", id), zap.Error(err))
			return nil, apperrors.Internal("client: update", err)
		}
	}

	updated, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(events.EventClientUpdated, updated)
	return updated, nil
}

// Delete removes the client and, through the association, its vehicles.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	client, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, client); err != nil {
		configslog.Log.Error("ClientService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("client: delete", err)
	}
	_ = s.bus.PublishJSON(events.EventClientDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventClientDeleted)
	return nil
}

func (s *ClientService) publish(eventType string, client *models.Client) {
	if err := s.bus.PublishJSON(eventType, client); err != nil {
		configslog.Log.Warn("Client event publish failed", zap.String("event", eventType), zap.Error(err))
		return
	}
	metrics.IncEvent(eventType)
}

var _ IClientService = (*ClientService)(nil)
