package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"oficina.app/configs/configslog"
	"oficina.app/models"
	"oficina.app/pkg/apperrors"
	"oficina.app/pkg/events"
	"oficina.app/pkg/metrics"
	"oficina.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUploadNoTarget = apperrors.NewValidation("upload must reference an order or a client")
	ErrUploadNoFile   = apperrors.NewValidation("upload file is required")
)

type StoreUploadInput struct {
	OrderID  *uint
	ClientID *uint
	FileName string
	FileType string
	Content  io.Reader
}

// IUploadService stores attachment files on disk and records them in the
// database.
type IUploadService interface {
	Store(ctx context.Context, input StoreUploadInput) (*models.Upload, error)
	FindByID(ctx context.Context, id uint) (*models.Upload, error)
	FindAll(ctx context.Context) ([]models.Upload, error)
	FindByOrder(ctx context.Context, orderID uint) ([]models.Upload, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Upload, error)
	FindByFileType(ctx context.Context, fileType string) ([]models.Upload, error)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]models.Upload, error)
	FindRecent(ctx context.Context, limit int) ([]models.Upload, error)
	SearchByFileName(ctx context.Context, name string) ([]models.Upload, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*models.UploadStats, error)
}

type UploadService struct {
	repo    repositories.IUploadRepository
	orders  repositories.IOrderRepository
	clients repositories.IClientRepository
	bus     *events.Bus
	baseDir string
}

func NewUploadService(db *gorm.DB, bus *events.Bus, baseDir string) *UploadService {
	return &UploadService{
		repo:    repositories.NewUploadRepository(db),
		orders:  repositories.NewOrderRepository(db),
		clients: repositories.NewClientRepository(db),
		bus:     bus,
		baseDir: baseDir,
	}
}

// Store writes the file under a random name, keeping the original extension,
// and records its URL. The upload must reference an order or a client.
func (s *UploadService) Store(ctx context.Context, input StoreUploadInput) (*models.Upload, error) {
	hasOrder := input.OrderID != nil && *input.OrderID != 0
	hasClient := input.ClientID != nil && *input.ClientID != 0
	if !hasOrder && !hasClient {
		return nil, ErrUploadNoTarget
	}
	if input.Content == nil || input.FileName == "" {
		return nil, ErrUploadNoFile
	}

	if hasOrder {
		if _, err := s.orders.FindByID(ctx, *input.OrderID); err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperrors.NewNotFound("order", *input.OrderID)
			}
			return nil, apperrors.Internal("upload: check order", err)
		}
	}
	if hasClient {
		if _, err := s.clients.FindByID(ctx, *input.ClientID); err != nil {
			if err == repositories.ErrNotFound {
				return nil, apperrors.NewNotFound("client", *input.ClientID)
			}
			return nil, apperrors.Internal("upload: check client", err)
		}
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, apperrors.Internal("upload: ensure dir", err)
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	name := uuid.NewString() + ext
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, apperrors.Internal("upload: create file", err)
	}
	if _, err := io.Copy(dst, input.Content); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, apperrors.Internal("upload: write file", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, apperrors.Internal("upload: close file", err)
	}

	upload := models.Upload{
		OrderID:  input.OrderID,
		ClientID: input.ClientID,
		FileURL:  "/uploads/" + name,
		FileType: input.FileType,
	}
	if !hasOrder {
		upload.OrderID = nil
	}
	if !hasClient {
		upload.ClientID = nil
	}
	if err := s.repo.Create(ctx, &upload); err != nil {
		os.Remove(path)
		configslog.Log.Error("UploadService.Store failed", zap.Error(err))
		return nil, apperrors.Internal("upload: create", err)
	}

	_ = s.bus.PublishJSON(events.EventUploadCreated, &upload)
	metrics.IncEvent(events.EventUploadCreated)
	s.broadcastStats(ctx)
	configslog.SLog.Infof("Upload %d stored as %s", upload.ID, name)
	return &upload, nil
}

func (s *UploadService) FindByID(ctx context.Context, id uint) (*models.Upload, error) {
	upload, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, apperrors.NewNotFound("upload", id)
		}
		return nil, apperrors.Internal("upload: find", err)
	}
	return upload, nil
}

func (s *UploadService) FindAll(ctx context.Context) ([]models.Upload, error) {
	uploads, err := s.repo.FindAll(ctx)
	return uploads, apperrors.Internal("upload: list", err)
}

func (s *UploadService) FindByOrder(ctx context.Context, orderID uint) ([]models.Upload, error) {
	uploads, err := s.repo.FindByOrder(ctx, orderID)
	return uploads, apperrors.Internal("upload: list by order", err)
}

func (s *UploadService) FindByClient(ctx context.Context, clientID uint) ([]models.Upload, error) {
	uploads, err := s.repo.FindByClient(ctx, clientID)
	return uploads, apperrors.Internal("upload: list by client", err)
}

func (s *UploadService) FindByFileType(ctx context.Context, fileType string) ([]models.Upload, error) {
	uploads, err := s.repo.FindByFileType(ctx, fileType)
	return uploads, apperrors.Internal("upload: list by file type", err)
}

func (s *UploadService) FindByPeriod(ctx context.Context, from, to time.Time) ([]models.Upload, error) {
	uploads, err := s.repo.FindByPeriod(ctx, from, to)
	return uploads, apperrors.Internal("upload: list by period", err)
}

func (s *UploadService) FindRecent(ctx context.Context, limit int) ([]models.Upload, error) {
	if limit <= 0 {
		limit = 10
	}
	uploads, err := s.repo.FindRecent(ctx, limit)
	return uploads, apperrors.Internal("upload: list recent", err)
}

func (s *UploadService) SearchByFileName(ctx context.Context, name string) ([]models.Upload, error) {
	uploads, err := s.repo.SearchByFileName(ctx, name)
	return uploads, apperrors.Internal("upload: search", err)
}

// Delete removes the record and the underlying file. A missing file is not
// an error.
func (s *UploadService) Delete(ctx context.Context, id uint) error {
	upload, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, upload); err != nil {
		configslog.Log.Error("UploadService.Delete failed", zap.Uint("id", id), zap.Error(err))
		return apperrors.Internal("upload: delete", err)
	}

	name := filepath.Base(upload.FileURL)
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
		configslog.Log.Warn("Upload file removal failed", zap.String("file", name), zap.Error(err))
	}

	_ = s.bus.PublishJSON(events.EventUploadDeleted, map[string]any{"id": id})
	metrics.IncEvent(events.EventUploadDeleted)
	s.broadcastStats(ctx)
	return nil
}

// Stats buckets stored files by coarse type.
func (s *UploadService) Stats(ctx context.Context) (*models.UploadStats, error) {
	uploads, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("upload: stats", err)
	}

	stats := models.UploadStats{Total: int64(len(uploads))}
	for i := range uploads {
		switch {
		case uploads[i].IsImage():
			stats.Images++
		case uploads[i].IsDocument():
			stats.Documents++
		case uploads[i].IsVideo():
			stats.Videos++
		default:
			stats.Others++
		}
	}
	return &stats, nil
}

func (s *UploadService) broadcastStats(ctx context.Context) {
	stats, err := s.Stats(ctx)
	if err != nil {
		configslog.Log.Warn("Upload stats recompute failed", zap.Error(err))
		return
	}
	_ = s.bus.PublishJSON(events.EventUploadStats, stats)
	metrics.IncEvent(events.EventUploadStats)
}

var _ IUploadService = (*UploadService)(nil)
