package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"oficina.app/configs/configslog"
	"oficina.app/pkg/apperrors"
	"oficina.app/pkg/exports"
	"oficina.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportFormat selects the report file format.
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

var ErrReportBadFormat = apperrors.NewValidation("invalid export format")

// IReportService runs the management reports and exports them to files.
type IReportService interface {
	Orders(ctx context.Context, filter repositories.ReportFilter) ([]repositories.OrderReportRow, error)
	Revenue(ctx context.Context, filter repositories.ReportFilter) (*repositories.RevenueReport, error)
	Productivity(ctx context.Context, filter repositories.ReportFilter) ([]repositories.ProductivityRow, error)
	ExportOrders(ctx context.Context, filter repositories.ReportFilter, format ExportFormat) (string, error)
	ExportProductivity(ctx context.Context, filter repositories.ReportFilter, format ExportFormat) (string, error)
}

type ReportService struct {
	repo      repositories.IReportRepository
	exportDir string
	now       func() time.Time
}

func NewReportService(db *gorm.DB, exportDir string) *ReportService {
	return &ReportService{
		repo:      repositories.NewReportRepository(db),
		exportDir: exportDir,
		now:       time.Now,
	}
}

func (s *ReportService) Orders(ctx context.Context, filter repositories.ReportFilter) ([]repositories.OrderReportRow, error) {
	rows, err := s.repo.Orders(ctx, filter)
	return rows, apperrors.Internal("report: orders", err)
}

func (s *ReportService) Revenue(ctx context.Context, filter repositories.ReportFilter) (*repositories.RevenueReport, error) {
	report, err := s.repo.Revenue(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("report: revenue", err)
	}
	return report, nil
}

func (s *ReportService) Productivity(ctx context.Context, filter repositories.ReportFilter) ([]repositories.ProductivityRow, error) {
	rows, err := s.repo.Productivity(ctx, filter)
	return rows, apperrors.Internal("report: productivity", err)
}

// ExportOrders writes the order report to a timestamped file under the
// export directory and returns its path.
func (s *ReportService) ExportOrders(ctx context.Context, filter repositories.ReportFilter, format ExportFormat) (string, error) {
	rows, err := s.Orders(ctx, filter)
	if err != nil {
		return "", err
	}

	headers := []string{"Order", "Client", "Employee", "Plate", "Status", "Total", "Opened", "Closed"}
	path := s.exportPath("orders", format)

	switch format {
	case ExportXLSX:
		data := make([][]any, 0, len(rows))
		for _, r := range rows {
			data = append(data, []any{
				r.OrderID, r.Client, strValue(r.Employee), r.Plate, r.Status,
				r.TotalAmount, r.OpenedAt.Format(time.RFC3339), timeValue(r.ClosedAt),
			})
		}
		err = exports.WriteXLSX(path, "Orders", headers, data)
	case ExportCSV:
		data := make([][]string, 0, len(rows))
		for _, r := range rows {
			data = append(data, []string{
				strconv.FormatUint(uint64(r.OrderID), 10), r.Client, strValue(r.Employee),
				r.Plate, r.Status, fmt.Sprintf("%.2f", r.TotalAmount),
				r.OpenedAt.Format(time.RFC3339), timeValue(r.ClosedAt),
			})
		}
		err = exports.WriteCSV(path, headers, data)
	default:
		return "", ErrReportBadFormat
	}
	if err != nil {
		configslog.Log.Error("ReportService.ExportOrders failed", zap.String("path", path), zap.Error(err))
		return "", apperrors.Internal("report: export orders", err)
	}

	configslog.SLog.Infof("Order report exported to %s (%d rows)", path, len(rows))
	return path, nil
}

// ExportProductivity writes the per-employee productivity report.
func (s *ReportService) ExportProductivity(ctx context.Context, filter repositories.ReportFilter, format ExportFormat) (string, error) {
	rows, err := s.Productivity(ctx, filter)
	if err != nil {
		return "", err
	}

	headers := []string{"Employee", "Orders", "Total"}
	path := s.exportPath("productivity", format)

	switch format {
	case ExportXLSX:
		data := make([][]any, 0, len(rows))
		for _, r := range rows {
			data = append(data, []any{r.Employee, r.TotalOrders, r.TotalAmount})
		}
		err = exports.WriteXLSX(path, "Productivity", headers, data)
	case ExportCSV:
		data := make([][]string, 0, len(rows))
		for _, r := range rows {
			data = append(data, []string{
				r.Employee,
				strconv.FormatInt(r.TotalOrders, 10),
				fmt.Sprintf("%.2f", r.TotalAmount),
			})
		}
		err = exports.WriteCSV(path, headers, data)
	default:
		return "", ErrReportBadFormat
	}
	if err != nil {
		configslog.Log.Error("ReportService.ExportProductivity failed", zap.String("path", path), zap.Error(err))
		return "", apperrors.Internal("report: export productivity", err)
	}

	configslog.SLog.Infof("Productivity report exported to %s (%d rows)", path, len(rows))
	return path, nil
}

func (s *ReportService) exportPath(name string, format ExportFormat) string {
	stamp := s.now().Format("20060102-150405")
	return filepath.Join(s.exportDir, fmt.Sprintf("%s-%s.%s", name, stamp, format))
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var _ IReportService = (*ReportService)(nil)
