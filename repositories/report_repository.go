package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// OrderReportRow is one line of the service order report.
type OrderReportRow struct {
	OrderID     uint       `json:"order_id"`
	Client      string     `json:"client"`
	Employee    *string    `json:"employee,omitempty"`
	Plate       string     `json:"plate"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	OpenedAt    time.Time  `json:"opened_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// RevenueReport is the aggregated billing summary.
type RevenueReport struct {
	TotalBilled float64 `json:"total_billed"`
	TotalOrders int64   `json:"total_orders"`
}

// ProductivityRow aggregates closed work per employee.
type ProductivityRow struct {
	Employee    string  `json:"employee"`
	TotalOrders int64   `json:"total_orders"`
	TotalAmount float64 `json:"total_amount"`
}

// ReportFilter narrows report queries; every field is optional.
type ReportFilter struct {
	From       *time.Time
	To         *time.Time
	Status     string
	ClientID   uint
	EmployeeID uint
}

// IReportRepository runs the raw report projections.
type IReportRepository interface {
	Orders(ctx context.Context, filter ReportFilter) ([]OrderReportRow, error)
	Revenue(ctx context.Context, filter ReportFilter) (*RevenueReport, error)
	Productivity(ctx context.Context, filter ReportFilter) ([]ProductivityRow, error)
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) IReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Orders(ctx context.Context, filter ReportFilter) ([]OrderReportRow, error) {
	query := r.db.WithContext(ctx).
		Table("service_orders AS os").
		Select(`os.id AS order_id, c.name AS client, e.name AS employee, v.plate AS plate,
			os.status, os.total_amount, os.opened_at, os.closed_at`).
		Joins("LEFT JOIN clients c ON c.id = os.client_id").
		Joins("LEFT JOIN employees e ON e.id = os.employee_id").
		Joins("LEFT JOIN vehicles v ON v.id = os.vehicle_id")

	if filter.From != nil {
		query = query.Where("os.opened_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("os.closed_at <= ?", *filter.To)
	}
	if filter.Status != "" {
		query = query.Where("os.status = ?", filter.Status)
	}
	if filter.ClientID != 0 {
		query = query.Where("os.client_id = ?", filter.ClientID)
	}
	if filter.EmployeeID != 0 {
		query = query.Where("os.employee_id = ?", filter.EmployeeID)
	}

	var rows []OrderReportRow
	err := query.Order("os.opened_at DESC").Scan(&rows).Error
	return rows, err
}

// Revenue sums completed and invoiced orders.
func (r *ReportRepository) Revenue(ctx context.Context, filter ReportFilter) (*RevenueReport, error) {
	query := r.db.WithContext(ctx).
		Table("service_orders AS os").
		Select("COALESCE(SUM(os.total_amount), 0) AS total_billed, COUNT(os.id) AS total_orders").
		Where("os.status IN ?", []string{"completed", "invoiced"})

	if filter.From != nil {
		query = query.Where("os.opened_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("os.closed_at <= ?", *filter.To)
	}

	var report RevenueReport
	err := query.Scan(&report).Error
	return &report, err
}

func (r *ReportRepository) Productivity(ctx context.Context, filter ReportFilter) ([]ProductivityRow, error) {
	query := r.db.WithContext(ctx).
		Table("service_orders AS os").
		Select("e.name AS employee, COUNT(os.id) AS total_orders, COALESCE(SUM(os.total_amount), 0) AS total_amount").
		Joins("JOIN employees e ON e.id = os.employee_id").
		Where("os.status IN ?", []string{"completed", "invoiced"}).
		Group("e.id, e.name")

	if filter.From != nil {
		query = query.Where("os.opened_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("os.closed_at <= ?", *filter.To)
	}

	var rows []ProductivityRow
	err := query.Order("total_orders DESC").Scan(&rows).Error
	return rows, err
}

var _ IReportRepository = (*ReportRepository)(nil)
