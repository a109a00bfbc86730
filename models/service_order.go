package models

import "time"

// OrderStatus tracks a service order through the shop.
type OrderStatus string

const (
	OrderOpen       OrderStatus = "open"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderInvoiced   OrderStatus = "invoiced"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderOpen, OrderInProgress, OrderCompleted, OrderInvoiced, OrderCancelled:
		return true
	}
	return false
}

// IsClosing reports whether s stamps the order's closing time.
func (s OrderStatus) IsClosing() bool {
	return s == OrderCompleted || s == OrderInvoiced || s == OrderCancelled
}

// ServiceOrder is a unit of work on a vehicle. TotalAmount is kept in sync
// with the order's items.
type ServiceOrder struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	ClientID    uint        `gorm:"index;not null" json:"client_id"`
	VehicleID   uint        `gorm:"index;not null" json:"vehicle_id"`
	EmployeeID  *uint       `gorm:"index" json:"employee_id,omitempty"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`
	Notes       string      `gorm:"type:text" json:"notes,omitempty"`
	TotalAmount float64     `gorm:"type:numeric(10,2);default:0" json:"total_amount"`

	OpenedAt time.Time  `gorm:"autoCreateTime" json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`

	Client   *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Vehicle  *Vehicle    `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Employee *Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}
