package models

import "time"

// ItemKind separates labor from parts on an order.
type ItemKind string

const (
	ItemService ItemKind = "service"
	ItemPart    ItemKind = "part"
)

// ValidItemKind reports whether k is a known item kind.
func ValidItemKind(k ItemKind) bool {
	return k == ItemService || k == ItemPart
}

// OrderItem is a single service or part line on a service order.
type OrderItem struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	OrderID     uint     `gorm:"index;not null" json:"order_id"`
	Description string   `gorm:"type:varchar(200)" json:"description"`
	Quantity    float64  `gorm:"type:numeric(10,2);default:1" json:"quantity"`
	UnitPrice   float64  `gorm:"type:numeric(10,2);default:0" json:"unit_price"`
	Kind        ItemKind `gorm:"type:varchar(10);default:'service'" json:"kind"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order *ServiceOrder `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order,omitempty"`
}

// Total is the line total.
func (i *OrderItem) Total() float64 {
	return i.Quantity * i.UnitPrice
}
