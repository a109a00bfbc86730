package models

import "time"

// Part is a stocked inventory item. InternalCode is the shop's own
// reference and is unique when set.
type Part struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	InternalCode string  `gorm:"type:varchar(50);uniqueIndex" json:"internal_code,omitempty"`
	SupplierCode string  `gorm:"type:varchar(50)" json:"supplier_code,omitempty"`
	Quantity     int     `gorm:"default:0" json:"quantity"`
	CostPrice    float64 `gorm:"type:numeric(10,2);default:0" json:"cost_price"`
	SalePrice    float64 `gorm:"type:numeric(10,2);default:0" json:"sale_price"`
	MinStock     int     `gorm:"default:0" json:"min_stock"`
	SupplierID   *uint   `gorm:"index" json:"supplier_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock reports whether the part is at or below its minimum.
func (p *Part) LowStock() bool {
	return p.Quantity <= p.MinStock
}

// Profit is the absolute margin per unit.
func (p *Part) Profit() float64 {
	return p.SalePrice - p.CostPrice
}

// ProfitMargin is the percentage margin over cost. Zero cost yields zero.
func (p *Part) ProfitMargin() float64 {
	if p.CostPrice == 0 {
		return 0
	}
	return (p.SalePrice - p.CostPrice) / p.CostPrice * 100
}

// StockValue is the cost of the quantity on hand.
func (p *Part) StockValue() float64 {
	return float64(p.Quantity) * p.CostPrice
}

// StockAlert is a compact low-stock warning used in inventory stats.
type StockAlert struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	MinStock int    `json:"min_stock"`
}

// PartStats is the inventory projection recomputed on demand.
type PartStats struct {
	Total      int64        `json:"total"`
	LowStock   int64        `json:"low_stock"`
	ZeroStock  int64        `json:"zero_stock"`
	StockValue float64      `json:"stock_value"`
	Alerts     []StockAlert `json:"alerts"`
}
