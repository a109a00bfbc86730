package models

import "time"

// EntryKind is the direction of a finance movement.
type EntryKind string

const (
	EntryIncome  EntryKind = "income"
	EntryExpense EntryKind = "expense"
)

// ValidEntryKind reports whether k is a known entry kind.
func ValidEntryKind(k EntryKind) bool {
	return k == EntryIncome || k == EntryExpense
}

// PaymentMethod for income entries.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayPix      PaymentMethod = "pix"
	PayBankSlip PaymentMethod = "bank_slip"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayCard, PayPix, PayBankSlip:
		return true
	}
	return false
}

// FinanceEntry is a cash movement, optionally tied to a service order.
type FinanceEntry struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Kind          EntryKind     `gorm:"type:varchar(10);not null;index" json:"kind"`
	Description   string        `gorm:"type:varchar(200)" json:"description,omitempty"`
	Amount        float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	EntryDate     time.Time     `gorm:"type:date;index;not null" json:"entry_date"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);default:'cash'" json:"payment_method"`
	OrderID       *uint         `gorm:"index" json:"order_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Order *ServiceOrder `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// FinanceTotals aggregates entries by kind over an optional period.
type FinanceTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}
