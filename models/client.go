package models

import "time"

// ClientKind distinguishes individuals from companies.
type ClientKind string

const (
	ClientIndividual ClientKind = "individual"
	ClientCompany    ClientKind = "company"
)

// ValidClientKind reports whether k is a known client kind.
func ValidClientKind(k ClientKind) bool {
	return k == ClientIndividual || k == ClientCompany
}

// Client is a customer of the shop. Document holds the tax id (CPF/CNPJ)
// and is unique across clients.
type Client struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"type:varchar(100);not null" json:"name"`
	Kind     ClientKind `gorm:"type:varchar(10);default:'individual'" json:"kind"`
	Document string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"document"`
	Phone    string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email    string     `gorm:"type:varchar(100)" json:"email,omitempty"`
	Address  string     `gorm:"type:varchar(200)" json:"address,omitempty"`
	City     string     `gorm:"type:varchar(100)" json:"city,omitempty"`
	State    string     `gorm:"type:varchar(2)" json:"state,omitempty"`
	ZipCode  string     `gorm:"type:varchar(10)" json:"zip_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Vehicles []Vehicle `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"vehicles,omitempty"`
}
