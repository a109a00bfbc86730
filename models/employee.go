package models

import "time"

// Employee is a member of the shop staff. Role is optional; removing a role
// leaves its employees unassigned.
type Employee struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `gorm:"type:varchar(100);not null" json:"name"`
	RoleID *uint   `gorm:"index" json:"role_id,omitempty"`
	Phone  string  `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email  string  `gorm:"type:varchar(100)" json:"email,omitempty"`
	Salary float64 `gorm:"type:numeric(10,2);default:0" json:"salary"`
	Active bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`

	Role *Role `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
}
