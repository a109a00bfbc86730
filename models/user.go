package models

import "time"

// User is a back-office account, optionally linked to an employee and a
// role. PasswordHash is never serialized.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	EmployeeID   *uint  `gorm:"index" json:"employee_id,omitempty"`
	RoleID       *uint  `gorm:"index" json:"role_id,omitempty"`
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Active       bool   `gorm:"default:true" json:"active"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Role     *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// UserStats is the accounts projection.
type UserStats struct {
	Total          int64 `json:"total"`
	Active         int64 `json:"active"`
	Inactive       int64 `json:"inactive"`
	LinkedEmployee int64 `json:"linked_to_employee"`
}
