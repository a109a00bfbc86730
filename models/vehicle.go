package models

import "time"

// Vehicle belongs to a client and is the subject of appointments and
// service orders.
type Vehicle struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Brand    string `gorm:"type:varchar(50);not null" json:"brand"`
	Model    string `gorm:"type:varchar(50);not null" json:"model"`
	Year     int    `gorm:"not null" json:"year"`
	Plate    string `gorm:"type:varchar(10);index;not null" json:"plate"`
	Chassis  string `gorm:"type:varchar(30)" json:"chassis,omitempty"`
	Color    string `gorm:"type:varchar(30)" json:"color,omitempty"`
	Engine   string `gorm:"type:varchar(50)" json:"engine,omitempty"`
	Mileage  int    `json:"mileage,omitempty"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Client *Client `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
}
