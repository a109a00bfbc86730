package models

import "time"

// AppointmentStatus is a plain enumeration; transitions are not guarded,
// any status may be set to any other.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// AppointmentWindow is the length of the slot an appointment occupies,
// measured from ScheduledAt.
const AppointmentWindow = time.Hour

// ValidAppointmentStatus reports whether s is one of the four canonical
// status values.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment schedules a client's vehicle, optionally assigned to an
// employee. Assigned pending/confirmed appointments block the employee's
// one-hour window starting at ScheduledAt.
type Appointment struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ClientID    uint              `gorm:"index;not null" json:"client_id"`
	VehicleID   uint              `gorm:"index;not null" json:"vehicle_id"`
	EmployeeID  *uint             `gorm:"index" json:"employee_id,omitempty"`
	ScheduledAt time.Time         `gorm:"index;not null" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Vehicle  *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// IsPast reports whether the scheduled instant is earlier than now.
func (a *Appointment) IsPast(now time.Time) bool {
	return now.After(a.ScheduledAt)
}

// IsToday reports whether the appointment falls on now's calendar day.
func (a *Appointment) IsToday(now time.Time) bool {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := a.ScheduledAt.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsUpcoming reports whether the appointment is still pending and in the
// future.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return a.Status == AppointmentPending && now.Before(a.ScheduledAt)
}

// AppointmentStats is the read-only projection recomputed after every
// appointment mutation.
type AppointmentStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	TodayCount int64            `json:"today_count"`
	NextToday  []Appointment    `json:"next_today"`
}
