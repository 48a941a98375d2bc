package models

import "time"

// ClinicHours is one operating-hours row per weekday per clinic.
// Times use the "15:04" wall-clock format in the clinic's timezone.
type ClinicHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `gorm:"index:idx_clinic_hours_day" json:"clinic_id"`

	Weekday int `gorm:"index:idx_clinic_hours_day" json:"weekday"`

	Active     bool   `json:"active"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
