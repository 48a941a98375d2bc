package models

import "time"

// EmployeeSchedule is a per-employee override of the clinic hours for one
// weekday. When a row exists for a weekday it replaces the clinic row
// entirely for that employee.
type EmployeeSchedule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"index:idx_employee_schedule_day" json:"employee_id"`

	Weekday int `gorm:"index:idx_employee_schedule_day" json:"weekday"`

	Active     bool   `json:"active"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
