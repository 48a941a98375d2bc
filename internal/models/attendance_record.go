package models

import "time"

// AttendanceRecord is the single row per (employee, clinic, work date).
// Raw check-in/out instants are written by the scan verifier; derived
// minute fields by reconciliation. WorkDate is the local calendar date
// ("2006-01-02") in the clinic's timezone.
type AttendanceRecord struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ClinicID   uint   `gorm:"uniqueIndex:idx_attendance_day" json:"clinic_id"`
	EmployeeID uint   `gorm:"uniqueIndex:idx_attendance_day" json:"employee_id"`
	WorkDate   string `gorm:"size:10;uniqueIndex:idx_attendance_day" json:"work_date"`

	Employee Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BranchID uint `json:"branch_id"`

	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	ScheduledStart string `gorm:"size:5" json:"scheduled_start"`
	ScheduledEnd   string `gorm:"size:5" json:"scheduled_end"`

	LateMinutes       int `gorm:"default:0" json:"late_minutes"`
	EarlyLeaveMinutes int `gorm:"default:0" json:"early_leave_minutes"`
	OvertimeMinutes   int `gorm:"default:0" json:"overtime_minutes"`
	TotalWorkMinutes  int `gorm:"default:0" json:"total_work_minutes"`

	Status string `gorm:"size:20;default:'not_checked_in'" json:"status"`

	// Once set, automatic reconciliation leaves the record alone until an
	// explicit forced re-trigger clears it.
	IsManuallyEdited bool   `gorm:"default:false" json:"is_manually_edited"`
	Notes            string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
