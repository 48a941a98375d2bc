package dto

import "time"

type AttendanceListDTO struct {
	ID           uint       `json:"id"`
	EmployeeID   uint       `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	WorkDate     string     `json:"work_date"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	LateMinutes       int `json:"late_minutes"`
	EarlyLeaveMinutes int `json:"early_leave_minutes"`
	OvertimeMinutes   int `json:"overtime_minutes"`
	TotalWorkMinutes  int `json:"total_work_minutes"`

	Status           string `json:"status"`
	IsManuallyEdited bool   `json:"is_manually_edited"`
}
