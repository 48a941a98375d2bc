package models

import "time"

// Employee mirrors the identity provider's user record. Authentication
// happens outside this service; we only key attendance data by the IDs
// carried in the bearer token.
type Employee struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClinicID uint   `gorm:"index" json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	BranchID uint `json:"branch_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:20;default:'staff'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
