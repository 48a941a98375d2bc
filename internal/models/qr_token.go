package models

import "time"

// QRToken is one immutable validity window of the clock-in QR code for a
// (clinic, branch) scope. Rotation never mutates a row: a new row is
// created and any still-open window is closed, so superseded tokens stay
// behind for audit. BranchID 0 means the token covers the whole clinic.
type QRToken struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `gorm:"uniqueIndex:idx_token_cycle" json:"clinic_id"`
	BranchID uint `gorm:"uniqueIndex:idx_token_cycle" json:"branch_id"`

	// CycleStart identifies the refresh cycle the token belongs to; the
	// unique index serializes concurrent issuance for the same cycle.
	CycleStart time.Time `gorm:"uniqueIndex:idx_token_cycle" json:"cycle_start"`

	Secret string `gorm:"size:64;uniqueIndex;not null" json:"secret"`

	RefreshPeriod string    `gorm:"size:10;not null" json:"refresh_period"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`

	CenterLat    *float64 `json:"center_lat"`
	CenterLon    *float64 `json:"center_lon"`
	RadiusMeters *float64 `json:"radius_meters"`

	CreatedAt time.Time `json:"created_at"`
}
