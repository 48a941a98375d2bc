package models

import "time"

type Clinic struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:50" json:"timezone"`

	// Scan policy. When RequireLocation is set, a scan without a reported
	// coordinate is rejected instead of skipping the geofence check.
	RequireLocation bool `gorm:"default:false" json:"require_location"`

	// QR rotation policy used by lazy auto-issuance.
	AutoRotateToken bool   `gorm:"default:true" json:"auto_rotate_token"`
	RefreshPeriod   string `gorm:"size:10;default:'daily'" json:"refresh_period"`
	WeekStart       int    `gorm:"default:1" json:"week_start"`

	// Default geofence applied to auto-issued tokens.
	CenterLat    *float64 `json:"center_lat"`
	CenterLon    *float64 `json:"center_lon"`
	RadiusMeters *float64 `json:"radius_meters"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
