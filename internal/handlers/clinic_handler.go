package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	"github.com/cliniqa/clinic-attendance/internal/models"
	"github.com/cliniqa/clinic-attendance/internal/timezone"
	"github.com/cliniqa/clinic-attendance/internal/validators"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicConfigRequest struct {
	Timezone        *string `json:"timezone"`
	RequireLocation *bool   `json:"require_location"`
	AutoRotateToken *bool   `json:"auto_rotate_token"`
	RefreshPeriod   *string `json:"refresh_period"`
	WeekStart       *int    `json:"week_start"`

	CenterLat    *float64 `json:"center_lat"`
	CenterLon    *float64 `json:"center_lon"`
	RadiusMeters *float64 `json:"radius_meters"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Could not load the clinic.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Could not load the clinic.")
		return
	}

	var req UpdateClinicConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid clinic payload.")
		return
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone.")
			return
		}
		clinic.Timezone = *req.Timezone
	}
	if req.RequireLocation != nil {
		clinic.RequireLocation = *req.RequireLocation
	}
	if req.AutoRotateToken != nil {
		clinic.AutoRotateToken = *req.AutoRotateToken
	}
	if req.RefreshPeriod != nil {
		if *req.RefreshPeriod != "daily" && *req.RefreshPeriod != "weekly" {
			httperr.BadRequest(c, "invalid_refresh_period", "Auto-rotation supports daily or weekly.")
			return
		}
		clinic.RefreshPeriod = *req.RefreshPeriod
	}
	if req.WeekStart != nil {
		if *req.WeekStart < 0 || *req.WeekStart > 6 {
			httperr.BadRequest(c, "invalid_week_start", "week_start must be 0 (Sunday) to 6 (Saturday).")
			return
		}
		clinic.WeekStart = *req.WeekStart
	}

	if req.CenterLat != nil && req.CenterLon != nil {
		if !validators.IsValidLatLon(*req.CenterLat, *req.CenterLon) {
			httperr.BadRequest(c, "invalid_coordinates", "Coordinates out of bounds.")
			return
		}
		clinic.CenterLat = req.CenterLat
		clinic.CenterLon = req.CenterLon
	}
	if req.RadiusMeters != nil {
		if !validators.IsValidRadius(*req.RadiusMeters) {
			httperr.BadRequest(c, "invalid_radius", "Radius must be non-negative.")
			return
		}
		clinic.RadiusMeters = req.RadiusMeters
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Could not save the clinic settings.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}
