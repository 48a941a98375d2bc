package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

type ClinicHoursHandler struct {
	db *gorm.DB
}

func NewClinicHoursHandler(db *gorm.DB) *ClinicHoursHandler {
	return &ClinicHoursHandler{db: db}
}

type DayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type ClinicHoursUpdateRequest struct {
	Days []DayConfig `json:"days" binding:"required"`
}

func (d DayConfig) daySchedule() domain.DaySchedule {
	return domain.DaySchedule{
		Working:    d.Active,
		Start:      d.StartTime,
		End:        d.EndTime,
		BreakStart: d.BreakStart,
		BreakEnd:   d.BreakEnd,
	}
}

func (h *ClinicHoursHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var hours []models.ClinicHours
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_clinic_hours", "Could not load clinic hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *ClinicHoursHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req ClinicHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid hours payload.")
		return
	}

	for _, d := range req.Days {
		if err := d.daySchedule().Validate(); err != nil {
			httperr.BadRequest(c, err.Error(), "Invalid schedule for weekday.")
			return
		}
	}

	var toCreate []models.ClinicHours
	for _, d := range req.Days {
		toCreate = append(toCreate, models.ClinicHours{
			ClinicID:   clinicID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("clinic_id = ?", clinicID).Delete(&models.ClinicHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_clinic_hours", "Could not save clinic hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
