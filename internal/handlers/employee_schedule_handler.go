package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

// EmployeeScheduleHandler manages the per-employee override of the
// clinic hours. Days without an override row fall back to the clinic
// schedule during resolution.
type EmployeeScheduleHandler struct {
	db *gorm.DB
}

func NewEmployeeScheduleHandler(db *gorm.DB) *EmployeeScheduleHandler {
	return &EmployeeScheduleHandler{db: db}
}

type EmployeeScheduleUpdateRequest struct {
	Days []DayConfig `json:"days" binding:"required"`
}

func (h *EmployeeScheduleHandler) employeeInClinic(c *gin.Context) (uint, bool) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_employee_id", "Employee ID must be numeric.")
		return 0, false
	}

	var emp models.Employee
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&emp).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found in this clinic.")
		return 0, false
	}

	return emp.ID, true
}

func (h *EmployeeScheduleHandler) Get(c *gin.Context) {
	employeeID, ok := h.employeeInClinic(c)
	if !ok {
		return
	}

	var rows []models.EmployeeSchedule
	if err := h.db.
		Where("employee_id = ?", employeeID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Could not load the employee schedule.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *EmployeeScheduleHandler) Update(c *gin.Context) {
	employeeID, ok := h.employeeInClinic(c)
	if !ok {
		return
	}

	var req EmployeeScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule payload.")
		return
	}

	for _, d := range req.Days {
		if err := d.daySchedule().Validate(); err != nil {
			httperr.BadRequest(c, err.Error(), "Invalid schedule for weekday.")
			return
		}
	}

	var toCreate []models.EmployeeSchedule
	for _, d := range req.Days {
		toCreate = append(toCreate, models.EmployeeSchedule{
			EmployeeID: employeeID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeSchedule{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Could not save the employee schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
