package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cliniqa/clinic-attendance/internal/middleware"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	employeeIDVal, exists := c.Get(middleware.ContextEmployeeID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "employee_not_in_context"})
		return
	}

	employeeID, ok := employeeIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_employee_id_type"})
		return
	}

	var emp models.Employee
	if err := h.db.Preload("Clinic").First(&emp, employeeID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "employee_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee": gin.H{
			"id":        emp.ID,
			"name":      emp.Name,
			"email":     emp.Email,
			"phone":     emp.Phone,
			"role":      emp.Role,
			"clinic_id": emp.ClinicID,
			"branch_id": emp.BranchID,
		},
		"clinic": gin.H{
			"id":       emp.Clinic.ID,
			"name":     emp.Clinic.Name,
			"slug":     emp.Clinic.Slug,
			"timezone": emp.Clinic.Timezone,
		},
	})
}
