package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/httpresp"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	ucAttendance "github.com/cliniqa/clinic-attendance/internal/usecase/attendance"
	"github.com/cliniqa/clinic-attendance/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AttendanceHandler struct {
	verifyScan *ucAttendance.VerifyScan
}

func NewAttendanceHandler(
	verifyScan *ucAttendance.VerifyScan,
) *AttendanceHandler {
	return &AttendanceHandler{
		verifyScan: verifyScan,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScanRequest struct {
	TokenSecret string `json:"token_secret" binding:"required"`

	// RFC3339; empty means the server clock.
	Timestamp string `json:"timestamp"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ======================================================
// SCAN
// ======================================================

func (h *AttendanceHandler) Scan(c *gin.Context) {
	employeeID := c.MustGet(middleware.ContextEmployeeID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid scan payload.")
		return
	}

	in := ucAttendance.VerifyScanInput{
		ClinicID:    clinicID,
		EmployeeID:  employeeID,
		TokenSecret: req.TokenSecret,
	}

	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			httperr.BadRequest(c, "invalid_timestamp", "Timestamp must be RFC3339.")
			return
		}
		in.Timestamp = ts
	}

	if req.Latitude != nil && req.Longitude != nil {
		if !validators.IsValidLatLon(*req.Latitude, *req.Longitude) {
			httperr.BadRequest(c, "invalid_coordinates", "Coordinates out of bounds.")
			return
		}
		in.Location = &domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude}
	}

	result, err := h.verifyScan.Execute(c.Request.Context(), in)

	// a lost compare-and-swap is retried once before surfacing
	if httperr.IsBusiness(err, "concurrent_update") {
		result, err = h.verifyScan.Execute(c.Request.Context(), in)
	}

	if err != nil {
		writeScanError(c, err)
		return
	}

	httpresp.OK(c, result)
}

func writeScanError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "token_not_found"):
		httperr.NotFound(c, "token_not_found", "Unknown QR code. Refresh it and scan again.")
	case httperr.IsBusiness(err, "token_expired"):
		httperr.BadRequest(c, "token_expired", "This QR code has expired. Refresh it and scan again.")
	case httperr.IsBusiness(err, "out_of_range"):
		httperr.Forbidden(c, "out_of_range", "You are outside the clinic area. Move closer and scan again.")
	case httperr.IsBusiness(err, "leave_day"):
		httperr.Conflict(c, "leave_day", "This day is already marked as leave or absence.")
	case httperr.IsBusiness(err, "invalid_sequence"):
		httperr.Conflict(c, "invalid_sequence", "Scan is earlier than your check-in. Check your device clock.")
	case httperr.IsBusiness(err, "already_completed"):
		httperr.Conflict(c, "already_completed", "Today's check-in and check-out are already recorded.")
	case httperr.IsBusiness(err, "concurrent_update"):
		httperr.Conflict(c, "concurrent_update", "Another scan was being processed. Try again.")
	default:
		httperr.Internal(c, "scan_failed", "Could not process the scan.")
	}
}
