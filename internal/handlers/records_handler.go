package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/httpresp"
	"github.com/cliniqa/clinic-attendance/internal/middleware"
	ucAttendance "github.com/cliniqa/clinic-attendance/internal/usecase/attendance"
)

// ======================================================
// HANDLER
// ======================================================

type RecordsHandler struct {
	listByDate  *ucAttendance.ListRecordsByDate
	listByMonth *ucAttendance.ListRecordsByMonth
	manualEdit  *ucAttendance.ManualEdit
	reconcile   *ucAttendance.ReconcileRecord
}

func NewRecordsHandler(
	listByDate *ucAttendance.ListRecordsByDate,
	listByMonth *ucAttendance.ListRecordsByMonth,
	manualEdit *ucAttendance.ManualEdit,
	reconcile *ucAttendance.ReconcileRecord,
) *RecordsHandler {
	return &RecordsHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		manualEdit:  manualEdit,
		reconcile:   reconcile,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ManualEditRequest struct {
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`

	LateMinutes       *int `json:"late_minutes"`
	EarlyLeaveMinutes *int `json:"early_leave_minutes"`
	OvertimeMinutes   *int `json:"overtime_minutes"`
	TotalWorkMinutes  *int `json:"total_work_minutes"`

	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type ReconcileRequest struct {
	Force bool `json:"force"`
}

// ======================================================
// LISTING
// ======================================================

func (h *RecordsHandler) ListByDate(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date query parameter is required.")
		return
	}

	rows, err := h.listByDate.Execute(c.Request.Context(), clinicID, date)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
			return
		}
		httperr.Internal(c, "list_failed", "Could not list attendance records.")
		return
	}

	httpresp.List(c, rows)
}

func (h *RecordsHandler) ListByMonth(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "year and month query parameters are required.")
		return
	}

	rows, err := h.listByMonth.Execute(c.Request.Context(), clinicID, year, month)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_month") {
			httperr.BadRequest(c, "invalid_month", "Month out of range.")
			return
		}
		httperr.Internal(c, "list_failed", "Could not list attendance records.")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// MANUAL EDIT / RECONCILE
// ======================================================

func (h *RecordsHandler) ManualEdit(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	editorID := c.MustGet(middleware.ContextEmployeeID).(uint)

	recordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_record_id", "Record ID must be numeric.")
		return
	}

	var req ManualEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid edit payload.")
		return
	}

	in := ucAttendance.ManualEditInput{
		ClinicID:          clinicID,
		RecordID:          uint(recordID),
		EditorID:          editorID,
		LateMinutes:       req.LateMinutes,
		EarlyLeaveMinutes: req.EarlyLeaveMinutes,
		OvertimeMinutes:   req.OvertimeMinutes,
		TotalWorkMinutes:  req.TotalWorkMinutes,
		Status:            req.Status,
		Notes:             req.Notes,
	}

	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_check_in_time", "check_in_time must be RFC3339.")
			return
		}
		in.CheckInTime = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_check_out_time", "check_out_time must be RFC3339.")
			return
		}
		in.CheckOutTime = &t
	}

	rec, err := h.manualEdit.Execute(c.Request.Context(), in)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "record_not_found"):
			httperr.NotFound(c, "record_not_found", "Attendance record not found.")
		case httperr.IsBusiness(err, "invalid_sequence"),
			httperr.IsBusiness(err, "negative_minutes"),
			httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, err.Error(), "Invalid edit values.")
		default:
			httperr.Internal(c, "edit_failed", "Could not edit the record.")
		}
		return
	}

	httpresp.OK(c, rec)
}

func (h *RecordsHandler) Reconcile(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	actorID := c.MustGet(middleware.ContextEmployeeID).(uint)

	recordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_record_id", "Record ID must be numeric.")
		return
	}

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", "Invalid reconcile payload.")
		return
	}

	rec, err := h.reconcile.Execute(c.Request.Context(), clinicID, uint(recordID), req.Force, actorID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "record_not_found"):
			httperr.NotFound(c, "record_not_found", "Attendance record not found.")
		case httperr.IsBusiness(err, "manually_edited"):
			httperr.Conflict(c, "manually_edited", "Record was manually edited; pass force to overwrite.")
		case httperr.IsBusiness(err, "not_checked_in"):
			httperr.BadRequest(c, "not_checked_in", "Nothing to reconcile without a check-in.")
		default:
			httperr.Internal(c, "reconcile_failed", "Could not reconcile the record.")
		}
		return
	}

	httpresp.OK(c, rec)
}
