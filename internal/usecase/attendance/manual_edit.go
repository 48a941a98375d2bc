package attendance

import (
	"context"
	"time"

	"github.com/cliniqa/clinic-attendance/internal/audit"
	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// ManualEditInput applies only its non-nil fields.
type ManualEditInput struct {
	ClinicID uint
	RecordID uint
	EditorID uint

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	LateMinutes       *int
	EarlyLeaveMinutes *int
	OvertimeMinutes   *int
	TotalWorkMinutes  *int

	Status *string
	Notes  *string
}

// ======================================================
// USE CASE
// ======================================================

type ManualEdit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManualEdit(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ManualEdit {
	return &ManualEdit{
		repo:  repo,
		audit: audit,
	}
}

// Execute is the administrative escape hatch from the scan flow. It
// marks the record manually edited, which freezes it against automatic
// reconciliation until a forced re-trigger clears the flag.
func (uc *ManualEdit) Execute(
	ctx context.Context,
	in ManualEditInput,
) (*models.AttendanceRecord, error) {

	rec, err := uc.repo.GetRecordByID(ctx, in.ClinicID, in.RecordID)
	if err != nil {
		return nil, httperr.ErrBusiness("record_not_found")
	}

	if in.CheckInTime != nil {
		rec.CheckInTime = in.CheckInTime
	}
	if in.CheckOutTime != nil {
		rec.CheckOutTime = in.CheckOutTime
	}
	if rec.CheckInTime != nil && rec.CheckOutTime != nil && !rec.CheckOutTime.After(*rec.CheckInTime) {
		return nil, httperr.ErrBusiness("invalid_sequence")
	}

	for _, f := range []struct {
		src *int
		dst *int
	}{
		{in.LateMinutes, &rec.LateMinutes},
		{in.EarlyLeaveMinutes, &rec.EarlyLeaveMinutes},
		{in.OvertimeMinutes, &rec.OvertimeMinutes},
		{in.TotalWorkMinutes, &rec.TotalWorkMinutes},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return nil, httperr.ErrBusiness("negative_minutes")
		}
		*f.dst = *f.src
	}

	if in.Status != nil {
		if !domain.IsValid(domain.Status(*in.Status)) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		rec.Status = *in.Status
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}

	rec.IsManuallyEdited = true

	if err := uc.repo.UpdateRecord(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID:   in.ClinicID,
		EmployeeID: &in.EditorID,
		Action:     "attendance_manual_edit",
		Entity:     "attendance_record",
		EntityID:   &rec.ID,
	})

	return rec, nil
}
