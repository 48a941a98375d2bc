package attendance

import (
	"context"
	"time"

	"github.com/cliniqa/clinic-attendance/internal/audit"
	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
	"github.com/cliniqa/clinic-attendance/internal/timezone"
)

type ReconcileRecord struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReconcileRecord(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReconcileRecord {
	return &ReconcileRecord{
		repo:  repo,
		audit: audit,
	}
}

// Execute re-derives the minute counters from the stored raw instants
// and today's view of the schedule. A manually edited record is frozen:
// only force overwrites it, and doing so clears the manual-edit flag so
// automatic passes apply again.
func (uc *ReconcileRecord) Execute(
	ctx context.Context,
	clinicID uint,
	recordID uint,
	force bool,
	actorID uint,
) (*models.AttendanceRecord, error) {

	rec, err := uc.repo.GetRecordByID(ctx, clinicID, recordID)
	if err != nil {
		return nil, httperr.ErrBusiness("record_not_found")
	}

	if rec.IsManuallyEdited && !force {
		return nil, httperr.ErrBusiness("manually_edited")
	}
	if rec.CheckInTime == nil {
		return nil, httperr.ErrBusiness("not_checked_in")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(clinic.Timezone)

	day := rec.CheckInTime.In(loc).Weekday()
	sched, err := resolveDay(ctx, uc.repo, clinicID, rec.EmployeeID, day)
	if err != nil {
		return nil, err
	}

	m := domain.Reconcile(*rec.CheckInTime, rec.CheckOutTime, sched, loc)

	rec.LateMinutes = m.LateMinutes
	rec.EarlyLeaveMinutes = m.EarlyLeaveMinutes
	rec.OvertimeMinutes = m.OvertimeMinutes
	rec.TotalWorkMinutes = m.TotalWorkMinutes
	rec.ScheduledStart = sched.Start
	rec.ScheduledEnd = sched.End
	if force {
		rec.IsManuallyEdited = false
	}
	rec.UpdatedAt = time.Now()

	if err := uc.repo.UpdateRecord(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID:   clinicID,
		EmployeeID: &actorID,
		Action:     "attendance_reconciled",
		Entity:     "attendance_record",
		EntityID:   &rec.ID,
		Metadata:   m,
	})

	return rec, nil
}
