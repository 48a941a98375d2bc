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

// ======================================================
// INPUT / RESULT
// ======================================================

// DebounceWindow absorbs duplicate scans from a slow UI: a second scan
// this close to the check-in answers with the original check-in instead
// of flipping the record to checked-out.
const DebounceWindow = 60 * time.Second

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

type VerifyScanInput struct {
	ClinicID   uint
	EmployeeID uint

	TokenSecret string

	// Zero means "now" in the clinic's timezone.
	Timestamp time.Time

	Location *domain.Coordinate
}

type VerifyScanResult struct {
	Action string                   `json:"action"`
	Record *models.AttendanceRecord `json:"record"`
}

// ======================================================
// USE CASE
// ======================================================

type VerifyScan struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewVerifyScan(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *VerifyScan {
	return &VerifyScan{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute decides whether a scan is the day's check-in or check-out.
// Every failure branch leaves the record untouched. Business codes:
// token_not_found, token_expired, out_of_range, leave_day,
// invalid_sequence, already_completed, concurrent_update.
func (uc *VerifyScan) Execute(
	ctx context.Context,
	in VerifyScanInput,
) (*VerifyScanResult, error) {

	// --------------------------------------------------
	// 1. Token lookup (scoped to the caller's tenant)
	// --------------------------------------------------
	tok, err := uc.repo.GetTokenBySecret(ctx, in.TokenSecret)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.ClinicID != in.ClinicID {
		return nil, httperr.ErrBusiness("token_not_found")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	now := in.Timestamp
	if now.IsZero() {
		now = timezone.NowIn(clinic.Timezone)
	}

	// --------------------------------------------------
	// 2. Token validity window
	// --------------------------------------------------
	if !domain.ValidateToken(tok, now) {
		return nil, httperr.ErrBusiness("token_expired")
	}

	// --------------------------------------------------
	// 3. Geofence
	// --------------------------------------------------
	var center *domain.Coordinate
	if tok.CenterLat != nil && tok.CenterLon != nil {
		center = &domain.Coordinate{Lat: *tok.CenterLat, Lon: *tok.CenterLon}
	}

	if domain.WithinFence(in.Location, center, tok.RadiusMeters, clinic.RequireLocation) == domain.GeoFail {
		return nil, httperr.ErrBusiness("out_of_range")
	}

	// --------------------------------------------------
	// 4. Day record (one row per employee per work date)
	// --------------------------------------------------
	loc := timezone.Location(clinic.Timezone)
	local := now.In(loc)

	rec, err := uc.repo.GetOrCreateRecord(ctx, &models.AttendanceRecord{
		ClinicID:   in.ClinicID,
		EmployeeID: in.EmployeeID,
		WorkDate:   local.Format("2006-01-02"),
		BranchID:   tok.BranchID,
		Status:     string(domain.StatusNotCheckedIn),
	})
	if err != nil {
		return nil, err
	}

	if domain.IsLeaveDay(domain.Status(rec.Status)) {
		return nil, httperr.ErrBusiness("leave_day")
	}

	sched, err := resolveDay(ctx, uc.repo, in.ClinicID, in.EmployeeID, local.Weekday())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Check-in (conditional write, single attempt)
	// --------------------------------------------------
	if rec.CheckInTime == nil {
		ok, err := uc.repo.ClaimCheckIn(ctx, rec.ID, now, sched.Start, sched.End)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("concurrent_update")
		}

		fresh, err := uc.repo.GetRecordByID(ctx, in.ClinicID, rec.ID)
		if err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			ClinicID:   in.ClinicID,
			EmployeeID: &in.EmployeeID,
			Action:     "scan_check_in",
			Entity:     "attendance_record",
			EntityID:   &rec.ID,
		})

		return &VerifyScanResult{Action: ActionCheckIn, Record: fresh}, nil
	}

	// --------------------------------------------------
	// 6. Check-out
	// --------------------------------------------------
	if rec.CheckOutTime == nil {
		if now.Before(*rec.CheckInTime) {
			return nil, httperr.ErrBusiness("invalid_sequence")
		}
		if now.Sub(*rec.CheckInTime) <= DebounceWindow {
			// duplicate scan; answer with the existing check-in
			return &VerifyScanResult{Action: ActionCheckIn, Record: rec}, nil
		}

		var metrics *domain.Metrics
		if !rec.IsManuallyEdited {
			m := domain.Reconcile(*rec.CheckInTime, &now, sched, loc)
			metrics = &m
		}

		ok, err := uc.repo.ClaimCheckOut(ctx, rec.ID, now, metrics)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("concurrent_update")
		}

		fresh, err := uc.repo.GetRecordByID(ctx, in.ClinicID, rec.ID)
		if err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			ClinicID:   in.ClinicID,
			EmployeeID: &in.EmployeeID,
			Action:     "scan_check_out",
			Entity:     "attendance_record",
			EntityID:   &rec.ID,
		})

		return &VerifyScanResult{Action: ActionCheckOut, Record: fresh}, nil
	}

	// --------------------------------------------------
	// 7. Both already set
	// --------------------------------------------------
	return nil, httperr.ErrBusiness("already_completed")
}

// resolveDay merges clinic hours with the employee override for one
// weekday. Re-read on every call; schedules are never cached.
func resolveDay(
	ctx context.Context,
	repo domain.Repository,
	clinicID uint,
	employeeID uint,
	day time.Weekday,
) (domain.DaySchedule, error) {

	hours, err := repo.GetClinicHours(ctx, clinicID)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	override, err := repo.GetEmployeeSchedule(ctx, employeeID)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	return domain.Resolve(domain.ClinicWeek(hours), domain.OverrideWeek(override), day), nil
}
