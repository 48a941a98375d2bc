package attendance

import (
	"context"
	"time"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

// repoStub is an in-memory stand-in for the gorm repository. The claim
// methods mimic the store's conditional writes, and failNextClaim
// simulates losing a concurrent race.
type repoStub struct {
	clinic    *models.Clinic
	tokens    []*models.QRToken
	hours     []models.ClinicHours
	overrides []models.EmployeeSchedule
	records   []*models.AttendanceRecord

	nextID        uint
	failNextClaim bool
}

var _ domain.Repository = (*repoStub)(nil)

func (s *repoStub) GetClinicByID(ctx context.Context, id uint) (*models.Clinic, error) {
	return s.clinic, nil
}

func (s *repoStub) GetTokenBySecret(ctx context.Context, secret string) (*models.QRToken, error) {
	for _, t := range s.tokens {
		if t.Secret == secret {
			return t, nil
		}
	}
	return nil, nil
}

func (s *repoStub) GetCurrentToken(ctx context.Context, clinicID, branchID uint, now time.Time) (*models.QRToken, error) {
	for i := len(s.tokens) - 1; i >= 0; i-- {
		t := s.tokens[i]
		if t.ClinicID == clinicID && t.BranchID == branchID && domain.ValidateToken(t, now) {
			return t, nil
		}
	}
	return nil, nil
}

func (s *repoStub) CreateToken(ctx context.Context, tok *models.QRToken) error {
	for _, t := range s.tokens {
		if t.ClinicID == tok.ClinicID && t.BranchID == tok.BranchID && t.CycleStart.Equal(tok.CycleStart) {
			return httperr.ErrBusiness("token_cycle_conflict")
		}
	}
	for _, t := range s.tokens {
		if t.ClinicID == tok.ClinicID && t.BranchID == tok.BranchID && t.ValidUntil.After(tok.CycleStart) {
			t.ValidUntil = tok.CycleStart
		}
	}
	s.nextID++
	tok.ID = s.nextID
	s.tokens = append(s.tokens, tok)
	return nil
}

func (s *repoStub) GetClinicHours(ctx context.Context, clinicID uint) ([]models.ClinicHours, error) {
	return s.hours, nil
}

func (s *repoStub) GetEmployeeSchedule(ctx context.Context, employeeID uint) ([]models.EmployeeSchedule, error) {
	return s.overrides, nil
}

func (s *repoStub) GetOrCreateRecord(ctx context.Context, rec *models.AttendanceRecord) (*models.AttendanceRecord, error) {
	for _, r := range s.records {
		if r.ClinicID == rec.ClinicID && r.EmployeeID == rec.EmployeeID && r.WorkDate == rec.WorkDate {
			return r, nil
		}
	}
	s.nextID++
	rec.ID = s.nextID
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *repoStub) GetRecordByID(ctx context.Context, clinicID, recordID uint) (*models.AttendanceRecord, error) {
	for _, r := range s.records {
		if r.ID == recordID && r.ClinicID == clinicID {
			return r, nil
		}
	}
	return nil, httperr.ErrBusiness("record_not_found")
}

func (s *repoStub) ClaimCheckIn(ctx context.Context, recordID uint, at time.Time, scheduledStart, scheduledEnd string) (bool, error) {
	if s.failNextClaim {
		s.failNextClaim = false
		return false, nil
	}
	for _, r := range s.records {
		if r.ID == recordID {
			if r.CheckInTime != nil {
				return false, nil
			}
			t := at
			r.CheckInTime = &t
			r.ScheduledStart = scheduledStart
			r.ScheduledEnd = scheduledEnd
			r.Status = string(domain.StatusCheckedIn)
			return true, nil
		}
	}
	return false, nil
}

func (s *repoStub) ClaimCheckOut(ctx context.Context, recordID uint, at time.Time, m *domain.Metrics) (bool, error) {
	if s.failNextClaim {
		s.failNextClaim = false
		return false, nil
	}
	for _, r := range s.records {
		if r.ID == recordID {
			if r.CheckOutTime != nil {
				return false, nil
			}
			t := at
			r.CheckOutTime = &t
			r.Status = string(domain.StatusCheckedOut)
			if m != nil {
				r.LateMinutes = m.LateMinutes
				r.EarlyLeaveMinutes = m.EarlyLeaveMinutes
				r.OvertimeMinutes = m.OvertimeMinutes
				r.TotalWorkMinutes = m.TotalWorkMinutes
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *repoStub) UpdateRecord(ctx context.Context, rec *models.AttendanceRecord) error {
	for i, r := range s.records {
		if r.ID == rec.ID {
			s.records[i] = rec
			return nil
		}
	}
	return httperr.ErrBusiness("record_not_found")
}

func (s *repoStub) ListRecordsForDay(ctx context.Context, clinicID uint, workDate string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range s.records {
		if r.ClinicID == clinicID && r.WorkDate == workDate {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *repoStub) ListRecordsForPeriod(ctx context.Context, clinicID uint, fromDate, toDate string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range s.records {
		if r.ClinicID == clinicID && r.WorkDate >= fromDate && r.WorkDate < toDate {
			out = append(out, *r)
		}
	}
	return out, nil
}
