package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

type AttendanceGormRepository struct {
	db *gorm.DB
}

func NewAttendanceGormRepository(db *gorm.DB) *AttendanceGormRepository {
	return &AttendanceGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AttendanceGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// QR tokens
// --------------------------------------------------

func (r *AttendanceGormRepository) GetTokenBySecret(
	ctx context.Context,
	secret string,
) (*models.QRToken, error) {

	var tok models.QRToken
	err := r.db.WithContext(ctx).
		Where("secret = ?", secret).
		First(&tok).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (r *AttendanceGormRepository) GetCurrentToken(
	ctx context.Context,
	clinicID uint,
	branchID uint,
	now time.Time,
) (*models.QRToken, error) {

	var tok models.QRToken
	err := r.db.WithContext(ctx).
		Where(
			"clinic_id = ? AND branch_id = ? AND valid_from <= ? AND valid_until >= ?",
			clinicID, branchID, now, now,
		).
		Order("valid_from DESC").
		First(&tok).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// CreateToken closes any still-open window for the scope and inserts the
// new row in one transaction. The unique (clinic, branch, cycle_start)
// index serializes concurrent issuance; losers get token_cycle_conflict
// and must re-read the winner.
func (r *AttendanceGormRepository) CreateToken(
	ctx context.Context,
	tok *models.QRToken,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := tx.Model(&models.QRToken{}).
			Where(
				"clinic_id = ? AND branch_id = ? AND valid_until > ?",
				tok.ClinicID, tok.BranchID, now,
			).
			Update("valid_until", now).Error; err != nil {
			return err
		}

		if err := tx.Create(tok).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness("token_cycle_conflict")
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Schedules
// --------------------------------------------------

func (r *AttendanceGormRepository) GetClinicHours(
	ctx context.Context,
	clinicID uint,
) ([]models.ClinicHours, error) {

	var rows []models.ClinicHours
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceGormRepository) GetEmployeeSchedule(
	ctx context.Context,
	employeeID uint,
) ([]models.EmployeeSchedule, error) {

	var rows []models.EmployeeSchedule
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Attendance records
// --------------------------------------------------

// GetOrCreateRecord inserts the day row if missing and returns whatever
// ends up persisted, so concurrent first scans converge on one row.
func (r *AttendanceGormRepository) GetOrCreateRecord(
	ctx context.Context,
	rec *models.AttendanceRecord,
) (*models.AttendanceRecord, error) {

	var existing models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND clinic_id = ? AND work_date = ?",
			rec.EmployeeID, rec.ClinicID, rec.WorkDate,
		).
		First(&existing).Error

	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, err
		}
		// lost the creation race; the winner's row is the record
		if err := r.db.WithContext(ctx).
			Where(
				"employee_id = ? AND clinic_id = ? AND work_date = ?",
				rec.EmployeeID, rec.ClinicID, rec.WorkDate,
			).
			First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	return rec, nil
}

func (r *AttendanceGormRepository) GetRecordByID(
	ctx context.Context,
	clinicID uint,
	recordID uint,
) (*models.AttendanceRecord, error) {

	var rec models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", recordID, clinicID).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ClaimCheckIn is the single compare-and-swap attempt for the check-in
// instant. RowsAffected 0 means a concurrent scan won.
func (r *AttendanceGormRepository) ClaimCheckIn(
	ctx context.Context,
	recordID uint,
	at time.Time,
	scheduledStart string,
	scheduledEnd string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("id = ? AND check_in_time IS NULL", recordID).
		Updates(map[string]any{
			"check_in_time":   at,
			"scheduled_start": scheduledStart,
			"scheduled_end":   scheduledEnd,
			"status":          string(domain.StatusCheckedIn),
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AttendanceGormRepository) ClaimCheckOut(
	ctx context.Context,
	recordID uint,
	at time.Time,
	m *domain.Metrics,
) (bool, error) {

	updates := map[string]any{
		"check_out_time": at,
		"status":         string(domain.StatusCheckedOut),
	}
	if m != nil {
		updates["late_minutes"] = m.LateMinutes
		updates["early_leave_minutes"] = m.EarlyLeaveMinutes
		updates["overtime_minutes"] = m.OvertimeMinutes
		updates["total_work_minutes"] = m.TotalWorkMinutes
	}

	res := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("id = ? AND check_out_time IS NULL", recordID).
		Updates(updates)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AttendanceGormRepository) UpdateRecord(
	ctx context.Context,
	rec *models.AttendanceRecord,
) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *AttendanceGormRepository) ListRecordsForDay(
	ctx context.Context,
	clinicID uint,
	workDate string,
) ([]models.AttendanceRecord, error) {

	var rows []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("clinic_id = ? AND work_date = ?", clinicID, workDate).
		Order("employee_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AttendanceGormRepository) ListRecordsForPeriod(
	ctx context.Context,
	clinicID uint,
	fromDate string,
	toDate string,
) ([]models.AttendanceRecord, error) {

	var rows []models.AttendanceRecord
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where(
			"clinic_id = ? AND work_date >= ? AND work_date < ?",
			clinicID, fromDate, toDate,
		).
		Order("work_date ASC, employee_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Compile-time check
var _ domain.Repository = (*AttendanceGormRepository)(nil)
