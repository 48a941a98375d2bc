package attendance

import (
	"context"
	"time"

	"github.com/cliniqa/clinic-attendance/internal/models"
)

// Repository is the narrow persistence surface the attendance engine
// needs. The store must offer atomic conditional writes for the check-in/
// check-out claims and a single-writer guarantee per token cycle.
type Repository interface {
	// -------- Tenant --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- QR tokens --------
	GetTokenBySecret(
		ctx context.Context,
		secret string,
	) (*models.QRToken, error)

	// GetCurrentToken returns the token whose window contains now for the
	// (clinic, branch) scope, or nil when none is open.
	GetCurrentToken(
		ctx context.Context,
		clinicID uint,
		branchID uint,
		now time.Time,
	) (*models.QRToken, error)

	// CreateToken closes any still-open window for the same scope and
	// inserts tok in one transaction. A concurrent issuance for the same
	// cycle loses with a token_cycle_conflict business error and must
	// re-read the winner.
	CreateToken(
		ctx context.Context,
		tok *models.QRToken,
	) error

	// -------- Schedules --------
	GetClinicHours(
		ctx context.Context,
		clinicID uint,
	) ([]models.ClinicHours, error)

	GetEmployeeSchedule(
		ctx context.Context,
		employeeID uint,
	) ([]models.EmployeeSchedule, error)

	// -------- Attendance records --------
	GetOrCreateRecord(
		ctx context.Context,
		rec *models.AttendanceRecord,
	) (*models.AttendanceRecord, error)

	GetRecordByID(
		ctx context.Context,
		clinicID uint,
		recordID uint,
	) (*models.AttendanceRecord, error)

	// ClaimCheckIn sets the check-in instant iff it is still unset.
	// Returns false when a concurrent scan already claimed it.
	ClaimCheckIn(
		ctx context.Context,
		recordID uint,
		at time.Time,
		scheduledStart string,
		scheduledEnd string,
	) (bool, error)

	// ClaimCheckOut sets the check-out instant iff it is still unset.
	// Metrics are applied in the same write; a nil metrics pointer leaves
	// the derived fields untouched (manually edited records).
	ClaimCheckOut(
		ctx context.Context,
		recordID uint,
		at time.Time,
		m *Metrics,
	) (bool, error)

	UpdateRecord(
		ctx context.Context,
		rec *models.AttendanceRecord,
	) error

	ListRecordsForDay(
		ctx context.Context,
		clinicID uint,
		workDate string,
	) ([]models.AttendanceRecord, error)

	ListRecordsForPeriod(
		ctx context.Context,
		clinicID uint,
		fromDate string,
		toDate string,
	) ([]models.AttendanceRecord, error)
}
