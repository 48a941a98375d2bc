package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cliniqa/clinic-attendance/internal/audit"
	"github.com/cliniqa/clinic-attendance/internal/cache"
	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
	"github.com/cliniqa/clinic-attendance/internal/timezone"
	"github.com/cliniqa/clinic-attendance/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type IssueTokenInput struct {
	ClinicID uint
	BranchID uint

	RefreshPeriod string

	// Required for the custom period, ignored otherwise.
	ValidUntil *time.Time

	// Geofence; nil fields fall back to the clinic defaults.
	CenterLat    *float64
	CenterLon    *float64
	RadiusMeters *float64

	IssuedBy uint
}

// ======================================================
// USE CASE
// ======================================================

type IssueToken struct {
	repo  domain.Repository
	cache *cache.TokenCache
	audit *audit.Dispatcher
}

func NewIssueToken(
	repo domain.Repository,
	cache *cache.TokenCache,
	audit *audit.Dispatcher,
) *IssueToken {
	return &IssueToken{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute mints a fresh token for the (clinic, branch) scope, superseding
// whatever window is still open. Administrative issuance keys the cycle
// at the issuance instant so a deliberate re-issue inside a daily or
// weekly cycle (say, after a leaked secret) always goes through.
func (uc *IssueToken) Execute(
	ctx context.Context,
	in IssueTokenInput,
) (*models.QRToken, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	period, err := domain.ParsePeriod(in.RefreshPeriod)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)

	from, until, err := domain.CycleWindow(period, now, time.Weekday(clinic.WeekStart), in.ValidUntil)
	if err != nil {
		return nil, err
	}

	centerLat, centerLon, radius := in.CenterLat, in.CenterLon, in.RadiusMeters
	if centerLat == nil && centerLon == nil && radius == nil {
		centerLat, centerLon, radius = clinic.CenterLat, clinic.CenterLon, clinic.RadiusMeters
	}
	if centerLat != nil && centerLon != nil && !validators.IsValidLatLon(*centerLat, *centerLon) {
		return nil, httperr.ErrBusiness("invalid_coordinates")
	}
	if radius != nil && !validators.IsValidRadius(*radius) {
		return nil, httperr.ErrBusiness("invalid_radius")
	}

	tok := &models.QRToken{
		ClinicID:      in.ClinicID,
		BranchID:      in.BranchID,
		CycleStart:    now,
		Secret:        uuid.NewString(),
		RefreshPeriod: string(period),
		ValidFrom:     from,
		ValidUntil:    until,
		CenterLat:     centerLat,
		CenterLon:     centerLon,
		RadiusMeters:  radius,
	}

	if err := uc.repo.CreateToken(ctx, tok); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.ClinicID, in.BranchID)

	uc.audit.Dispatch(audit.Event{
		ClinicID:   in.ClinicID,
		EmployeeID: &in.IssuedBy,
		Action:     "qr_token_issued",
		Entity:     "qr_token",
		EntityID:   &tok.ID,
	})

	return tok, nil
}
