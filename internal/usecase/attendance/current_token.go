package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cliniqa/clinic-attendance/internal/cache"
	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
	"github.com/cliniqa/clinic-attendance/internal/timezone"
)

type CurrentToken struct {
	repo  domain.Repository
	cache *cache.TokenCache
}

func NewCurrentToken(
	repo domain.Repository,
	cache *cache.TokenCache,
) *CurrentToken {
	return &CurrentToken{
		repo:  repo,
		cache: cache,
	}
}

// Execute returns the token whose window contains now. Rotation is lazy:
// when the window lapsed and the clinic allows auto-rotation, the next
// caller mints the new cycle's token right here; concurrent callers are
// serialized by the store's cycle key and losers adopt the winner's token.
func (uc *CurrentToken) Execute(
	ctx context.Context,
	clinicID uint,
	branchID uint,
) (*models.QRToken, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)

	if tok := uc.cache.GetToken(ctx, clinicID, branchID); domain.ValidateToken(tok, now) {
		return tok, nil
	}

	tok, err := uc.repo.GetCurrentToken(ctx, clinicID, branchID, now)
	if err != nil {
		return nil, err
	}

	if tok == nil {
		if !clinic.AutoRotateToken {
			return nil, httperr.ErrBusiness("no_active_token")
		}
		tok, err = uc.autoIssue(ctx, clinic, branchID, now)
		if err != nil {
			return nil, err
		}
	}

	uc.cache.SetToken(ctx, tok)
	return tok, nil
}

func (uc *CurrentToken) autoIssue(
	ctx context.Context,
	clinic *models.Clinic,
	branchID uint,
	now time.Time,
) (*models.QRToken, error) {

	period, err := domain.ParsePeriod(clinic.RefreshPeriod)
	if err != nil || period == domain.PeriodCustom {
		// custom windows need an explicit end, which lazy rotation has
		// no admin to ask; fall back to daily
		period = domain.PeriodDaily
	}

	from, until, err := domain.CycleWindow(period, now, time.Weekday(clinic.WeekStart), nil)
	if err != nil {
		return nil, err
	}

	tok := &models.QRToken{
		ClinicID:      clinic.ID,
		BranchID:      branchID,
		CycleStart:    from,
		Secret:        uuid.NewString(),
		RefreshPeriod: string(period),
		ValidFrom:     from,
		ValidUntil:    until,
		CenterLat:     clinic.CenterLat,
		CenterLon:     clinic.CenterLon,
		RadiusMeters:  clinic.RadiusMeters,
	}

	err = uc.repo.CreateToken(ctx, tok)
	if err == nil {
		return tok, nil
	}
	if !httperr.IsBusiness(err, "token_cycle_conflict") {
		return nil, err
	}

	// Lost the issuance race; adopt the winner's token.
	winner, err := uc.repo.GetCurrentToken(ctx, clinic.ID, branchID, now)
	if err != nil {
		return nil, err
	}
	if winner != nil {
		return winner, nil
	}

	// The cycle key is held by a row an admin already superseded. Key
	// this window at the issuance instant instead.
	tok.CycleStart = now
	if err := uc.repo.CreateToken(ctx, tok); err != nil {
		if httperr.IsBusiness(err, "token_cycle_conflict") {
			winner, rerr := uc.repo.GetCurrentToken(ctx, clinic.ID, branchID, now)
			if rerr != nil {
				return nil, rerr
			}
			if winner != nil {
				return winner, nil
			}
			return nil, httperr.ErrBusiness("no_active_token")
		}
		return nil, err
	}

	return tok, nil
}
