package attendance

import (
	"time"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

// ===============================
// QR Token Refresh Cycles
// ===============================

type RefreshPeriod string

const (
	PeriodDaily  RefreshPeriod = "daily"
	PeriodWeekly RefreshPeriod = "weekly"
	PeriodCustom RefreshPeriod = "custom"
)

func ParsePeriod(s string) (RefreshPeriod, error) {
	switch RefreshPeriod(s) {
	case PeriodDaily, PeriodWeekly, PeriodCustom:
		return RefreshPeriod(s), nil
	}
	return "", httperr.ErrBusiness("invalid_refresh_period")
}

// CycleWindow computes the validity window that contains now. Daily
// cycles run midnight to midnight in the clinic's timezone, weekly cycles
// start at the configured week-start day, and custom windows open at now
// and close at the admin-supplied instant. now must already be in the
// clinic's location.
func CycleWindow(period RefreshPeriod, now time.Time, weekStart time.Weekday, customUntil *time.Time) (time.Time, time.Time, error) {
	switch period {
	case PeriodDaily:
		from := midnight(now)
		return from, from.AddDate(0, 0, 1), nil

	case PeriodWeekly:
		from := midnight(now)
		for from.Weekday() != weekStart {
			from = from.AddDate(0, 0, -1)
		}
		return from, from.AddDate(0, 0, 7), nil

	case PeriodCustom:
		if customUntil == nil || !customUntil.After(now) {
			return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_valid_until")
		}
		return now, *customUntil, nil
	}

	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_refresh_period")
}

// ValidateToken reports whether now falls inside the token's validity
// window, boundaries included.
func ValidateToken(tok *models.QRToken, now time.Time) bool {
	if tok == nil {
		return false
	}
	return !now.Before(tok.ValidFrom) && !now.After(tok.ValidUntil)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
