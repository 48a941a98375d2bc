package attendance

import (
	"testing"
	"time"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

func TestCycleWindowDaily(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Seoul")
	now := time.Date(2026, 3, 10, 15, 4, 0, 0, loc)

	from, until, err := CycleWindow(PeriodDaily, now, time.Monday, nil)
	if err != nil {
		t.Fatalf("CycleWindow: %v", err)
	}

	wantFrom := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}
	if !until.Equal(wantFrom.AddDate(0, 0, 1)) {
		t.Errorf("until = %v, want next midnight", until)
	}
}

func TestCycleWindowWeekly(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name      string
		now       time.Time
		weekStart time.Weekday
		wantFrom  time.Time
	}{
		{
			"wednesday backs up to monday",
			time.Date(2026, 3, 11, 10, 0, 0, 0, loc), // Wed
			time.Monday,
			time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
		},
		{
			"on the start day itself",
			time.Date(2026, 3, 9, 10, 0, 0, 0, loc), // Mon
			time.Monday,
			time.Date(2026, 3, 9, 0, 0, 0, 0, loc),
		},
		{
			"sunday start",
			time.Date(2026, 3, 11, 10, 0, 0, 0, loc), // Wed
			time.Sunday,
			time.Date(2026, 3, 8, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, until, err := CycleWindow(PeriodWeekly, tt.now, tt.weekStart, nil)
			if err != nil {
				t.Fatalf("CycleWindow: %v", err)
			}
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, want %v", from, tt.wantFrom)
			}
			if !until.Equal(tt.wantFrom.AddDate(0, 0, 7)) {
				t.Errorf("until = %v, want from+7d", until)
			}
		})
	}
}

func TestCycleWindowCustom(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("valid until in the future", func(t *testing.T) {
		until := now.Add(2 * time.Hour)
		from, gotUntil, err := CycleWindow(PeriodCustom, now, time.Monday, &until)
		if err != nil {
			t.Fatalf("CycleWindow: %v", err)
		}
		if !from.Equal(now) || !gotUntil.Equal(until) {
			t.Errorf("window = [%v, %v], want [%v, %v]", from, gotUntil, now, until)
		}
	})

	t.Run("nil until", func(t *testing.T) {
		_, _, err := CycleWindow(PeriodCustom, now, time.Monday, nil)
		if !httperr.IsBusiness(err, "invalid_valid_until") {
			t.Errorf("err = %v, want invalid_valid_until", err)
		}
	})

	t.Run("until in the past", func(t *testing.T) {
		past := now.Add(-time.Minute)
		_, _, err := CycleWindow(PeriodCustom, now, time.Monday, &past)
		if !httperr.IsBusiness(err, "invalid_valid_until") {
			t.Errorf("err = %v, want invalid_valid_until", err)
		}
	})
}

func TestParsePeriod(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "custom"} {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParsePeriod("hourly"); !httperr.IsBusiness(err, "invalid_refresh_period") {
		t.Errorf("ParsePeriod(hourly) err = %v, want invalid_refresh_period", err)
	}
}

func TestValidateToken(t *testing.T) {
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 1)
	tok := &models.QRToken{ValidFrom: from, ValidUntil: until}

	tests := []struct {
		name string
		tok  *models.QRToken
		now  time.Time
		want bool
	}{
		{"inside window", tok, from.Add(12 * time.Hour), true},
		{"at valid_from", tok, from, true},
		{"at valid_until", tok, until, true},
		{"before window", tok, from.Add(-time.Second), false},
		{"after window", tok, until.Add(time.Second), false},
		{"nil token", nil, from, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateToken(tt.tok, tt.now); got != tt.want {
				t.Errorf("ValidateToken() = %v, want %v", got, tt.want)
			}
		})
	}
}
