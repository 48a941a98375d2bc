package attendance

import (
	"context"
	"testing"
	"time"

	domain "github.com/cliniqa/clinic-attendance/internal/domain/attendance"
	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

func tokenFixture() (*repoStub, *IssueToken) {
	stub := &repoStub{
		clinic: &models.Clinic{
			ID:              1,
			Name:            "Hanul Dental",
			Timezone:        "UTC",
			AutoRotateToken: true,
			RefreshPeriod:   "daily",
			WeekStart:       1,
		},
	}
	return stub, NewIssueToken(stub, nil, nil)
}

func TestIssueTokenDaily(t *testing.T) {
	_, uc := tokenFixture()

	tok, err := uc.Execute(context.Background(), IssueTokenInput{
		ClinicID:      1,
		RefreshPeriod: "daily",
		IssuedBy:      5,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	now := time.Now().UTC()
	if !domain.ValidateToken(tok, now) {
		t.Errorf("issued token not valid at %v: [%v, %v]", now, tok.ValidFrom, tok.ValidUntil)
	}
	if tok.Secret == "" {
		t.Error("Secret is empty")
	}
	if tok.RefreshPeriod != "daily" {
		t.Errorf("RefreshPeriod = %q, want daily", tok.RefreshPeriod)
	}
}

func TestIssueTokenSupersedesOpenWindow(t *testing.T) {
	stub, uc := tokenFixture()
	ctx := context.Background()

	in := IssueTokenInput{ClinicID: 1, RefreshPeriod: "daily", IssuedBy: 5}

	first, err := uc.Execute(ctx, in)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := uc.Execute(ctx, in)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("re-issue returned the same token row")
	}

	// only the newest window may be open
	now := time.Now().UTC()
	valid := 0
	for _, tok := range stub.tokens {
		if domain.ValidateToken(tok, now) {
			valid++
			if tok.ID != second.ID {
				t.Errorf("stale token %d is still valid", tok.ID)
			}
		}
	}
	if valid != 1 {
		t.Errorf("%d tokens valid, want exactly 1", valid)
	}
}

func TestIssueTokenCustom(t *testing.T) {
	_, uc := tokenFixture()
	ctx := context.Background()

	t.Run("requires valid_until", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueTokenInput{ClinicID: 1, RefreshPeriod: "custom"})
		if !httperr.IsBusiness(err, "invalid_valid_until") {
			t.Errorf("err = %v, want invalid_valid_until", err)
		}
	})

	t.Run("honors the supplied window", func(t *testing.T) {
		until := time.Now().UTC().Add(3 * time.Hour)
		tok, err := uc.Execute(ctx, IssueTokenInput{
			ClinicID:      1,
			RefreshPeriod: "custom",
			ValidUntil:    &until,
		})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if !tok.ValidUntil.Equal(until) {
			t.Errorf("ValidUntil = %v, want %v", tok.ValidUntil, until)
		}
	})
}

func TestIssueTokenValidation(t *testing.T) {
	_, uc := tokenFixture()
	ctx := context.Background()

	t.Run("unknown period", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueTokenInput{ClinicID: 1, RefreshPeriod: "hourly"})
		if !httperr.IsBusiness(err, "invalid_refresh_period") {
			t.Errorf("err = %v, want invalid_refresh_period", err)
		}
	})

	t.Run("bad coordinates", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueTokenInput{
			ClinicID:      1,
			RefreshPeriod: "daily",
			CenterLat:     ptrF64(123.0),
			CenterLon:     ptrF64(127.0),
			RadiusMeters:  ptrF64(50),
		})
		if !httperr.IsBusiness(err, "invalid_coordinates") {
			t.Errorf("err = %v, want invalid_coordinates", err)
		}
	})

	t.Run("negative radius", func(t *testing.T) {
		_, err := uc.Execute(ctx, IssueTokenInput{
			ClinicID:      1,
			RefreshPeriod: "daily",
			CenterLat:     ptrF64(37.5),
			CenterLon:     ptrF64(127.0),
			RadiusMeters:  ptrF64(-5),
		})
		if !httperr.IsBusiness(err, "invalid_radius") {
			t.Errorf("err = %v, want invalid_radius", err)
		}
	})
}

func TestIssueTokenClinicGeofenceDefaults(t *testing.T) {
	stub, uc := tokenFixture()
	stub.clinic.CenterLat = ptrF64(37.5)
	stub.clinic.CenterLon = ptrF64(127.0)
	stub.clinic.RadiusMeters = ptrF64(80)

	tok, err := uc.Execute(context.Background(), IssueTokenInput{
		ClinicID:      1,
		RefreshPeriod: "daily",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if tok.CenterLat == nil || *tok.CenterLat != 37.5 ||
		tok.RadiusMeters == nil || *tok.RadiusMeters != 80 {
		t.Errorf("token geofence = (%v, %v, %v), want clinic defaults",
			tok.CenterLat, tok.CenterLon, tok.RadiusMeters)
	}
}
