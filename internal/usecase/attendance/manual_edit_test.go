package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

func ptrInt(v int) *int              { return &v }
func ptrStr(s string) *string        { return &s }
func ptrTime(t time.Time) *time.Time { return &t }

func manualEditFixture() (*repoStub, *ManualEdit) {
	in := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	stub := &repoStub{
		clinic: &models.Clinic{ID: 1, Timezone: "UTC"},
		records: []*models.AttendanceRecord{{
			ID:          1,
			ClinicID:    1,
			EmployeeID:  10,
			WorkDate:    "2026-03-02",
			CheckInTime: &in,
			Status:      "checked_in",
			LateMinutes: 10,
		}},
		nextID: 1,
	}
	return stub, NewManualEdit(stub, nil)
}

func TestManualEdit(t *testing.T) {
	_, uc := manualEditFixture()

	out := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	rec, err := uc.Execute(context.Background(), ManualEditInput{
		ClinicID:     1,
		RecordID:     1,
		EditorID:     5,
		CheckOutTime: ptrTime(out),
		LateMinutes:  ptrInt(0),
		Notes:        ptrStr("arrived with the on-call surgeon"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if rec.CheckOutTime == nil || !rec.CheckOutTime.Equal(out) {
		t.Errorf("CheckOutTime = %v, want %v", rec.CheckOutTime, out)
	}
	if rec.LateMinutes != 0 {
		t.Errorf("LateMinutes = %d, want 0", rec.LateMinutes)
	}
	if !rec.IsManuallyEdited {
		t.Error("IsManuallyEdited not set")
	}
	if rec.Notes == "" {
		t.Error("Notes not applied")
	}
}

func TestManualEditValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("check-out before check-in", func(t *testing.T) {
		_, uc := manualEditFixture()
		_, err := uc.Execute(ctx, ManualEditInput{
			ClinicID:     1,
			RecordID:     1,
			CheckOutTime: ptrTime(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)),
		})
		if !httperr.IsBusiness(err, "invalid_sequence") {
			t.Errorf("err = %v, want invalid_sequence", err)
		}
	})

	t.Run("negative minutes", func(t *testing.T) {
		_, uc := manualEditFixture()
		_, err := uc.Execute(ctx, ManualEditInput{
			ClinicID:        1,
			RecordID:        1,
			OvertimeMinutes: ptrInt(-30),
		})
		if !httperr.IsBusiness(err, "negative_minutes") {
			t.Errorf("err = %v, want negative_minutes", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		_, uc := manualEditFixture()
		_, err := uc.Execute(ctx, ManualEditInput{
			ClinicID: 1,
			RecordID: 1,
			Status:   ptrStr("vacationing"),
		})
		if !httperr.IsBusiness(err, "invalid_status") {
			t.Errorf("err = %v, want invalid_status", err)
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		_, uc := manualEditFixture()
		_, err := uc.Execute(ctx, ManualEditInput{ClinicID: 1, RecordID: 77})
		if !httperr.IsBusiness(err, "record_not_found") {
			t.Errorf("err = %v, want record_not_found", err)
		}
	})
}

func TestManualEditUntouchedFieldsSurvive(t *testing.T) {
	stub, uc := manualEditFixture()
	before := *stub.records[0]

	rec, err := uc.Execute(context.Background(), ManualEditInput{
		ClinicID: 1,
		RecordID: 1,
		Notes:    ptrStr("note only"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if rec.LateMinutes != before.LateMinutes {
		t.Errorf("LateMinutes changed: %d -> %d", before.LateMinutes, rec.LateMinutes)
	}
	if rec.CheckInTime == nil || !rec.CheckInTime.Equal(*before.CheckInTime) {
		t.Error("CheckInTime changed by a notes-only edit")
	}
	if rec.Status != before.Status {
		t.Errorf("Status changed: %q -> %q", before.Status, rec.Status)
	}
}
