package attendance

import (
	"testing"
	"time"
)

// Monday 09:00-18:00 with a 12:00-13:00 lunch break.
var mondaySched = DaySchedule{
	Working:    true,
	Start:      "09:00",
	End:        "18:00",
	BreakStart: "12:00",
	BreakEnd:   "13:00",
}

func at(t *testing.T, hm string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", "2026-03-02 "+hm)
	if err != nil {
		t.Fatalf("bad test time %q: %v", hm, err)
	}
	return ts
}

func atPtr(t *testing.T, hm string) *time.Time {
	ts := at(t, hm)
	return &ts
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string // empty means no check-out
		sched    DaySchedule
		want     Metrics
	}{
		{
			"exact schedule",
			"09:00", "18:00", mondaySched,
			Metrics{TotalWorkMinutes: 480},
		},
		{
			"late arrival",
			"09:10", "18:00", mondaySched,
			Metrics{LateMinutes: 10, TotalWorkMinutes: 470},
		},
		{
			"early leave",
			"09:00", "17:30", mondaySched,
			Metrics{EarlyLeaveMinutes: 30, TotalWorkMinutes: 450},
		},
		{
			"overtime",
			"09:00", "18:30", mondaySched,
			Metrics{OvertimeMinutes: 30, TotalWorkMinutes: 510},
		},
		{
			"late arrival with overtime",
			"09:10", "18:30", mondaySched,
			Metrics{LateMinutes: 10, OvertimeMinutes: 30, TotalWorkMinutes: 500},
		},
		{
			"missing check-out only tracks lateness",
			"09:25", "", mondaySched,
			Metrics{LateMinutes: 25},
		},
		{
			"arrival during break shrinks the deduction",
			"12:30", "18:00", mondaySched,
			Metrics{LateMinutes: 210, TotalWorkMinutes: 300},
		},
		{
			"leave before break skips the deduction",
			"09:00", "11:00", mondaySched,
			Metrics{EarlyLeaveMinutes: 420, TotalWorkMinutes: 120},
		},
		{
			"non-working day earns actual time only",
			"10:00", "12:00", DaySchedule{Working: false},
			Metrics{TotalWorkMinutes: 120},
		},
		{
			"no break configured",
			"09:00", "18:00", DaySchedule{Working: true, Start: "09:00", End: "18:00"},
			Metrics{TotalWorkMinutes: 540},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out *time.Time
			if tt.checkOut != "" {
				out = atPtr(t, tt.checkOut)
			}

			got := Reconcile(at(t, tt.checkIn), out, tt.sched, time.UTC)
			if got != tt.want {
				t.Errorf("Reconcile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReconcileNeverNegative(t *testing.T) {
	// Check-out before check-in should never produce negative counters.
	got := Reconcile(at(t, "18:00"), atPtr(t, "09:00"), mondaySched, time.UTC)

	if got.TotalWorkMinutes != 0 {
		t.Errorf("TotalWorkMinutes = %d, want 0", got.TotalWorkMinutes)
	}
	if got.LateMinutes < 0 || got.EarlyLeaveMinutes < 0 || got.OvertimeMinutes < 0 {
		t.Errorf("negative counters: %+v", got)
	}
}
