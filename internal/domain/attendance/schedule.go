package attendance

import (
	"time"

	"github.com/cliniqa/clinic-attendance/internal/httperr"
	"github.com/cliniqa/clinic-attendance/internal/models"
)

// ===============================
// Day / Weekly Schedule
// ===============================

// DaySchedule is the expected working window for one weekday. Times use
// the "15:04" wall-clock format in the clinic's timezone. A non-working
// day carries no times at all.
type DaySchedule struct {
	Working    bool   `json:"working"`
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

// WeeklySchedule maps weekday (0=Sunday..6=Saturday) to its DaySchedule.
// Days without an entry fall through to the next source during resolution.
type WeeklySchedule map[time.Weekday]DaySchedule

// Resolve merges clinic-wide hours with the employee override for one
// weekday. The override wins verbatim when present, clinic hours fill the
// gaps, and a day known to neither source is a non-working day, never an
// error. Callers must re-resolve after any hours change; nothing is cached.
func Resolve(clinicHours WeeklySchedule, override WeeklySchedule, day time.Weekday) DaySchedule {
	if override != nil {
		if d, ok := override[day]; ok {
			return d
		}
	}
	if clinicHours != nil {
		if d, ok := clinicHours[day]; ok {
			return d
		}
	}
	return DaySchedule{Working: false}
}

// Validate enforces the schedule invariants: a non-working day has no
// times, a working day has start < end, and a break (when both ends are
// set) sits inside the working window.
func (d DaySchedule) Validate() error {
	if !d.Working {
		if d.Start != "" || d.End != "" || d.BreakStart != "" || d.BreakEnd != "" {
			return httperr.ErrBusiness("times_on_non_working_day")
		}
		return nil
	}

	start, err := MinuteOfDay(d.Start)
	if err != nil {
		return httperr.ErrBusiness("invalid_start_time")
	}
	end, err := MinuteOfDay(d.End)
	if err != nil {
		return httperr.ErrBusiness("invalid_end_time")
	}
	if start >= end {
		return httperr.ErrBusiness("start_after_end")
	}

	if d.BreakStart == "" && d.BreakEnd == "" {
		return nil
	}
	if d.BreakStart == "" || d.BreakEnd == "" {
		return httperr.ErrBusiness("incomplete_break")
	}

	bs, err := MinuteOfDay(d.BreakStart)
	if err != nil {
		return httperr.ErrBusiness("invalid_break_start")
	}
	be, err := MinuteOfDay(d.BreakEnd)
	if err != nil {
		return httperr.ErrBusiness("invalid_break_end")
	}
	if bs >= be || bs < start || be > end {
		return httperr.ErrBusiness("break_outside_working_hours")
	}

	return nil
}

// HasBreak reports whether both ends of the break window are configured.
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != "" && d.BreakEnd != ""
}

// MinuteOfDay parses a "15:04" string into minutes since midnight.
func MinuteOfDay(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// At anchors a "15:04" wall-clock string onto the calendar date of ref in
// ref's location. Invalid strings anchor to midnight, matching how the
// stored hours are validated before they are written.
func At(hm string, ref time.Time) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	)
}

// ===============================
// Model conversion
// ===============================

// ClinicWeek builds the weekly schedule from per-weekday clinic rows.
func ClinicWeek(rows []models.ClinicHours) WeeklySchedule {
	week := make(WeeklySchedule, len(rows))
	for _, r := range rows {
		week[time.Weekday(r.Weekday)] = DaySchedule{
			Working:    r.Active,
			Start:      r.StartTime,
			End:        r.EndTime,
			BreakStart: r.BreakStart,
			BreakEnd:   r.BreakEnd,
		}
	}
	return week
}

// OverrideWeek builds the weekly schedule from employee override rows.
func OverrideWeek(rows []models.EmployeeSchedule) WeeklySchedule {
	if len(rows) == 0 {
		return nil
	}
	week := make(WeeklySchedule, len(rows))
	for _, r := range rows {
		week[time.Weekday(r.Weekday)] = DaySchedule{
			Working:    r.Active,
			Start:      r.StartTime,
			End:        r.EndTime,
			BreakStart: r.BreakStart,
			BreakEnd:   r.BreakEnd,
		}
	}
	return week
}
