package attendance

import "time"

// ===============================
// Reconciliation
// ===============================

// Metrics are the derived minute counters for one work day. All values
// are non-negative; subtraction floors at zero.
type Metrics struct {
	LateMinutes       int `json:"late_minutes"`
	EarlyLeaveMinutes int `json:"early_leave_minutes"`
	OvertimeMinutes   int `json:"overtime_minutes"`
	TotalWorkMinutes  int `json:"total_work_minutes"`
}

// Reconcile derives the minute counters from the raw check-in/out
// instants and the resolved day schedule. It is pure and re-derivable at
// any time. Total work always counts from the actual timestamps, not the
// scheduled window. On a non-working day the scan still earns its actual
// worked time but no late/early/overtime counters. A missing check-out
// leaves everything but lateness at zero.
func Reconcile(checkIn time.Time, checkOut *time.Time, sched DaySchedule, loc *time.Location) Metrics {
	var m Metrics

	in := checkIn.In(loc)

	if sched.Working && sched.Start != "" {
		start := At(sched.Start, in)
		if in.After(start) {
			m.LateMinutes = minutesBetween(start, in)
		}
	}

	if checkOut == nil {
		return m
	}
	out := checkOut.In(loc)

	if sched.Working && sched.End != "" {
		end := At(sched.End, in)
		if out.Before(end) {
			m.EarlyLeaveMinutes = minutesBetween(out, end)
		}
		if out.After(end) {
			m.OvertimeMinutes = minutesBetween(end, out)
		}
	}

	total := minutesBetween(in, out)
	if sched.HasBreak() {
		total -= breakOverlapMinutes(in, out, sched)
	}
	if total < 0 {
		total = 0
	}
	m.TotalWorkMinutes = total

	return m
}

// breakOverlapMinutes returns only the portion of the break window that
// falls inside the actually worked interval.
func breakOverlapMinutes(in, out time.Time, sched DaySchedule) int {
	bs := At(sched.BreakStart, in)
	be := At(sched.BreakEnd, in)

	if bs.Before(in) {
		bs = in
	}
	if be.After(out) {
		be = out
	}
	if !bs.Before(be) {
		return 0
	}
	return minutesBetween(bs, be)
}

func minutesBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
