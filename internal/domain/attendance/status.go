package attendance

import "github.com/cliniqa/clinic-attendance/internal/httperr"

// ===============================
// Attendance Status
// ===============================

type Status string

const (
	StatusNotCheckedIn Status = "not_checked_in"
	StatusCheckedIn    Status = "checked_in"
	StatusCheckedOut   Status = "checked_out"

	// Set by the external leave-management flow, never by the scan path.
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

// ===============================
// Transitions
// ===============================

// The scan path only ever drives not_checked_in -> checked_in and
// checked_in -> checked_out. Everything else is administrative.

func CanCheckIn(current Status) error {
	if current != StatusNotCheckedIn {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCheckOut(current Status) error {
	if current != StatusCheckedIn {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// IsLeaveDay reports whether the day was already claimed by the external
// leave flow; a scan on such a day is rejected rather than merged.
func IsLeaveDay(current Status) bool {
	return current == StatusAbsent || current == StatusOnLeave
}

// IsValid reports whether s is one of the known status values, used when
// accepting administrative edits.
func IsValid(s Status) bool {
	switch s {
	case StatusNotCheckedIn, StatusCheckedIn, StatusCheckedOut, StatusAbsent, StatusOnLeave:
		return true
	}
	return false
}
