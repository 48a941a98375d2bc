package attendance

import "testing"

func TestStatusTransitions(t *testing.T) {
	if err := CanCheckIn(StatusNotCheckedIn); err != nil {
		t.Errorf("CanCheckIn(not_checked_in) = %v, want nil", err)
	}
	if err := CanCheckIn(StatusCheckedIn); err == nil {
		t.Error("CanCheckIn(checked_in) should fail")
	}

	if err := CanCheckOut(StatusCheckedIn); err != nil {
		t.Errorf("CanCheckOut(checked_in) = %v, want nil", err)
	}
	if err := CanCheckOut(StatusCheckedOut); err == nil {
		t.Error("CanCheckOut(checked_out) should fail")
	}
}

func TestIsLeaveDay(t *testing.T) {
	if !IsLeaveDay(StatusOnLeave) || !IsLeaveDay(StatusAbsent) {
		t.Error("leave statuses should report as leave days")
	}
	if IsLeaveDay(StatusCheckedIn) {
		t.Error("checked_in is not a leave day")
	}
}

func TestStatusIsValid(t *testing.T) {
	valid := []Status{StatusNotCheckedIn, StatusCheckedIn, StatusCheckedOut, StatusAbsent, StatusOnLeave}
	for _, s := range valid {
		if !IsValid(s) {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	if IsValid(Status("vacationing")) {
		t.Error("unknown status should be invalid")
	}
}
