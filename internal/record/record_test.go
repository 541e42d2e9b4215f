package record

import (
	"encoding/json"
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 5, hour, min, 0, 0, time.UTC)
}

func TestNewManual(t *testing.T) {
	now := at(12, 0)
	r := NewManual("goal-1", now, 75, "  reading ", now)

	if r.ID == "" {
		t.Error("record should have an id")
	}
	if !r.IsManualEntry() || r.IsClockEntry() {
		t.Error("manual record misclassified")
	}
	if r.Notes != "reading" {
		t.Errorf("Notes = %q", r.Notes)
	}
	if r.DisplayTime() != "1 hour 15 minutes" {
		t.Errorf("DisplayTime() = %q", r.DisplayTime())
	}
}

func TestNewTimed(t *testing.T) {
	start := at(9, 0)
	end := at(10, 45).Add(30 * time.Second)
	r := NewTimed("goal-1", start, end, "", end)

	if r.IsManualEntry() {
		t.Error("timed record should not be a manual entry")
	}
	if r.IsClockEntry() {
		t.Error("timed record should not be a clock entry")
	}
	if r.DurationMinutes != 105 {
		t.Errorf("DurationMinutes = %d, expected 105", r.DurationMinutes)
	}
	if !r.Date.Equal(start) {
		t.Errorf("Date = %v, expected %v", r.Date, start)
	}
}

func TestClockLifecycle(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	r := NewClockSession("goal-1", day, at(9, 0), at(9, 0))

	if r.Session() != SessionClockedIn {
		t.Fatalf("Session() = %v, expected clocked in", r.Session())
	}
	if !r.IsClockEntry() || !r.HasClockedIn() || r.HasClockedOut() {
		t.Error("clock classification wrong after clock-in")
	}
	if r.WorkDurationMinutes != 0 {
		t.Errorf("WorkDurationMinutes = %d before clock-out", r.WorkDurationMinutes)
	}
	if r.ClockOutDisplay() != NotClocked {
		t.Errorf("ClockOutDisplay() = %q", r.ClockOutDisplay())
	}

	r.SetClockOut(at(17, 30))
	if r.Session() != SessionClockedOut {
		t.Errorf("Session() = %v, expected clocked out", r.Session())
	}
	if r.WorkDurationMinutes != 510 {
		t.Errorf("WorkDurationMinutes = %d, expected 510", r.WorkDurationMinutes)
	}
	if r.ClockInDisplay() != "09:00" || r.ClockOutDisplay() != "17:30" {
		t.Errorf("clock displays = %q / %q", r.ClockInDisplay(), r.ClockOutDisplay())
	}
	if r.WorkDurationDisplay() != "8 hours 30 minutes" {
		t.Errorf("WorkDurationDisplay() = %q", r.WorkDurationDisplay())
	}

	r.CreditWorkDuration()
	if r.DurationMinutes != 510 {
		t.Errorf("DurationMinutes = %d after credit, expected 510", r.DurationMinutes)
	}

	r.ClearClock()
	if r.ClockInTime != nil || r.ClockOutTime != nil || r.WorkDurationMinutes != 0 {
		t.Errorf("ClearClock() left %+v", r)
	}
	if r.DurationMinutes != 510 {
		t.Errorf("ClearClock() should keep DurationMinutes, got %d", r.DurationMinutes)
	}
	if r.Session() != SessionNone {
		t.Errorf("Session() = %v after reset", r.Session())
	}
	if r.IsClockEntry() || !r.HoldsClockSession() {
		t.Error("a reset record should still hold the day's clock session")
	}
}

func TestHoldsClockSession(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	manual := NewManual("goal-1", day, 30, "", day)
	if manual.HoldsClockSession() {
		t.Error("manual record should not hold a clock session")
	}
	manual.SetClockIn(at(9, 0))
	if !manual.ClockSession || !manual.HoldsClockSession() {
		t.Error("clocking in should mark the record as the clock session")
	}
}

func TestRecalculateWorkDuration(t *testing.T) {
	in := at(9, 0)

	tests := []struct {
		name     string
		in, out  *time.Time
		expected int
	}{
		{"both absent", nil, nil, 0},
		{"only clock-in", &in, nil, 0},
		{"only clock-out", nil, ptr(at(17, 0)), 0},
		{"normal span", &in, ptr(at(17, 30)), 510},
		{"partial minute floored", &in, ptr(at(9, 1).Add(59 * time.Second)), 1},
		{"equal times", &in, ptr(at(9, 0)), 0},
		{"out before in clamps to zero", &in, ptr(at(8, 0)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{ClockInTime: tt.in, ClockOutTime: tt.out, WorkDurationMinutes: 999}
			r.RecalculateWorkDuration()
			if r.WorkDurationMinutes != tt.expected {
				t.Errorf("WorkDurationMinutes = %d, expected %d", r.WorkDurationMinutes, tt.expected)
			}
		})
	}
}

func TestCreditWorkDuration_ZeroKeepsDuration(t *testing.T) {
	r := Record{DurationMinutes: 45}
	r.CreditWorkDuration()
	if r.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, expected 45", r.DurationMinutes)
	}
}

func TestIn(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	r := NewTimed("g", at(9, 0), at(10, 0), "", at(10, 0))
	converted := r.In(loc)

	if converted.StartTime.Location() != loc || converted.Date.Location() != loc {
		t.Error("In() did not convert locations")
	}
	if converted.StartTime.Hour() != 11 {
		t.Errorf("converted start hour = %d, expected 11", converted.StartTime.Hour())
	}
	if r.StartTime.Location() != time.UTC {
		t.Error("In() modified the original record")
	}
}

func TestRecordJSONOmitsAbsentTimes(t *testing.T) {
	r := NewManual("g", at(9, 0), 30, "", at(9, 0))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	for _, key := range []string{"start_time", "end_time", "clock_in_time", "clock_out_time", "notes", "clock_session"} {
		if _, ok := raw[key]; ok {
			t.Errorf("expected %q to be omitted", key)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
