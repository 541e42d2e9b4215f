package goal

import (
	"errors"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	now := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	g := Default(now)

	if g.WeeklyTargetMinutes != 2400 {
		t.Errorf("WeeklyTargetMinutes = %d, expected 2400", g.WeeklyTargetMinutes)
	}
	if g.WeekStartDay != Monday {
		t.Errorf("WeekStartDay = %v, expected Monday", g.WeekStartDay)
	}
	if !g.IsActive {
		t.Error("default goal should be active")
	}
	if g.Title != DefaultTitle {
		t.Errorf("Title = %q, expected %q", g.Title, DefaultTitle)
	}
	if g.ID == "" {
		t.Error("default goal should have an id")
	}
	if !g.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, expected %v", g.CreatedAt, now)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("default goal invalid: %v", err)
	}
}

func TestNew_UniqueIDsAndTitle(t *testing.T) {
	a := New("  ", 60, Sunday, time.Now())
	b := New("Deep work", 60, Sunday, time.Now())

	if a.ID == b.ID {
		t.Error("goals should get distinct ids")
	}
	if a.Title != DefaultTitle {
		t.Errorf("blank title should fall back to %q, got %q", DefaultTitle, a.Title)
	}
	if b.Title != "Deep work" {
		t.Errorf("Title = %q", b.Title)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  int
		start   WeekDay
		wantErr error
	}{
		{"valid", 1, Friday, nil},
		{"zero target", 0, Monday, ErrInvalidTarget},
		{"negative target", -30, Monday, ErrInvalidTarget},
		{"weekday too large", 60, WeekDay(7), ErrInvalidWeekDay},
		{"weekday negative", 60, WeekDay(-1), ErrInvalidWeekDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("x", tt.target, tt.start, time.Now())
			err := g.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekDay(t *testing.T) {
	for _, d := range AllWeekDays() {
		if d.Weekday() != time.Weekday(d) {
			t.Errorf("%v.Weekday() = %v", d, d.Weekday())
		}
		if d.String() != d.Weekday().String() {
			t.Errorf("%v.String() = %q, expected %q", int(d), d.String(), d.Weekday().String())
		}
	}
	if Monday.ShortName() != "Mon" {
		t.Errorf("ShortName() = %q", Monday.ShortName())
	}
	if WeekDay(9).String() != "WeekDay(9)" {
		t.Errorf("invalid String() = %q", WeekDay(9).String())
	}
}

func TestParseWeekDay(t *testing.T) {
	tests := []struct {
		input   string
		want    WeekDay
		wantErr bool
	}{
		{"monday", Monday, false},
		{"Sunday", Sunday, false},
		{" SAT ", Saturday, false},
		{"wed", Wednesday, false},
		{"someday", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekDay(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWeekDay) {
					t.Errorf("ParseWeekDay(%q) error = %v, expected ErrInvalidWeekDay", tt.input, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseWeekDay(%q) = %v, %v; expected %v", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	g := New("x", 2400, Monday, time.Now())

	tests := []struct {
		name          string
		minutes       int
		wantPercent   float64
		wantRemaining int
		wantReached   bool
		wantFraction  float64
	}{
		{"nothing yet", 0, 0, 2400, false, 0},
		{"half", 1200, 50, 1200, false, 0.5},
		{"exactly reached", 2400, 100, 0, true, 1},
		{"over target", 3000, 125, 0, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := g.Progress(tt.minutes)
			if p.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, expected %v", p.Percent, tt.wantPercent)
			}
			if p.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %d, expected %d", p.Remaining, tt.wantRemaining)
			}
			if p.Reached != tt.wantReached {
				t.Errorf("Reached = %v, expected %v", p.Reached, tt.wantReached)
			}
			if p.Fraction() != tt.wantFraction {
				t.Errorf("Fraction() = %v, expected %v", p.Fraction(), tt.wantFraction)
			}
		})
	}
}
