package config

import (
	"testing"
	"time"
)

func validFixed() Fixed {
	return Fixed{
		TravelRate:      1,
		DayLength:       480,
		Handle:          30,
		FleetUpperBound: 5,
		Window:          3,
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Periods:         []int{5},
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validFixed().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_DayLengthMustExceedHandle(t *testing.T) {
	f := validFixed()
	f.DayLength = 20
	f.Handle = 30
	if err := f.Validate(); err == nil {
		t.Error("Validate() with day_length < handle should fail")
	}
}

func TestValidate_EndDateMustFollowStart(t *testing.T) {
	f := validFixed()
	f.EndDate = f.StartDate
	if err := f.Validate(); err == nil {
		t.Error("Validate() with end_date == start_date should fail")
	}
}

func TestValidate_EmptyPeriods(t *testing.T) {
	f := validFixed()
	f.Periods = nil
	if err := f.Validate(); err == nil {
		t.Error("Validate() with empty periods should fail")
	}
}

func TestDays_InclusiveCount(t *testing.T) {
	f := validFixed()
	if got := f.Days(); got != 5 {
		t.Errorf("Days() = %d, want 5 (Jan 1 through Jan 5 inclusive)", got)
	}
}
