// Package config holds the fixed run parameters and validates them once at
// startup, the same fail-fast style as the teacher's database/table checks
// in main.go.
package config

import (
	"fmt"
	"time"
)

// Fixed is the set of parameters that hold constant across an entire
// horizon run.
type Fixed struct {
	TravelRate      float64 // miles per minute, converts travel miles to driving minutes
	DayLength       float64 // minutes available per hauler per day
	Handle          float64 // minutes consumed per stop
	FleetUpperBound int     // largest fleet size the driver will try
	Window          int     // days a drop-off/pickup may slide, per site flexibility rules
	MaxDist         float64 // optional clamp on travel-miles entries, 0 = computed from DayLength/Handle/TravelRate
	StartDate       time.Time
	EndDate         time.Time
	Periods         []int // candidate smoothing periods, e.g. {5}
}

// DefaultPeriods matches the original implementation's hard-coded single
// candidate; callers wanting the wider historical range pass Periods
// explicitly (spec.md's Open Question — see DESIGN.md).
var DefaultPeriods = []int{5}

// Validate checks the fail-fast invariants the rest of the planner assumes
// hold: a positive travel rate, a positive day length that leaves room for
// at least one stop, a positive fleet bound, a non-empty window, and a start
// date before the end date.
func (f Fixed) Validate() error {
	if f.TravelRate <= 0 {
		return fmt.Errorf("config: travel_rate must be positive, got %v", f.TravelRate)
	}
	if f.DayLength <= 0 {
		return fmt.Errorf("config: day_length must be positive, got %v", f.DayLength)
	}
	if f.Handle < 0 {
		return fmt.Errorf("config: handle must not be negative, got %v", f.Handle)
	}
	if f.DayLength <= f.Handle {
		return fmt.Errorf("config: day_length (%v) must exceed handle (%v)", f.DayLength, f.Handle)
	}
	if f.FleetUpperBound <= 0 {
		return fmt.Errorf("config: fleet_upper_bound must be positive, got %d", f.FleetUpperBound)
	}
	if f.Window <= 0 {
		return fmt.Errorf("config: window must be positive, got %d", f.Window)
	}
	if !f.EndDate.After(f.StartDate) {
		return fmt.Errorf("config: end_date (%v) must be after start_date (%v)", f.EndDate, f.StartDate)
	}
	if len(f.Periods) == 0 {
		return fmt.Errorf("config: periods must not be empty")
	}
	for _, p := range f.Periods {
		if p <= 0 {
			return fmt.Errorf("config: period candidates must be positive, got %d", p)
		}
	}
	return nil
}

// Days returns the number of calendar days in [StartDate, EndDate].
func (f Fixed) Days() int {
	return int(f.EndDate.Sub(f.StartDate).Hours()/24) + 1
}
