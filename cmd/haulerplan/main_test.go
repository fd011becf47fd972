package main

import "testing"

func baseFlags() *commonFlags {
	return &commonFlags{
		demandPath: "demand.json",
		sitePath:   "sites.json",
		rate:       1,
		dayLength:  480,
		handle:     30,
		fleetUpper: 5,
		window:     3,
		periods:    "5",
	}
}

func TestToConfig_RejectsStartDateNotInDemandColumns(t *testing.T) {
	f := baseFlags()
	f.startDate = "2025-01-10"
	days := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	if _, err := f.toConfig(days); err == nil {
		t.Error("toConfig() with start-date outside the demand matrix's columns should fail")
	}
}

func TestToConfig_DefaultsStartDateToFirstColumn(t *testing.T) {
	f := baseFlags()
	days := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	cfg, err := f.toConfig(days)
	if err != nil {
		t.Fatalf("toConfig: %v", err)
	}
	if got := cfg.StartDate.Format("2006-01-02"); got != days[0] {
		t.Errorf("StartDate = %s, want %s", got, days[0])
	}
}

func TestToConfig_AcceptsStartDateInDemandColumns(t *testing.T) {
	f := baseFlags()
	f.startDate = "2025-01-02"
	days := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	if _, err := f.toConfig(days); err != nil {
		t.Errorf("toConfig() with valid start-date: %v", err)
	}
}

func TestContainsDay(t *testing.T) {
	days := []string{"2025-01-01", "2025-01-02"}
	if !containsDay(days, "2025-01-01") {
		t.Error("containsDay should find an exact match")
	}
	if containsDay(days, "2025-01-03") {
		t.Error("containsDay should not find a day outside the list")
	}
}
