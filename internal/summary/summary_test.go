package summary

import "testing"

func TestSummarize_ExcludesIdleHaulers(t *testing.T) {
	minutes := [][]float64{
		{60, 0, 60}, // hauler 0 worked 2 of 3 days
		{0, 0, 0},   // hauler 1 never worked
	}
	stats := Summarize(minutes, 3)
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1 (idle hauler excluded)", len(stats))
	}
	if stats[0].Hauler != 1 {
		t.Errorf("Hauler = %d, want 1 (re-indexed to start at 1)", stats[0].Hauler)
	}
}

func TestSummarize_Arithmetic(t *testing.T) {
	minutes := [][]float64{
		{120, 120, 0, 0}, // 2 days, 240 minutes = 4 hours
	}
	stats := Summarize(minutes, 4)
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1", len(stats))
	}
	s := stats[0]
	if s.HoursWorked != 4 {
		t.Errorf("HoursWorked = %d, want 4", s.HoursWorked)
	}
	if s.DaysUtilized != 2 {
		t.Errorf("DaysUtilized = %d, want 2", s.DaysUtilized)
	}
	if s.PercentageDaysUtilized != 50.0 {
		t.Errorf("PercentageDaysUtilized = %v, want 50.0", s.PercentageDaysUtilized)
	}
	if s.AverageHoursPerUtilized != 2.0 {
		t.Errorf("AverageHoursPerUtilized = %v, want 2.0", s.AverageHoursPerUtilized)
	}
}

func TestSummarize_NoHaulersWorked(t *testing.T) {
	minutes := [][]float64{{0, 0}, {0, 0}}
	stats := Summarize(minutes, 2)
	if len(stats) != 0 {
		t.Errorf("len(stats) = %d, want 0", len(stats))
	}
}
