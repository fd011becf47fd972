// Package summary aggregates per-hauler utilization statistics across the
// horizon (C6) from the driver's hauler-minutes matrix.
package summary

import "math"

// HaulerStats is one hauler's aggregate row. Hauler labels are re-indexed
// to start at 1, per spec.md 4.6.
type HaulerStats struct {
	Hauler                  int
	HoursWorked             int     // rounded to nearest integer
	DaysUtilized            int
	PercentageDaysUtilized  float64 // rounded to one decimal
	AverageHoursPerUtilized float64 // rounded to one decimal
}

// Summarize builds one row per hauler that worked at least one day, in
// ascending hauler-slot order, with hauler labels starting at 1. Haulers
// who never worked are excluded entirely.
func Summarize(haulerMinutes [][]float64, horizonDays int) []HaulerStats {
	var out []HaulerStats
	for k, row := range haulerMinutes {
		var totalMinutes float64
		daysUtilized := 0
		for _, minutes := range row {
			if minutes != 0 {
				totalMinutes += minutes
				daysUtilized++
			}
		}
		if daysUtilized == 0 {
			continue
		}

		totalHours := totalMinutes / 60
		pct := float64(daysUtilized) / float64(horizonDays) * 100
		avg := totalHours / float64(daysUtilized)

		out = append(out, HaulerStats{
			Hauler:                  k + 1,
			HoursWorked:             roundInt(totalHours),
			DaysUtilized:            daysUtilized,
			PercentageDaysUtilized:  roundDecimal(pct),
			AverageHoursPerUtilized: roundDecimal(avg),
		})
	}
	return out
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func roundDecimal(f float64) float64 {
	return math.Round(f*10) / 10
}
