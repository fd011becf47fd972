// Package recording decodes a router Result into mileage, per-hauler
// working minutes, and a human-readable route log (C3). It carries
// structured (from, to, hauler) handles throughout rather than recovering
// them by parsing a solver variable name, avoiding the source's single-digit
// positional-slicing bound.
package recording

import (
	"fmt"
	"math"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/parameters"
	"github.com/portomove/haulerplan/internal/routing"
)

// Sentinel is written to the fleet-mileage matrix for an infeasible or
// undefined fleet size, preceding the first size that solves to Optimal.
const Sentinel = math.MaxFloat64 // stands in for NaN-as-marker without NaN comparison pitfalls

// ExhaustedSentinel is written to FM when no fleet size up to the day's
// upper bound reaches Optimal (spec's "large negative sentinel").
const ExhaustedSentinel = -9999999

// RouteLeg is one (from, to) arc a hauler traverses, with its traversal
// count and mileage.
type RouteLeg struct {
	From, To string // labeled: "hub" or "site <id>"
	Count    int
	Miles    int
}

// HaulerRoute is one hauler's ordered route for a day.
type HaulerRoute struct {
	Hauler int
	Legs   []RouteLeg
}

// DayRecord is everything the recorder extracts from one day's Optimal
// router result.
type DayRecord struct {
	Mileage float64
	Minutes map[int]float64 // hauler -> working minutes
	Routes  []HaulerRoute   // ordered by hauler index
}

// Record decodes an Optimal result for a day into a DayRecord. Callers must
// only call this on Status == Optimal; mileage propagation across fleet
// sizes (FM[f',d] = objective for f' >= f) is the driver's responsibility,
// not this function's.
func Record(cfg config.Fixed, day parameters.Day, result routing.Result, fleetSize int) DayRecord {
	labels := locationLabels(day)

	minutes := make(map[int]float64, fleetSize)
	arcsByHauler := make(map[int][]routing.Arc)
	for arc := range result.Counts {
		arcsByHauler[arc.Hauler] = append(arcsByHauler[arc.Hauler], arc)
	}

	routes := make([]HaulerRoute, 0, fleetSize)
	for k := 0; k < fleetSize; k++ {
		arcs := arcsByHauler[k]
		if len(arcs) == 0 {
			continue
		}

		var haulerMinutes float64
		var legs []RouteLeg
		for _, arc := range arcs {
			count := result.Counts[arc]
			if count == 0 {
				continue
			}
			if labels[arc.From] == labels[arc.To] {
				continue // idle start-hub -> end-hub arc: no travel, no handle, no route-log entry
			}
			haulerMinutes += float64(count) * (float64(day.Travel[arc.From][arc.To])/cfg.TravelRate + cfg.Handle)
			legs = append(legs, RouteLeg{
				From:  labels[arc.From],
				To:    labels[arc.To],
				Count: count,
				Miles: day.Travel[arc.From][arc.To] * count,
			})
		}
		// One less reload than arcs traversed: the first or last handle
		// falls outside the shift, per spec.md 4.3/9 (preserved unconditionally).
		haulerMinutes -= cfg.Handle
		minutes[k] = haulerMinutes
		routes = append(routes, HaulerRoute{Hauler: k, Legs: legs})
	}

	return DayRecord{Mileage: result.Objective, Minutes: minutes, Routes: routes}
}

// locationLabels maps each location index to its display label: "hub" for
// the start and end hub indices, "site <id>" otherwise.
func locationLabels(day parameters.Day) []string {
	n := len(day.Locations)
	labels := make([]string, n)
	for i, site := range day.Locations {
		if i == 0 || i == n-1 {
			labels[i] = "hub"
		} else {
			labels[i] = fmt.Sprintf("site %s", site.Name)
		}
	}
	return labels
}

// PropagateMileage fills FM[f', d] with objective for every f' from f up to
// fleetUpperBound inclusive: a larger fleet cannot do strictly worse on this
// minimization problem with relaxed capacity.
func PropagateMileage(fm [][]float64, day, f, fleetUpperBound int, objective float64) {
	for fp := f; fp <= fleetUpperBound; fp++ {
		fm[fp][day] = objective
	}
}
