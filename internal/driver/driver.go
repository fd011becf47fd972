// Package driver implements the fleet-sizing driver (C5): for each day it
// tries increasing fleet sizes until the router first reports Optimal,
// records the result, then folds per-day records into horizon-wide
// artifacts for the summarizer.
package driver

import (
	"fmt"
	"log"
	"math"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/milp"
	"github.com/portomove/haulerplan/internal/model"
	"github.com/portomove/haulerplan/internal/parameters"
	"github.com/portomove/haulerplan/internal/recording"
	"github.com/portomove/haulerplan/internal/routing"
)

// Horizon is the terminal, driver-owned state that grows over the
// planning horizon: fleet-mileage matrix, hauler-minutes matrix, and the
// ordered route log. No state is shared between separate Run calls.
type Horizon struct {
	FleetMileage  [][]float64 // [fleetSize][day], fleetSize in [0, FleetUpperBound]
	HaulerMinutes [][]float64 // [hauler][day], hauler in [0, FleetUpperBound)
	Routes        []DayRoutes // ordered by day
}

// DayRoutes is one day's recorded routes, or an empty slice if the day had
// no demand or the search over fleet sizes never reached Optimal.
type DayRoutes struct {
	Day       string
	FleetSize int
	Routes    []recording.HaulerRoute
}

// Run executes the per-day loop over every day in the smoothed demand
// frame, followed by implicit accumulation of FM/HM/RL. sites must contain
// both hub entries named by startHub/endHub.
func Run(cfg config.Fixed, sites *model.SiteTable, startHub, endHub string, demand *model.DemandMatrix) (Horizon, error) {
	numDays := len(demand.Days)
	h := Horizon{
		FleetMileage:  make([][]float64, cfg.FleetUpperBound+1),
		HaulerMinutes: make([][]float64, cfg.FleetUpperBound),
		Routes:        make([]DayRoutes, numDays),
	}
	for f := range h.FleetMileage {
		h.FleetMileage[f] = make([]float64, numDays)
	}
	for k := range h.HaulerMinutes {
		h.HaulerMinutes[k] = make([]float64, numDays)
	}

	for d, label := range demand.Days {
		h.Routes[d] = DayRoutes{Day: label}

		demandForDay := make(map[string]float64)
		var pickupTotal float64
		for i, site := range demand.Sites {
			v := demand.Value[i][d]
			if v == 0 {
				continue
			}
			demandForDay[site] = v
			if v > 0 {
				pickupTotal += v
			}
		}

		if len(demandForDay) == 0 {
			continue // FM/HM already zero-initialized; no routes to log
		}

		upper := int(math.Min(pickupTotal, float64(cfg.FleetUpperBound)))
		solved := false

		for fleetSize := 0; fleetSize <= upper; fleetSize++ {
			day, err := parameters.Build(cfg, sites, startHub, endHub, demandForDay)
			if err != nil {
				return Horizon{}, fmt.Errorf("driver: day %s: %w", label, err)
			}

			result, err := routing.Solve(cfg, day, fleetSize)
			if err != nil {
				return Horizon{}, fmt.Errorf("driver: day %s fleet size %d: %w", label, fleetSize, err)
			}

			if result.Status != milp.Optimal {
				h.FleetMileage[fleetSize][d] = recording.Sentinel
				continue
			}

			record := recording.Record(cfg, day, result, fleetSize)
			recording.PropagateMileage(h.FleetMileage, d, fleetSize, cfg.FleetUpperBound, record.Mileage)
			for k, minutes := range record.Minutes {
				h.HaulerMinutes[k][d] = minutes
			}
			h.Routes[d].FleetSize = fleetSize
			h.Routes[d].Routes = record.Routes
			solved = true
			break
		}

		if !solved {
			log.Printf("[driver] day %s: no fleet size up to %d reached Optimal", label, upper)
			for f := 0; f <= cfg.FleetUpperBound; f++ {
				h.FleetMileage[f][d] = recording.ExhaustedSentinel
			}
		}
	}

	return h, nil
}
