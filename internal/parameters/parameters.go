// Package parameters builds the per-day routing inputs (C1 in the design:
// location list, demand vector, travel matrix, route-count bound matrix,
// and subtour-elimination subsets) from the smoothed demand and site table.
package parameters

import (
	"fmt"
	"math"
	"sort"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/geo"
	"github.com/portomove/haulerplan/internal/model"
)

// Day is everything the router needs for one day's instance: the ordered
// location list (hub, customers..., end hub), the aligned demand vector,
// the travel matrix, the route-count bound matrix, and the subtour subsets.
type Day struct {
	Locations []model.Site // index 0 = start hub, last = end hub
	Demand    []float64    // aligned with Locations; hubs carry 0
	Travel    [][]int      // N x N one-way miles
	Bound     [][]int      // N x N arc-count cap
	Subsets   [][]int      // each entry is a set of customer indices (1..N-2)
}

// MaxDist is the single-hauler daily reach used to clamp the travel matrix:
// floor((L - handle) * rate / 2).
func MaxDist(cfg config.Fixed) float64 {
	return math.Floor((cfg.DayLength - cfg.Handle) * cfg.TravelRate / 2)
}

// Build derives one day's routing inputs. demand maps site name to signed
// demand for that day; zero-demand sites are dropped from the location
// list. startHub and endHub may be the same site (two-hub model collapsing
// to one depot).
func Build(cfg config.Fixed, sites *model.SiteTable, startHub, endHub string, demand map[string]float64) (Day, error) {
	start, ok := sites.Lookup(startHub)
	if !ok {
		return Day{}, fmt.Errorf("parameters: start hub %q not in site table", startHub)
	}
	end, ok := sites.Lookup(endHub)
	if !ok {
		return Day{}, fmt.Errorf("parameters: end hub %q not in site table", endHub)
	}

	// Deterministic order: customers sorted by name so repeated builds for
	// the same demand map produce identical location lists.
	names := make([]string, 0, len(demand))
	for name, d := range demand {
		if d != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	locations := make([]model.Site, 0, len(names)+2)
	demandVec := make([]float64, 0, len(names)+2)
	locations = append(locations, start)
	demandVec = append(demandVec, 0)
	for _, name := range names {
		site, ok := sites.Lookup(name)
		if !ok {
			return Day{}, fmt.Errorf("parameters: demanded site %q not in site table", name)
		}
		locations = append(locations, site)
		demandVec = append(demandVec, demand[name])
	}
	locations = append(locations, end)
	demandVec = append(demandVec, 0)

	if len(locations) > 10 {
		return Day{}, fmt.Errorf("parameters: %d locations exceeds the 10-location bound of the name-based variable decoder", len(locations))
	}

	n := len(locations)
	maxDist := MaxDist(cfg)
	if cfg.MaxDist > 0 {
		maxDist = cfg.MaxDist
	}

	travel := make([][]int, n)
	for i := range travel {
		travel[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			travel[i][j] = geo.TravelMiles(locations[i].Coordinate, locations[j].Coordinate, maxDist)
		}
	}

	bound := buildBound(demandVec, n)
	subsets := buildSubsets(demandVec, n)

	return Day{Locations: locations, Demand: demandVec, Travel: travel, Bound: bound, Subsets: subsets}, nil
}

// buildBound applies the route-count bound rules of the data model: opposite
// sign customer pairs cap at min(|D[i]|,|D[j]|); same-sign customer pairs
// cap at zero; any arc leaving the end hub caps at zero; arcs touching the
// start hub or entering the end hub are effectively unbounded.
func buildBound(demand []float64, n int) [][]int {
	const unbounded = 100
	endIdx := n - 1
	bound := make([][]int, n)
	for i := range bound {
		bound[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			switch {
			case i == endIdx:
				bound[i][j] = 0
			case i == 0 || j == endIdx:
				bound[i][j] = unbounded
			case isCustomer(i, n) && isCustomer(j, n):
				di, dj := demand[i], demand[j]
				if sign(di) != sign(dj) {
					bound[i][j] = minInt(absInt(di), absInt(dj))
				} else {
					bound[i][j] = 0
				}
			default:
				bound[i][j] = unbounded
			}
		}
	}
	return bound
}

// buildSubsets enumerates every even-cardinality customer subset of size
// >= 2 containing both signs of demand. The mask range already reaches
// mask == (1<<m)-1, so the full customer set is covered by the same loop
// whenever it qualifies — no separate full-set case is needed.
func buildSubsets(demand []float64, n int) [][]int {
	customers := make([]int, 0, n-2)
	for i := 1; i < n-1; i++ {
		customers = append(customers, i)
	}
	var subsets [][]int
	m := len(customers)
	for mask := 1; mask < (1 << m); mask++ {
		var subset []int
		for bit := 0; bit < m; bit++ {
			if mask&(1<<bit) != 0 {
				subset = append(subset, customers[bit])
			}
		}
		if len(subset) < 2 || len(subset)%2 != 0 {
			continue
		}
		if hasBothSigns(subset, demand) {
			subsets = append(subsets, subset)
		}
	}
	return subsets
}

func hasBothSigns(subset []int, demand []float64) bool {
	seenPos, seenNeg := false, false
	for _, idx := range subset {
		switch {
		case demand[idx] > 0:
			seenPos = true
		case demand[idx] < 0:
			seenNeg = true
		}
	}
	return seenPos && seenNeg
}

func isCustomer(i, n int) bool { return i > 0 && i < n-1 }

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func absInt(f float64) int {
	if f < 0 {
		return int(-f)
	}
	return int(f)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
