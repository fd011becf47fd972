package routing

import (
	"testing"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/geo"
	"github.com/portomove/haulerplan/internal/milp"
	"github.com/portomove/haulerplan/internal/model"
	"github.com/portomove/haulerplan/internal/parameters"
)

func testCfg() config.Fixed {
	return config.Fixed{TravelRate: 1, DayLength: 480, Handle: 30, FleetUpperBound: 5, Window: 3}
}

func testSites() *model.SiteTable {
	return model.NewSiteTable([]model.Site{
		{Name: "hub", Coordinate: geo.Coordinate{Lat: 0, Long: 0}, IsHub: true},
		{Name: "a", Coordinate: geo.Coordinate{Lat: 0.02, Long: 0.02}},
		{Name: "b", Coordinate: geo.Coordinate{Lat: 0.03, Long: 0.03}},
	})
}

func TestSolve_ZeroFleetIsInfeasibleWithDemand(t *testing.T) {
	day, err := parameters.Build(testCfg(), testSites(), "hub", "hub", map[string]float64{"a": 1, "b": -1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	result, err := Solve(testCfg(), day, 0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Status != milp.Infeasible {
		t.Errorf("Status = %v, want Infeasible for fleet size 0 with nonzero demand", result.Status)
	}
}

func TestSolve_DemandSatisfaction(t *testing.T) {
	day, err := parameters.Build(testCfg(), testSites(), "hub", "hub", map[string]float64{"a": 1, "b": -1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	result, err := Solve(testCfg(), day, 1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Status != milp.Optimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}

	for customer := 1; customer < len(day.Locations)-1; customer++ {
		var departures int
		for arc, count := range result.Counts {
			if arc.From == customer {
				departures += count
			}
		}
		want := int(day.Demand[customer])
		if want < 0 {
			want = -want
		}
		if departures != want {
			t.Errorf("customer %d departures = %d, want %d", customer, departures, want)
		}
	}
}

func TestSolve_FlowBalance(t *testing.T) {
	day, err := parameters.Build(testCfg(), testSites(), "hub", "hub", map[string]float64{"a": 1, "b": -1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	result, err := Solve(testCfg(), day, 1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result.Status != milp.Optimal {
		t.Fatalf("Status = %v, want Optimal", result.Status)
	}

	n := len(day.Locations)
	for h := 1; h < n-1; h++ {
		var in, out int
		for arc, count := range result.Counts {
			if arc.To == h {
				in += count
			}
			if arc.From == h {
				out += count
			}
		}
		if in != out {
			t.Errorf("customer %d: inflow %d != outflow %d, want equal", h, in, out)
		}
	}
}
