package driver

import (
	"testing"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/geo"
	"github.com/portomove/haulerplan/internal/model"
	"github.com/portomove/haulerplan/internal/recording"
)

func testSites() *model.SiteTable {
	return model.NewSiteTable([]model.Site{
		{Name: "hub", Coordinate: geo.Coordinate{Lat: 0, Long: 0}, IsHub: true},
		{Name: "a", Coordinate: geo.Coordinate{Lat: 0.05, Long: 0.05}},
		{Name: "b", Coordinate: geo.Coordinate{Lat: 0.06, Long: 0.06}},
	})
}

func testConfig() config.Fixed {
	return config.Fixed{TravelRate: 1, DayLength: 480, Handle: 30, FleetUpperBound: 3, Window: 3}
}

func TestRun_NoDemandScenario(t *testing.T) {
	days := []string{"d0", "d1", "d2", "d3", "d4"}
	demand := model.NewDemandMatrix([]string{"a", "b"}, days)
	// all zeros: scenario 1 of spec.md 8

	h, err := Run(testConfig(), testSites(), "hub", "hub", demand)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for f, row := range h.FleetMileage {
		for d, miles := range row {
			if miles != 0 {
				t.Errorf("FleetMileage[%d][%d] = %v, want 0 for an all-zero demand horizon", f, d, miles)
			}
		}
	}
	for k, row := range h.HaulerMinutes {
		for d, m := range row {
			if m != 0 {
				t.Errorf("HaulerMinutes[%d][%d] = %v, want 0", k, d, m)
			}
		}
	}
	for d, r := range h.Routes {
		if len(r.Routes) != 0 {
			t.Errorf("day %d has %d routes, want 0", d, len(r.Routes))
		}
	}
}

func TestRun_TwoSiteRoundTrip(t *testing.T) {
	days := []string{"d0"}
	demand := model.NewDemandMatrix([]string{"a", "b"}, days)
	demand.Value[0][0] = 1  // pickup at a
	demand.Value[1][0] = -1 // drop-off at b

	h, err := Run(testConfig(), testSites(), "hub", "hub", demand)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.Routes[0].FleetSize != 1 {
		t.Errorf("fleet size = %d, want 1 for a single opposite-sign pair within shift length", h.Routes[0].FleetSize)
	}
	if len(h.Routes[0].Routes) != 1 {
		t.Fatalf("want exactly one hauler's route, got %d", len(h.Routes[0].Routes))
	}
}

func TestRun_MileageMonotonicity(t *testing.T) {
	days := []string{"d0"}
	demand := model.NewDemandMatrix([]string{"a", "b"}, days)
	demand.Value[0][0] = 1
	demand.Value[1][0] = -1

	h, err := Run(testConfig(), testSites(), "hub", "hub", demand)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	isSentinel := func(v float64) bool { return v == recording.Sentinel || v == recording.ExhaustedSentinel }
	for f := 0; f < testConfig().FleetUpperBound; f++ {
		a, b := h.FleetMileage[f][0], h.FleetMileage[f+1][0]
		if isSentinel(a) || isSentinel(b) {
			continue // sentinel, not a recorded optimal value
		}
		if a < b {
			t.Errorf("FleetMileage[%d] = %v < FleetMileage[%d] = %v, want monotonically non-increasing", f, a, f+1, b)
		}
	}
}
