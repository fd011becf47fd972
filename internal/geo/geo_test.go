package geo

import (
	"math"
	"testing"
)

func TestTravelMiles_SamePoint(t *testing.T) {
	p := Coordinate{Lat: 41.15, Long: -8.61}
	if got := TravelMiles(p, p, 0); got != 0 {
		t.Errorf("TravelMiles(p, p) = %d, want 0", got)
	}
}

func TestTravelMiles_KnownOffset(t *testing.T) {
	a := Coordinate{Lat: 0, Long: 0}
	b := Coordinate{Lat: 1, Long: 1}
	want := int(math.Floor(69 + 53))
	if got := TravelMiles(a, b, 0); got != want {
		t.Errorf("TravelMiles(a, b) = %d, want %d", got, want)
	}
}

func TestTravelMiles_ClampsAboveMax(t *testing.T) {
	a := Coordinate{Lat: 0, Long: 0}
	b := Coordinate{Lat: 5, Long: 5}
	if got := TravelMiles(a, b, 100); got != 100 {
		t.Errorf("TravelMiles with maxDist=100 = %d, want 100", got)
	}
}

func TestTravelMiles_DoesNotRaiseBelowMax(t *testing.T) {
	a := Coordinate{Lat: 0, Long: 0}
	b := Coordinate{Lat: 0.1, Long: 0.1}
	got := TravelMiles(a, b, 1000)
	if got >= 1000 {
		t.Errorf("TravelMiles with a generous maxDist should not be raised to it, got %d", got)
	}
}

func TestHaversineMiles_SamePoint(t *testing.T) {
	p := Coordinate{Lat: 41.15, Long: -8.61}
	if got := HaversineMiles(p, p); got > 1e-9 {
		t.Errorf("HaversineMiles(p, p) = %v, want ~0", got)
	}
}
