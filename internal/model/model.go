// Package model holds the shared data types the planner passes between
// packages: sites, the demand matrix, and per-day location lists.
package model

import "github.com/portomove/haulerplan/internal/geo"

// Site is one fixed location haulers can be routed to — a customer drop
// point, a pickup point, or the hub itself.
type Site struct {
	Name       string
	Coordinate geo.Coordinate
	IsHub      bool
}

// SiteTable is the full collection of known sites, keyed by name.
type SiteTable struct {
	Sites []Site
	index map[string]int
}

// NewSiteTable builds a lookup table over sites, keeping their original
// order for deterministic iteration downstream.
func NewSiteTable(sites []Site) *SiteTable {
	t := &SiteTable{Sites: sites, index: make(map[string]int, len(sites))}
	for i, s := range sites {
		t.index[s.Name] = i
	}
	return t
}

// Lookup returns the site registered under name, and whether it exists.
func (t *SiteTable) Lookup(name string) (Site, bool) {
	i, ok := t.index[name]
	if !ok {
		return Site{}, false
	}
	return t.Sites[i], true
}

// DemandMatrix is signed daily demand per site: positive entries are
// pickups, negative entries are drop-offs, indexed [site][day].
type DemandMatrix struct {
	Sites []string
	Days  []string // column labels, e.g. calendar dates
	Value [][]float64
}

// NewDemandMatrix allocates a zeroed matrix for the given sites and days.
func NewDemandMatrix(sites, days []string) *DemandMatrix {
	rows := make([][]float64, len(sites))
	for i := range rows {
		rows[i] = make([]float64, len(days))
	}
	return &DemandMatrix{Sites: sites, Days: days, Value: rows}
}

