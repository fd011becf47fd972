// Package input decodes the demand_matrix and site_table external inputs
// (spec.md's 6. EXTERNAL INTERFACES), using plain encoding/json the same
// way the teacher's collector.go decodes FIWARE entity payloads.
package input

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/portomove/haulerplan/internal/geo"
	"github.com/portomove/haulerplan/internal/model"
)

// siteTableFile is the on-disk shape of site_table: a flat list of sites
// plus the two hub names (which may coincide, per the two-hub model).
type siteTableFile struct {
	StartHub string     `json:"start_hub"`
	EndHub   string     `json:"end_hub"`
	Sites    []siteFile `json:"sites"`
}

type siteFile struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// LoadSiteTable decodes a site_table JSON file into a SiteTable plus the
// configured start/end hub names. Coordinates must be present for every
// site referenced by the demand matrix, checked at Build time rather than
// here — the table alone can't know which sites matter.
func LoadSiteTable(path string) (table *model.SiteTable, startHub, endHub string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("read site table: %w", err)
	}
	var parsed siteTableFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, "", "", fmt.Errorf("parse site table: %w", err)
	}
	if parsed.StartHub == "" || parsed.EndHub == "" {
		return nil, "", "", fmt.Errorf("site table: start_hub and end_hub are required")
	}

	sites := make([]model.Site, 0, len(parsed.Sites))
	for _, s := range parsed.Sites {
		if s.Name == "" {
			return nil, "", "", fmt.Errorf("site table: site entry missing name")
		}
		sites = append(sites, model.Site{
			Name:       s.Name,
			Coordinate: geo.Coordinate{Lat: s.Lat, Long: s.Long},
			IsHub:      s.Name == parsed.StartHub || s.Name == parsed.EndHub,
		})
	}
	return model.NewSiteTable(sites), parsed.StartHub, parsed.EndHub, nil
}

// demandMatrixFile is the on-disk shape of demand_matrix: a shared list of
// ISO date column labels and one signed-demand row per site.
type demandMatrixFile struct {
	Days  []string             `json:"days"`
	Sites map[string][]float64 `json:"sites"`
}

// LoadDemandMatrix decodes a demand_matrix JSON file. Every site's row must
// have exactly len(Days) entries; a malformed row is a structural input
// error that fails fast, per spec.md 7.
func LoadDemandMatrix(path string) (*model.DemandMatrix, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demand matrix: %w", err)
	}
	var parsed demandMatrixFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse demand matrix: %w", err)
	}
	if len(parsed.Days) == 0 {
		return nil, fmt.Errorf("demand matrix: no days")
	}
	for _, d := range parsed.Days {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("demand matrix: day %q is not an ISO date: %w", d, err)
		}
	}

	names := make([]string, 0, len(parsed.Sites))
	for name := range parsed.Sites {
		names = append(names, name)
	}
	sort.Strings(names)

	matrix := model.NewDemandMatrix(names, parsed.Days)
	for i, name := range names {
		row := parsed.Sites[name]
		if len(row) != len(parsed.Days) {
			return nil, fmt.Errorf("demand matrix: site %q has %d entries, want %d", name, len(row), len(parsed.Days))
		}
		copy(matrix.Value[i], row)
	}
	return matrix, nil
}
