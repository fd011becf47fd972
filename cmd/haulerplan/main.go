// Command haulerplan sizes and schedules an equipment-hauler fleet over a
// planning horizon: it smooths demand, solves the daily routing problem at
// increasing fleet sizes, and reports per-hauler utilization. Flag parsing
// and fail-fast config validation follow the same style as the teacher
// worker's main.go.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/driver"
	"github.com/portomove/haulerplan/internal/input"
	"github.com/portomove/haulerplan/internal/report"
	"github.com/portomove/haulerplan/internal/smoothing"
	"github.com/portomove/haulerplan/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		log.Println("[haulerplan] received shutdown signal")
		cancel()
	}()

	var err error
	switch os.Args[1] {
	case "plan":
		err = runPlan(ctx, os.Args[2:])
	case "smooth-only":
		err = runSmoothOnly(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("[haulerplan] %v", err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: haulerplan <plan|smooth-only> [flags]")
}

type commonFlags struct {
	demandPath string
	sitePath   string
	rate       float64
	dayLength  float64
	handle     float64
	fleetUpper int
	window     int
	maxDist    float64
	periods    string
	startDate  string
	endDate    string
}

func bindCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.demandPath, "demand", "", "path to demand_matrix JSON")
	fs.StringVar(&f.sitePath, "sites", "", "path to site_table JSON")
	fs.Float64Var(&f.rate, "rate", 1.0, "travel rate, miles per minute")
	fs.Float64Var(&f.dayLength, "day-length", 480, "shift length in minutes")
	fs.Float64Var(&f.handle, "handle", 30, "load/unload minutes per stop")
	fs.IntVar(&f.fleetUpper, "fleet-upper-bound", 10, "largest fleet size to try")
	fs.IntVar(&f.window, "window", 3, "flexibility window in days")
	fs.Float64Var(&f.maxDist, "max-dist", 0, "optional clamp on travel-miles entries, 0 = computed from day-length/handle/rate")
	fs.StringVar(&f.periods, "periods", "5", "comma-separated candidate smoothing periods")
	fs.StringVar(&f.startDate, "start-date", "", "ISO start date, defaults to the demand matrix's first day")
	fs.StringVar(&f.endDate, "end-date", "", "ISO end date, defaults to the demand matrix's last day")
	return f
}

func (f *commonFlags) toConfig(days []string) (config.Fixed, error) {
	if f.demandPath == "" || f.sitePath == "" {
		return config.Fixed{}, fmt.Errorf("-demand and -sites are required")
	}
	periods, err := parsePeriods(f.periods)
	if err != nil {
		return config.Fixed{}, err
	}

	startDate := f.startDate
	if startDate == "" {
		startDate = days[0]
	}
	if !containsDay(days, startDate) {
		return config.Fixed{}, fmt.Errorf("start-date %q is not a column of the demand matrix", startDate)
	}
	endDate := f.endDate
	if endDate == "" {
		endDate = days[len(days)-1]
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return config.Fixed{}, fmt.Errorf("parse start-date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return config.Fixed{}, fmt.Errorf("parse end-date: %w", err)
	}

	cfg := config.Fixed{
		TravelRate:      f.rate,
		DayLength:       f.dayLength,
		Handle:          f.handle,
		FleetUpperBound: f.fleetUpper,
		Window:          f.window,
		MaxDist:         f.maxDist,
		StartDate:       start,
		EndDate:         end,
		Periods:         periods,
	}
	if err := cfg.Validate(); err != nil {
		return config.Fixed{}, err
	}
	return cfg, nil
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func parsePeriods(csv string) ([]int, error) {
	var out []int
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if i > start {
				var v int
				if _, err := fmt.Sscanf(csv[start:i], "%d", &v); err != nil {
					return nil, fmt.Errorf("parse periods %q: %w", csv, err)
				}
				out = append(out, v)
			}
			start = i + 1
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("periods must not be empty")
	}
	return out, nil
}

func runSmoothOnly(args []string) error {
	fs := flag.NewFlagSet("smooth-only", flag.ExitOnError)
	f := bindCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := input.LoadDemandMatrix(f.demandPath)
	if err != nil {
		return err
	}
	cfg, err := f.toConfig(raw.Days)
	if err != nil {
		return err
	}

	log.Printf("[smooth] smoothing %d sites over %d days, periods %v", len(raw.Sites), len(raw.Days), cfg.Periods)
	result, err := smoothing.Smooth(cfg, raw)
	if err != nil {
		return fmt.Errorf("smooth: %w", err)
	}
	log.Printf("[smooth] chose period %d, variance %.2f", result.Period, result.Variance)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Demand)
}

func runPlan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	f := bindCommonFlags(fs)
	dbURL := fs.String("database-url", os.Getenv("DATABASE_URL"), "optional Postgres DSN for persistence")
	runName := fs.String("run-name", "", "optional run name, persisted with the horizon")
	runAffiliation := fs.String("run-affiliation", "", "optional run affiliation, persisted with the horizon")
	runNote := fs.String("run-note", "", "optional free-text note, persisted with the horizon")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sites, startHub, endHub, err := input.LoadSiteTable(f.sitePath)
	if err != nil {
		return err
	}
	raw, err := input.LoadDemandMatrix(f.demandPath)
	if err != nil {
		return err
	}
	cfg, err := f.toConfig(raw.Days)
	if err != nil {
		return err
	}

	log.Printf("[route] smoothing demand over %d days", len(raw.Days))
	smoothed, err := smoothing.Smooth(cfg, raw)
	if err != nil {
		return fmt.Errorf("smooth: %w", err)
	}
	log.Printf("[route] smoothed with period %d, variance %.2f", smoothed.Period, smoothed.Variance)

	log.Printf("[route] routing %d days with fleet upper bound %d", len(raw.Days), cfg.FleetUpperBound)
	horizon, err := driver.Run(cfg, sites, startHub, endHub, smoothed.Demand)
	if err != nil {
		return fmt.Errorf("run horizon: %w", err)
	}

	rep := report.Build(raw, smoothed.Demand, horizon)
	log.Printf("[route] total fleet miles: %.0f", rep.TotalFleetMiles)
	for _, hs := range rep.HaulerSummary {
		log.Printf("[report] hauler %d: %d hrs, %d days, %.1f%% utilized, %.1f hrs/day",
			hs.Hauler, hs.HoursWorked, hs.DaysUtilized, hs.PercentageDaysUtilized, hs.AverageHoursPerUtilized)
	}

	if *dbURL != "" {
		pool, err := store.NewPool(ctx, *dbURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		log.Printf("[route] database: %s", store.MaskDatabaseURL(*dbURL))

		runID := fmt.Sprintf("run-%d", time.Now().UTC().Unix())
		meta := store.RunMetadata{ID: runID, Name: *runName, Affiliation: *runAffiliation, Note: *runNote, StartedAt: time.Now().UTC()}
		if err := store.SaveRun(ctx, pool, meta); err != nil {
			return err
		}
		if err := store.SaveHorizon(ctx, pool, runID, raw.Days, horizon); err != nil {
			return err
		}
		if err := report.Archive(ctx, runID, horizon); err != nil {
			log.Printf("[route] archive failed: %v", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
