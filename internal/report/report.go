// Package report assembles the horizon's human-facing output: side-by-side
// input/smoothed demand, per-hauler utilization, a columnar Parquet export
// of the route log (mirroring the teacher's ParquetPosition export), and a
// polyline encoder for a sequence of stop coordinates (mirroring the
// teacher's OTP-geometry encoding in cron_segments.go). Build does not
// attach encoded geometry to the route log.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"
	polyline "github.com/twpayne/go-polyline"

	"github.com/portomove/haulerplan/internal/driver"
	"github.com/portomove/haulerplan/internal/geo"
	"github.com/portomove/haulerplan/internal/model"
	"github.com/portomove/haulerplan/internal/summary"
)

// Report is the full horizon output: raw and smoothed demand side by side
// (views.py's end() renders both), the fleet-wide mileage total, the
// per-hauler daily-minutes series, and the utilization summary table.
type Report struct {
	InputDemand        *model.DemandMatrix
	SmoothedDemand     *model.DemandMatrix
	TotalFleetMiles    float64
	HaulerDailyMinutes map[int][]float64 // hauler -> minutes per day, 1-indexed hauler
	HaulerSummary      []summary.HaulerStats
}

// Build assembles a Report from a completed horizon run at the operational
// fleet size chosen each day. TotalFleetMiles sums the FleetMileage row for
// the fleet upper bound: propagation fills that row with the smallest
// feasible size's mileage for every solved day, and exhausted days carry a
// negative sentinel that the positive-only sum skips.
func Build(input, smoothed *model.DemandMatrix, h driver.Horizon) Report {
	var totalMiles float64
	for _, miles := range h.FleetMileage[len(h.FleetMileage)-1] {
		if miles > 0 {
			totalMiles += miles
		}
	}

	haulerSeries := make(map[int][]float64, len(h.HaulerMinutes))
	for k, row := range h.HaulerMinutes {
		hasWork := false
		for _, m := range row {
			if m != 0 {
				hasWork = true
				break
			}
		}
		if hasWork {
			haulerSeries[k+1] = append([]float64(nil), row...)
		}
	}

	return Report{
		InputDemand:        input,
		SmoothedDemand:     smoothed,
		TotalFleetMiles:    totalMiles,
		HaulerDailyMinutes: haulerSeries,
		HaulerSummary:      summary.Summarize(h.HaulerMinutes, len(h.Routes)),
	}
}

// ParquetRouteLeg is one (day, hauler, arc) row of the decoded route log —
// the routing detail's columnar export, shaped exactly like the teacher's
// ParquetPosition rows in cron_archive.go.
type ParquetRouteLeg struct {
	Day    string `parquet:"day"`
	Hauler int32  `parquet:"hauler"`
	From   string `parquet:"from_label"`
	To     string `parquet:"to_label"`
	Count  int32  `parquet:"count"`
	Miles  int32  `parquet:"miles"`
}

// WriteParquet serializes the horizon's route log to Parquet, one row per
// leg, the same parquet.NewGenericWriter usage as the teacher's archive job.
func WriteParquet(h driver.Horizon) ([]byte, int, error) {
	var rows []ParquetRouteLeg
	for _, dayRoutes := range h.Routes {
		for _, route := range dayRoutes.Routes {
			for _, leg := range route.Legs {
				rows = append(rows, ParquetRouteLeg{
					Day:    dayRoutes.Day,
					Hauler: int32(route.Hauler),
					From:   leg.From,
					To:     leg.To,
					Count:  int32(leg.Count),
					Miles:  int32(leg.Miles),
				})
			}
		}
	}

	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[ParquetRouteLeg](&buf)
	if _, err := writer.Write(rows); err != nil {
		return nil, 0, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, 0, fmt.Errorf("close parquet writer: %w", err)
	}
	return buf.Bytes(), len(rows), nil
}

// EncodeRoutePolyline encodes a hauler's ordered visiting sequence of site
// coordinates as a polyline string, the same twpayne/go-polyline encoding
// the teacher applies to OTP trip geometry.
func EncodeRoutePolyline(stops []geo.Coordinate) string {
	coords := make([][]float64, len(stops))
	for i, c := range stops {
		coords[i] = []float64{c.Lat, c.Long}
	}
	return string(polyline.EncodeCoords(coords))
}

// getR2Client mirrors the teacher's getR2Client: nil client if R2 env vars
// are unset, meaning archival is a purely optional step.
func getR2Client() (*s3.Client, string) {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	if endpoint == "" || accessKeyID == "" || secretAccessKey == "" {
		return nil, ""
	}
	bucket := os.Getenv("R2_BUCKET")
	if bucket == "" {
		bucket = "haulerplan"
	}
	client := s3.New(s3.Options{
		BaseEndpoint: &endpoint,
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
	})
	return client, bucket
}

// Archive uploads the horizon's Parquet route-leg export to R2/S3 under a
// run-scoped key, skipping silently when R2 is not configured.
func Archive(ctx context.Context, runID string, h driver.Horizon) error {
	client, bucket := getR2Client()
	if client == nil {
		return nil
	}

	body, rowCount, err := WriteParquet(h)
	if err != nil {
		return fmt.Errorf("build parquet export: %w", err)
	}
	if rowCount == 0 {
		return nil
	}

	key := fmt.Sprintf("runs/%s/routes.parquet", runID)
	contentType := "application/vnd.apache.parquet"
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
		Metadata: map[string]string{
			"rows":       fmt.Sprintf("%d", rowCount),
			"archivedAt": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("upload to R2: %w", err)
	}
	return nil
}
