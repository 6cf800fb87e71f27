package tankmonitor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"coolwatch-backend/lib/scrapers/icontrol"
	"coolwatch-backend/services/tankupdate"
)

// Tank identifies one monitored tank in the input list.
type Tank struct {
	TankID   int    `json:"tank_id"`
	TankCode string `json:"tank_code"`
}

// PageFetcher is the part of icontrol.Client the scrape loop needs.
type PageFetcher interface {
	FetchTankPage(ctx context.Context, tankId int, tankCode string) (string, error)
}

// Scrape fetches and parses every tank in input order, one at a time.
// A failed fetch degrades to a reading without a temperature, which the
// forwarding step later skips, it never aborts the run.
func Scrape(ctx context.Context, fetcher PageFetcher, tanks []Tank) []icontrol.TankReading {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	readings := make([]icontrol.TankReading, 0, len(tanks))
	for _, tank := range tanks {
		reading := icontrol.TankReading{
			TankID:   tank.TankID,
			TankCode: tank.TankCode,
		}

		text, err := fetcher.FetchTankPage(ctx, tank.TankID, tank.TankCode)
		if err != nil {
			slog.ErrorContext(
				ctx, "failed to fetch tank detail page",
				"tank_id", tank.TankID,
				"tank_code", tank.TankCode,
				"err", err,
			)
			readings = append(readings, reading)
			continue
		}

		reading.TemperatureC, reading.LastUpdate, reading.StatusText = icontrol.ExtractLatest(text)
		readings = append(readings, reading)

		slog.InfoContext(
			ctx, "fetched tank",
			"tank_id", tank.TankID,
			"tank_code", tank.TankCode,
			"found_temperature", reading.TemperatureC != nil,
		)
	}

	return readings
}

// Pusher is the part of tankupdate.Client the forwarding loop needs.
type Pusher interface {
	Push(ctx context.Context, r icontrol.TankReading) (int, string, error)
}

// Push forwards readings in the same order they were scraped, writing
// one report line per tank to `w`. Readings without a temperature are
// skipped, and a failed call is reported without affecting the rest of
// the run.
func Push(ctx context.Context, client Pusher, readings []icontrol.TankReading, w io.Writer) {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()

	for _, r := range readings {
		if r.TemperatureC == nil {
			fmt.Fprintf(w, "Skip tank %d - temperature not found\n", r.TankID)
			continue
		}

		code, body, err := client.Push(ctx, r)
		if err != nil {
			fmt.Fprintf(w, "UpdateTank tank_id=%d -> error: %s\n", r.TankID, err)
			continue
		}
		fmt.Fprintf(w, "UpdateTank tank_id=%d -> %d %s\n", r.TankID, code, body)
	}
}

var _ Pusher = tankupdate.Client{}
var _ PageFetcher = (*icontrol.Client)(nil)
