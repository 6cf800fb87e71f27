package tankmonitor

import (
	"io"
	"strconv"
	"time"

	"coolwatch-backend/lib/scrapers/icontrol"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReadings writes a table of scraped readings to `w`, one row per
// tank in scrape order. Missing values render as "-".
func RenderReadings(w io.Writer, readings []icontrol.TankReading) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"tank", "code", "temperature (°C)", "last update", "status"})
	for _, r := range readings {
		temperature := "-"
		if r.TemperatureC != nil {
			temperature = strconv.FormatFloat(*r.TemperatureC, 'f', -1, 64)
		}
		lastUpdate := r.LastUpdate
		if lastUpdate == "" {
			lastUpdate = "-"
		}
		status := r.StatusText
		if status == "" {
			status = "-"
		}

		t.AppendRow(table.Row{r.TankID, r.TankCode, temperature, lastUpdate, status})
	}

	t.Render()
}

// RenderHistory writes a table of recorded readings for one tank to
// `w`, oldest first.
func RenderHistory(w io.Writer, entries []HistoryEntry) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"scraped at", "temperature (°C)", "last update", "status"})
	for _, entry := range entries {
		temperature := "-"
		if entry.Reading.TemperatureC != nil {
			temperature = strconv.FormatFloat(*entry.Reading.TemperatureC, 'f', -1, 64)
		}
		lastUpdate := entry.Reading.LastUpdate
		if lastUpdate == "" {
			lastUpdate = "-"
		}
		status := entry.Reading.StatusText
		if status == "" {
			status = "-"
		}

		t.AppendRow(table.Row{
			entry.ScrapedAt.Format(time.DateTime),
			temperature,
			lastUpdate,
			status,
		})
	}

	t.Render()
}
