package tankmonitor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coolwatch-backend/lib/scrapers/icontrol"
	"coolwatch-backend/lib/telemetry"
	"coolwatch-backend/services/tankupdate"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages   map[int]string
	fetched []int
}

func (f *fakeFetcher) FetchTankPage(ctx context.Context, tankId int, tankCode string) (string, error) {
	f.fetched = append(f.fetched, tankId)
	page, ok := f.pages[tankId]
	if !ok {
		return "", fmt.Errorf("tank detail page returned status 404")
	}
	return page, nil
}

func TestScrape(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankmonitor")
	defer cleanup()

	fetcher := &fakeFetcher{
		pages: map[int]string{
			1: "Tank A ... 7.00°C ... 2026-01-01 12:22:09 ... Everything ok ...",
			2: "Tank B ... no readings available ...",
		},
	}
	tanks := []Tank{
		{TankID: 1, TankCode: "A"},
		{TankID: 2, TankCode: "B"},
		{TankID: 3, TankCode: "C"},
	}

	readings := Scrape(context.Background(), fetcher, tanks)
	require.Len(t, readings, 3)
	// fetch order matches input order
	require.Equal(t, []int{1, 2, 3}, fetcher.fetched)

	require.Equal(t, 1, readings[0].TankID)
	require.Equal(t, "A", readings[0].TankCode)
	require.NotNil(t, readings[0].TemperatureC)
	require.Equal(t, 7.0, *readings[0].TemperatureC)
	require.Equal(t, "2026-01-01 12:22:09", readings[0].LastUpdate)
	require.Equal(t, icontrol.StatusEverythingOk, readings[0].StatusText)

	// page without readings yields an empty reading, not an error
	require.Nil(t, readings[1].TemperatureC)
	require.Equal(t, "", readings[1].LastUpdate)

	// fetch failure degrades to an empty reading as well
	require.Equal(t, 3, readings[2].TankID)
	require.Nil(t, readings[2].TemperatureC)
}

type fakePusher struct {
	pushed []icontrol.TankReading
	err    error
}

func (p *fakePusher) Push(ctx context.Context, r icontrol.TankReading) (int, string, error) {
	p.pushed = append(p.pushed, r)
	if p.err != nil {
		return 0, "", p.err
	}
	return 200, "ok", nil
}

func TestPushSkipsMissingTemperature(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankmonitor")
	defer cleanup()

	temp := 7.0
	readings := []icontrol.TankReading{
		{TankID: 1, TankCode: "A", TemperatureC: &temp},
		{TankID: 2, TankCode: "B"},
	}

	pusher := &fakePusher{}
	var out strings.Builder
	Push(context.Background(), pusher, readings, &out)

	require.Len(t, pusher.pushed, 1)
	require.Equal(t, 1, pusher.pushed[0].TankID)

	require.Contains(t, out.String(), "UpdateTank tank_id=1 -> 200 ok")
	require.Contains(t, out.String(), "Skip tank 2 - temperature not found")
}

func TestPushReportsFailuresWithoutAborting(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankmonitor")
	defer cleanup()

	temp := 7.0
	readings := []icontrol.TankReading{
		{TankID: 1, TemperatureC: &temp},
		{TankID: 2, TemperatureC: &temp},
	}

	pusher := &fakePusher{err: fmt.Errorf("connection refused")}
	var out strings.Builder
	Push(context.Background(), pusher, readings, &out)

	// both tanks attempted despite failures
	require.Len(t, pusher.pushed, 2)
	require.Contains(t, out.String(), "UpdateTank tank_id=1 -> error: connection refused")
	require.Contains(t, out.String(), "UpdateTank tank_id=2 -> error: connection refused")
}

func TestScrapeAndForward(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankmonitor")
	defer cleanup()

	var received []map[string]string
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := map[string]string{}
		for k := range r.URL.Query() {
			params[k] = r.URL.Query().Get(k)
		}
		received = append(received, params)
		fmt.Fprint(w, "updated")
	}))
	defer webhook.Close()

	fetcher := &fakeFetcher{
		pages: map[int]string{
			1: "... 7.00°C ... 2026-01-01 12:22:09 ... Everything ok ...",
		},
	}

	readings := Scrape(context.Background(), fetcher, []Tank{{TankID: 1, TankCode: "A"}})

	var out strings.Builder
	Push(context.Background(), tankupdate.NewClient(webhook.URL, "abc"), readings, &out)

	require.Len(t, received, 1)
	require.Equal(t, map[string]string{
		"tank_id":     "1",
		"temperature": "7",
		"key":         "abc",
		"tank_code":   "A",
		"last_update": "2026-01-01 12:22:09",
		"status_text": "Everything ok",
	}, received[0])
	require.Contains(t, out.String(), "UpdateTank tank_id=1 -> 200 updated")
}

func TestRenderReadings(t *testing.T) {
	temp := -2.5
	readings := []icontrol.TankReading{
		{TankID: 1, TankCode: "A", TemperatureC: &temp, LastUpdate: "2026-01-01 12:22:09"},
		{TankID: 2, TankCode: "B"},
	}

	var out strings.Builder
	RenderReadings(&out, readings)

	require.Contains(t, out.String(), "-2.5")
	require.Contains(t, out.String(), "2026-01-01 12:22:09")
	require.Contains(t, out.String(), "B")
}
