package tankupdate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"coolwatch-backend/lib/scrapers/icontrol"
	"coolwatch-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func temperature(v float64) *float64 {
	return &v
}

func TestBuildParamsMinimal(t *testing.T) {
	reading := icontrol.TankReading{
		TankID:       5,
		TemperatureC: temperature(7),
	}

	params := BuildParams(reading, "")
	require.Equal(t, Params{
		"tank_id":     "5",
		"temperature": "7",
	}, params)
}

func TestBuildParamsFull(t *testing.T) {
	reading := icontrol.TankReading{
		TankID:       1,
		TankCode:     "A",
		TemperatureC: temperature(7),
		LastUpdate:   "2026-01-01 12:22:09",
		StatusText:   icontrol.StatusEverythingOk,
	}

	params := BuildParams(reading, "abc")
	require.Equal(t, Params{
		"tank_id":     "1",
		"temperature": "7",
		"key":         "abc",
		"tank_code":   "A",
		"last_update": "2026-01-01 12:22:09",
		"status_text": "Everything ok",
	}, params)
}

func TestBuildParamsNegativeFraction(t *testing.T) {
	params := BuildParams(icontrol.TankReading{
		TankID:       2,
		TemperatureC: temperature(-2.5),
	}, "")
	require.Equal(t, "-2.5", params["temperature"])
}

func TestPush(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankupdate")
	defer cleanup()

	var received []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := map[string]string{}
		for k := range r.URL.Query() {
			params[k] = r.URL.Query().Get(k)
		}
		received = append(received, params)
		fmt.Fprint(w, "updated")
	}))
	defer server.Close()

	client := NewClient(server.URL, "abc")
	code, body, err := client.Push(context.Background(), icontrol.TankReading{
		TankID:       1,
		TankCode:     "A",
		TemperatureC: temperature(7),
		LastUpdate:   "2026-01-01 12:22:09",
		StatusText:   icontrol.StatusEverythingOk,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "updated", body)

	require.Len(t, received, 1)
	require.Equal(t, map[string]string{
		"tank_id":     "1",
		"temperature": "7",
		"key":         "abc",
		"tank_code":   "A",
		"last_update": "2026-01-01 12:22:09",
		"status_text": "Everything ok",
	}, received[0])
}

func TestPushRefusesMissingTemperature(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankupdate")
	defer cleanup()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, _, err := client.Push(context.Background(), icontrol.TankReading{TankID: 3})
	require.Error(t, err)
	require.Equal(t, 0, calls)
}

func TestPushTruncatesBody(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:tankupdate")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 100; i++ {
			fmt.Fprint(w, "0123456789")
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, body, err := client.Push(context.Background(), icontrol.TankReading{
		TankID:       1,
		TemperatureC: temperature(1),
	})
	require.NoError(t, err)
	require.Len(t, body, maxReportedBody)
}
