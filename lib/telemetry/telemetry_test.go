package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShutdownWithoutSetup(t *testing.T) {
	// a cli run without a telemetry.json5 still defers Shutdown
	require.NoError(t, Shutdown(context.Background()))
}

func TestInstrumentPerfStatsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	InstrumentPerfStats(ctx)
	cancel()
}
