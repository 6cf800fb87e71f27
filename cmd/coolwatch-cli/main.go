package main

import (
	"context"

	"coolwatch-backend/cmd/coolwatch-cli/commands"
	"coolwatch-backend/lib/serviceutil"
	"coolwatch-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	err := telemetry.SetupFromEnv(ctx, "coolwatch-cli")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())
	telemetry.InitSlog(false)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
