package tankmonitor

import (
	"coolwatch-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("coolwatch.services.tankmonitor")
