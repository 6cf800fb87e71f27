package tankupdate

import (
	"coolwatch-backend/lib/restyutil"
	"coolwatch-backend/lib/telemetry"
)

var tracer = telemetry.Tracer("coolwatch.services.tankupdate")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput must be called before NewClient for the
// instrumentation to attach.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
