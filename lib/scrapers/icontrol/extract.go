package icontrol

import (
	"regexp"
	"strconv"
)

// TankReading is the parsed result of one tank detail page at one point
// in time. A nil TemperatureC or an empty LastUpdate/StatusText means
// the corresponding value did not appear on the page.
type TankReading struct {
	TankID       int
	TankCode     string
	TemperatureC *float64
	LastUpdate   string
	StatusText   string
}

// StatusEverythingOk is the canonical form of the only status phrase the
// portal is known to render. Matches are normalized to it regardless of
// the casing on the page.
const StatusEverythingOk = "Everything ok"

var (
	// timestamp like: 2026-01-01 12:22:09
	timestampRegex = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\b`)
	// temperature like: 7.00°C (accepts 7.0°C, 7°C, -2°C, 10 ° C)
	temperatureRegex = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*°\s*C`)
	statusOkRegex    = regexp.MustCompile(`(?i)\bEverything\s+ok\b`)
)

// ExtractLatest pulls the temperature, last-update timestamp and status
// message out of the flattened tank detail page text. Each field is an
// independent first-match scan, matching is regex-based on purpose so it
// survives minor upstream markup changes. Absence of a match is not an
// error, the field is simply left unset.
func ExtractLatest(pageText string) (temperatureC *float64, lastUpdate string, statusText string) {
	lastUpdate = timestampRegex.FindString(pageText)

	if m := temperatureRegex.FindStringSubmatch(pageText); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			temperatureC = &v
		}
	}

	if statusOkRegex.MatchString(pageText) {
		statusText = StatusEverythingOk
	}

	return temperatureC, lastUpdate, statusText
}
