package tankupdate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"coolwatch-backend/lib/restyutil"
	"coolwatch-backend/lib/scrapers/icontrol"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

// Params are the query parameters of one UpdateTank call.
type Params map[string]string

// The external schema is declared here and nowhere else: one row per
// optional reading field, mapping it to the query parameter name the
// endpoint expects. A field is included only when its value is
// non-empty.
var optionalParams = []struct {
	key   string
	value func(r icontrol.TankReading) string
}{
	{key: "tank_code", value: func(r icontrol.TankReading) string { return r.TankCode }},
	{key: "last_update", value: func(r icontrol.TankReading) string { return r.LastUpdate }},
	{key: "status_text", value: func(r icontrol.TankReading) string { return r.StatusText }},
}

// BuildParams maps a reading onto the UpdateTank query schema. The
// temperature is sent under the legacy name `temperature` rather than
// `temperature_c` so consumers still on the old schema keep working.
// The reading must have a temperature, callers enforce the skip policy
// before building anything.
func BuildParams(r icontrol.TankReading, webhookKey string) Params {
	params := Params{
		"tank_id":     strconv.Itoa(r.TankID),
		"temperature": strconv.FormatFloat(*r.TemperatureC, 'f', -1, 64),
	}
	if webhookKey != "" {
		params["key"] = webhookKey
	}
	for _, p := range optionalParams {
		v := p.value(r)
		if v != "" {
			params[p.key] = v
		}
	}
	return params
}

type Client struct {
	UpdateUrl  string
	WebhookKey string
	Http       *resty.Client
}

func NewClient(updateUrl, webhookKey string) Client {
	client := resty.New()
	client.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return Client{
		UpdateUrl:  updateUrl,
		WebhookKey: webhookKey,
		Http:       client,
	}
}

const maxReportedBody = 200

// Push forwards one reading to the UpdateTank endpoint and reports the
// status code along with a truncated response body. A reading without a
// temperature is never sent.
func (c Client) Push(ctx context.Context, r icontrol.TankReading) (int, string, error) {
	ctx, span := tracer.Start(ctx, "client:Push")
	defer span.End()

	if r.TemperatureC == nil {
		err := fmt.Errorf("refusing to push tank %d without a temperature", r.TankID)
		span.SetStatus(codes.Error, err.Error())
		return 0, "", err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(BuildParams(r, c.WebhookKey)).
		Get(c.UpdateUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update call failed")
		return 0, "", err
	}

	body := res.String()
	if len(body) > maxReportedBody {
		body = body[:maxReportedBody]
	}
	return res.StatusCode(), body, nil
}
