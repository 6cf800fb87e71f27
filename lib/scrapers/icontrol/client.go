package icontrol

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"coolwatch-backend/lib/htmlutil"
	"coolwatch-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "http://icontrol.paccool.be"

var LoginFailed = fmt.Errorf("Failed to login to the icontrol portal.")

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// LoginEmailPassword authenticates the underlying http client against
// the portal. The login form carries a hidden csrf `_token` input which
// must be echoed back with the credentials.
func (c *Client) LoginEmailPassword(ctx context.Context, email, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginEmailPassword")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/en/auth/login")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	form := map[string]string{
		"email":    email,
		"password": password,
	}
	token := doc.Find("input[name=_token]").AttrOr("value", "")
	if token != "" {
		form["_token"] = token
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post("/en/auth/login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	res, err = c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request dashboard after login")
		return err
	}
	doc, err = goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse dashboard html")
		return err
	}

	// still being served the login form means the credentials were rejected
	if len(doc.Find("input[name=password]").Nodes) > 0 {
		span.SetStatus(codes.Error, LoginFailed.Error())
		return LoginFailed
	}

	return nil
}

// FetchTankPage retrieves the detail view for one tank and flattens it
// to its rendered text.
func (c *Client) FetchTankPage(ctx context.Context, tankId int, tankCode string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchTankPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/en/tankdetail/%d/%s", tankId, url.PathEscape(tankCode)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch tank detail page")
		return "", err
	}
	if res.StatusCode() >= 400 {
		err := fmt.Errorf("tank detail page returned status %d", res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse tank detail html")
		return "", err
	}

	return htmlutil.PageText(doc), nil
}
