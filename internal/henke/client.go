package henke

import (
	"context"
	"fmt"
	"henke-client/internal/components/assert"
	"henke-client/internal/components/telemetry"
	"math"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_submit      = "client.submit"
	report_client_fetch_table = "client.fetch-table"
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// per request, defaults to 30 seconds
	Timeout time.Duration
	// defaults to 2, a negative value disables the limit
	RequestsPerSecond float64
	Telemetry         telemetry.API
}

// Client talks to the service, it is safe to share but every call is
// sequential: it submits a form and, for tabulated modes, fetches one data file.
type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	tel     telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	assert.NotNil(opts.Telemetry)

	tel := telemetry.NewScopedAPI("henke_client", opts.Telemetry)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if !baseUrl.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", opts.BaseUrl)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetHeader("user-agent", "henke-client/1.0")

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = int(math.Max(1, math.Ceil(opts.RequestsPerSecond)))
	}
	// max burst >= rate just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(limit, burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		baseUrl: baseUrl,
		http:    httpClient,
		tel:     tel,
	}, nil
}

// BaseUrl is the origin data file links are resolved against.
func (c *Client) BaseUrl() *url.URL {
	out := *c.baseUrl
	return &out
}

func (c *Client) endpointUrl(endpoint string) string {
	return c.baseUrl.ResolveReference(&url.URL{Path: endpoint}).String()
}

// submit posts a form to one of the cgi endpoints and returns the result page.
func (c *Client) submit(ctx context.Context, endpoint string, form url.Values) (string, error) {
	target := c.endpointUrl(endpoint)
	c.tel.ReportDebug(report_client_submit, target, form.Encode())

	res, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(target)
	if err != nil {
		c.tel.ReportBroken(report_client_submit, fmt.Errorf("post: %w", err), target)
		return "", &TransportError{Op: "POST", URL: target, Err: err}
	}
	if res.IsError() {
		c.tel.ReportBroken(report_client_submit, fmt.Errorf("post: unexpected status %s", res.Status()), target)
		return "", &TransportError{Op: "POST", URL: target, StatusCode: res.StatusCode()}
	}
	return res.String(), nil
}

// fetchTable downloads the data file linked from a result page and parses it.
func (c *Client) fetchTable(ctx context.Context, page string, columns int) (Table, error) {
	link, err := FindDataLink(page, c.baseUrl)
	if err != nil {
		c.tel.ReportWarning(report_client_fetch_table, err)
		return Table{}, err
	}
	target := link.String()

	res, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_table, fmt.Errorf("get: %w", err), target)
		return Table{}, &TransportError{Op: "GET", URL: target, Err: err}
	}
	if res.IsError() {
		c.tel.ReportBroken(report_client_fetch_table, fmt.Errorf("get: unexpected status %s", res.Status()), target)
		return Table{}, &TransportError{Op: "GET", URL: target, StatusCode: res.StatusCode()}
	}

	table, err := ParseTable(res.String(), columns)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch_table, err, target)
		return Table{}, err
	}
	c.tel.ReportDebug(report_client_fetch_table, target, len(table.Rows))
	return table, nil
}

func (c *Client) tabulate(ctx context.Context, endpoint string, form url.Values, columns int) (Table, error) {
	page, err := c.submit(ctx, endpoint, form)
	if err != nil {
		return Table{}, err
	}
	return c.fetchTable(ctx, page, columns)
}
