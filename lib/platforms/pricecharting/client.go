package pricecharting

import (
	"context"
	"fmt"
	"net/url"

	"cardcomps-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("platforms/pricecharting")

const DefaultBaseUrl = "https://www.pricecharting.com"

// the upstream console api has no end-of-list flag besides an empty
// page, so pagination needs an explicit bound to not loop forever
// against a misbehaving endpoint
const defaultMaxPages = 200

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultGrades()
	Grades GradeVocabulary
	// defaults to 200
	MaxPages int
}

type Client struct {
	baseUrl  *url.URL
	http     *resty.Client
	grades   GradeVocabulary
	maxPages int
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if opts.Grades == nil {
		opts.Grades = DefaultGrades()
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0")

	telemetry.InstrumentResty(client, "platforms/pricecharting/http")

	return &Client{
		baseUrl:  baseUrl,
		http:     client,
		grades:   opts.Grades,
		maxPages: opts.MaxPages,
	}, nil
}

type StatusError struct {
	Status int
	Url    string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from '%s'", e.Status, e.Url)
}

func (c *Client) get(ctx context.Context, link string, query map[string]string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, StatusError{Status: res.StatusCode(), Url: link}
	}
	return res.Body(), nil
}
