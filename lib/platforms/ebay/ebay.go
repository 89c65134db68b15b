package ebay

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"cardcomps-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("platforms/ebay")

const (
	productionBaseUrl = "https://api.ebay.com"
	sandboxBaseUrl    = "https://api.sandbox.ebay.com"

	browseApiScope = "https://api.ebay.com/oauth/api_scope"
)

type Config struct {
	ClientId     string
	ClientSecret string
	// "sandbox" (the default) or "production"
	Env string
	// overrides the environment-derived api base
	BaseUrl string
}

// ConfigFromEnv reads credentials from the process environment,
// loading a .env file first when one exists.
func ConfigFromEnv() Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "err", err)
	}
	return Config{
		ClientId:     os.Getenv("EBAY_CLIENT_ID"),
		ClientSecret: os.Getenv("EBAY_CLIENT_SECRET"),
		Env:          os.Getenv("EBAY_ENV"),
	}
}

type Client struct {
	http *resty.Client
	cfg  Config

	tokenLock    sync.Mutex
	token        string
	tokenExpires time.Time
}

func NewClient(cfg Config) *Client {
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		if cfg.Env == "production" {
			baseUrl = productionBaseUrl
		} else {
			baseUrl = sandboxBaseUrl
		}
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	telemetry.InstrumentResty(client, "platforms/ebay/http")

	return &Client{http: client, cfg: cfg}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// getAccessToken returns a client-credentials token, reusing the
// cached one until shortly before expiry.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.tokenLock.Lock()
	defer c.tokenLock.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpires) {
		return c.token, nil
	}

	ctx, span := tracer.Start(ctx, "getAccessToken")
	defer span.End()

	var parsed tokenResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.ClientId, c.cfg.ClientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
			"scope":      browseApiScope,
		}).
		SetResult(&parsed).
		Post("/identity/v1/oauth2/token")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch token")
		return "", err
	}
	if res.IsError() {
		err = fmt.Errorf("token endpoint returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "token request rejected")
		return "", err
	}
	if parsed.AccessToken == "" {
		err = fmt.Errorf("token endpoint returned no access token")
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	c.token = parsed.AccessToken
	// a minute of slack so a token never expires mid-request
	c.tokenExpires = time.Now().Add(time.Duration(parsed.ExpiresIn)*time.Second - time.Minute)

	return c.token, nil
}

// Item is one active marketplace listing. Price stays the api's string
// representation, no numeric interpretation is done on it.
type Item struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Url      string `json:"url"`
}

type itemSummaryResponse struct {
	ItemSummaries []struct {
		Title string `json:"title"`
		Price struct {
			Value    string `json:"value"`
			Currency string `json:"currency"`
		} `json:"price"`
		ItemWebUrl string `json:"itemWebUrl"`
	} `json:"itemSummaries"`
}

// SearchItems queries the browse api for active fixed-price listings
// matching the query.
func (c *Client) SearchItems(ctx context.Context, query string, limit int) ([]Item, error) {
	ctx, span := tracer.Start(ctx, "SearchItems", trace.WithAttributes(
		attribute.String("query", query),
	))
	defer span.End()

	if limit <= 0 {
		limit = 5
	}

	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var parsed itemSummaryResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("X-EBAY-C-MARKETPLACE-ID", "EBAY_US").
		SetQueryParams(map[string]string{
			"q":      query,
			"limit":  strconv.Itoa(limit),
			"filter": "buyingOptions:{FIXED_PRICE}",
		}).
		SetResult(&parsed).
		Get("/buy/browse/v1/item_summary/search")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch item summaries")
		return nil, err
	}
	if res.IsError() {
		err = fmt.Errorf("item search returned status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "item search rejected")
		return nil, err
	}

	items := make([]Item, len(parsed.ItemSummaries))
	for i, summary := range parsed.ItemSummaries {
		items[i] = Item{
			Title:    summary.Title,
			Price:    summary.Price.Value,
			Currency: summary.Price.Currency,
			Url:      summary.ItemWebUrl,
		}
	}

	span.SetAttributes(attribute.Int("item_count", len(items)))
	return items, nil
}
