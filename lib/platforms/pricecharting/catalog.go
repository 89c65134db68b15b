package pricecharting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"cardcomps-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrPaginationLimit is returned alongside the entries accumulated so
// far when the console endpoint keeps producing non-empty pages past
// the configured bound.
var ErrPaginationLimit = errors.New("console pagination exceeded the page limit")

// CatalogEntry is a named, url-addressable set or card in the site's
// product directory.
type CatalogEntry struct {
	Name string `json:"name"`
	Url  string `json:"url"`
	Id   string `json:"id,omitempty"`
}

type consoleProduct struct {
	Name string      `json:"productName"`
	Uri  string      `json:"productUri"`
	Id   json.Number `json:"id"`
}

type consolePage struct {
	Products []consoleProduct `json:"products"`
}

// ListCards enumerates every card of a set through the cursor-based
// console listing endpoint. the cursor advances by the number of
// entries each page returned, the first empty page ends pagination.
func (c *Client) ListCards(ctx context.Context, setSlug string) ([]CatalogEntry, error) {
	ctx, span := tracer.Start(ctx, "ListCards", trace.WithAttributes(
		attribute.String("set", setSlug),
	))
	defer span.End()

	endpoint := c.baseUrl.JoinPath("console", setSlug).String()

	var entries []CatalogEntry
	cursor := 0
	for page := 0; ; page++ {
		if page >= c.maxPages {
			span.SetStatus(codes.Error, ErrPaginationLimit.Error())
			return entries, ErrPaginationLimit
		}

		body, err := c.get(ctx, endpoint, map[string]string{
			"sort":             "model-number",
			"when":             "none",
			"exclude-variants": "false",
			"exclude-hardware": "false",
			"cursor":           strconv.Itoa(cursor),
			"format":           "json",
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch console page")
			return nil, err
		}

		var parsed consolePage
		err = json.Unmarshal(body, &parsed)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to unmarshal console page")
			return nil, err
		}
		if len(parsed.Products) == 0 {
			break
		}

		for _, product := range parsed.Products {
			if product.Name == "" || product.Uri == "" {
				continue
			}
			entries = append(entries, CatalogEntry{
				Name: product.Name,
				Url:  c.baseUrl.JoinPath(setSlug, product.Uri).String(),
				Id:   product.Id.String(),
			})
		}
		cursor += len(parsed.Products)
	}

	span.SetAttributes(attribute.Int("card_count", len(entries)))
	return entries, nil
}

// the landing page block holding the set directory
const setListingSelector = "div[class='console-listing all'] ul a"

const setCategoryPath = "category/pokemon-cards"

// ListSets scrapes the catalog landing page for the directory of card
// sets.
func (c *Client) ListSets(ctx context.Context) ([]CatalogEntry, error) {
	ctx, span := tracer.Start(ctx, "ListSets")
	defer span.End()

	body, err := c.get(ctx, c.baseUrl.JoinPath(setCategoryPath).String(), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	var entries []CatalogEntry
	for _, anchor := range htmlutil.GetAnchors(doc.Find(setListingSelector), c.baseUrl) {
		if anchor.Name == "" {
			continue
		}
		entries = append(entries, CatalogEntry{
			Name: anchor.Name,
			Url:  anchor.Href,
		})
	}

	span.SetAttributes(attribute.Int("set_count", len(entries)))
	return entries, nil
}
