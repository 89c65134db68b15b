package pricecharting

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"cardcomps-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Sale is one completed auction extracted from a product page. a Sale
// only exists when its grade was recognized and both price and date
// parsed, malformed rows never make it out of the extractor.
type Sale struct {
	ExternalId string    `json:"ebay_id"`
	Grade      string    `json:"grade"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Date       time.Time `json:"date"`
}

func (s Sale) ListingUrl() string {
	return "https://www.ebay.com/itm/" + s.ExternalId
}

const saleDateFormat = "2006-01-02"

// ScrapeSales fetches a product page and extracts every qualifying
// completed-auction row, tagged with its condition grade.
func (c *Client) ScrapeSales(ctx context.Context, link string) ([]Sale, error) {
	ctx, span := tracer.Start(ctx, "ScrapeSales", trace.WithAttributes(
		attribute.String("url", link),
	))
	defer span.End()

	body, err := c.get(ctx, link, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch product page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	sales := c.extractSales(ctx, doc)
	span.SetAttributes(attribute.Int("sale_count", len(sales)))
	return sales, nil
}

// extractSales walks every completed-auctions container in document
// order. rows missing required cells or failing field conversion are
// dropped silently, a broken subset of the page must not abort the
// rest. duplicate ebay ids under different grade containers are kept
// as distinct sales, mirroring the source markup.
func (c *Client) extractSales(ctx context.Context, doc *goquery.Document) []Sale {
	var sales []Sale

	doc.Find("div[class*='completed-auctions-']").Each(func(_ int, container *goquery.Selection) {
		marker, ok := gradeMarker(container.AttrOr("class", ""))
		if !ok {
			return
		}
		grade, ok := c.grades.Classify(marker)
		if !ok {
			slog.DebugContext(ctx, "skipping unclassified container", "marker", marker)
			return
		}

		container.Find("tr[id^='ebay-']").Each(func(_ int, row *goquery.Selection) {
			sale, err := parseSaleRow(row, grade)
			if err != nil {
				slog.DebugContext(
					ctx, "dropping sale row",
					"grade", grade,
					"id", row.AttrOr("id", ""),
					"reason", err,
				)
				return
			}
			sales = append(sales, sale)
		})
	})

	return sales
}

func parseSaleRow(row *goquery.Selection, grade string) (Sale, error) {
	title := row.Find("td.title")
	price := row.Find("span.js-price")
	date := row.Find("td.date")
	if title.Length() == 0 || price.Length() == 0 || date.Length() == 0 {
		return Sale{}, fmt.Errorf("missing required cell")
	}

	amount, err := parsePrice(price.Text())
	if err != nil {
		return Sale{}, fmt.Errorf("parse price: %w", err)
	}
	saleDate, err := time.Parse(saleDateFormat, strings.TrimSpace(date.Text()))
	if err != nil {
		return Sale{}, fmt.Errorf("parse date: %w", err)
	}

	return Sale{
		ExternalId: strings.TrimPrefix(row.AttrOr("id", ""), "ebay-"),
		Grade:      grade,
		Title:      htmlutil.CleanText(title.Text()),
		Price:      amount,
		Date:       saleDate,
	}, nil
}

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, "$", "")
	raw = strings.ReplaceAll(raw, ",", "")

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative price '%s'", raw)
	}
	return amount, nil
}
