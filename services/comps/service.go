// comps ties the scraping, aggregation, snapshot and search pieces
// into the operations the http api and cli expose.
package comps

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"cardcomps-backend/lib/compstore"
	"cardcomps-backend/lib/platforms/ebay"
	"cardcomps-backend/lib/platforms/pricecharting"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("services/comps")

type Options struct {
	Pricecharting *pricecharting.Client
	// optional, search is unavailable without it
	Ebay *ebay.Client
	// optional, comps are not persisted without it
	Store *compstore.Store
}

type Service struct {
	pc    *pricecharting.Client
	ebay  *ebay.Client
	store *compstore.Store
}

func NewService(opts Options) Service {
	return Service{
		pc:    opts.Pricecharting,
		ebay:  opts.Ebay,
		store: opts.Store,
	}
}

type CompsResult struct {
	Sales []pricecharting.Sale                `json:"sales"`
	Stats map[string]pricecharting.GradeStats `json:"stats"`
}

// GetComps scrapes a product page, orders its sales by date and
// aggregates per-grade statistics. when a snapshot store is configured
// the stats are persisted as well, a store failure only logs.
func (s Service) GetComps(ctx context.Context, link string) (CompsResult, error) {
	ctx, span := tracer.Start(ctx, "GetComps", trace.WithAttributes(
		attribute.String("url", link),
	))
	defer span.End()

	sales, err := s.pc.ScrapeSales(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to scrape sales")
		return CompsResult{}, err
	}

	slices.SortFunc(sales, func(a, b pricecharting.Sale) int {
		return a.Date.Compare(b.Date)
	})
	stats := pricecharting.AggregateComps(sales)

	if s.store != nil && len(stats) > 0 {
		err = s.store.Push(ctx, compstore.PushRequest{
			Time:    time.Now(),
			Product: link,
			Stats:   stats,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to push comp snapshot", "url", link, "err", err)
		}
	}

	return CompsResult{Sales: sales, Stats: stats}, nil
}

// History returns previously persisted comp snapshots for a product.
func (s Service) History(ctx context.Context, link string) ([]compstore.Snapshot, error) {
	if s.store == nil {
		return nil, fmt.Errorf("snapshot store is not configured")
	}
	return s.store.Pull(ctx, link)
}

func (s Service) ListSets(ctx context.Context) ([]pricecharting.CatalogEntry, error) {
	return s.pc.ListSets(ctx)
}

func (s Service) ListCards(ctx context.Context, setSlug string) ([]pricecharting.CatalogEntry, error) {
	return s.pc.ListCards(ctx, setSlug)
}

// Search looks up active fixed-price marketplace listings.
func (s Service) Search(ctx context.Context, query string, limit int) ([]ebay.Item, error) {
	if s.ebay == nil {
		return nil, fmt.Errorf("ebay search is not configured")
	}
	return s.ebay.SearchItems(ctx, query, limit)
}
