package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cardcomps-backend/lib/compstore"
	"cardcomps-backend/lib/platforms/ebay"
	"cardcomps-backend/lib/platforms/pricecharting"
	"cardcomps-backend/services/comps"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func newRouter(service comps.Service) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	h := handlers{service: service}
	router.Route("/api", func(r chi.Router) {
		r.Get("/comps", h.getComps)
		r.Get("/history", h.getHistory)
		r.Get("/sets", h.getSets)
		r.Get("/sets/{slug}/cards", h.getCards)
		r.Get("/search", h.getSearch)
	})

	return router
}

type handlers struct {
	service comps.Service
}

func writeJson(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// scrape and search failures degrade to empty result sets instead of
// surfacing errors to the end user
func (h handlers) getComps(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("url")
	if link == "" {
		http.Error(w, "missing 'url' query parameter", http.StatusBadRequest)
		return
	}

	result, err := h.service.GetComps(r.Context(), link)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to get comps", "url", link, "err", err)
		result = comps.CompsResult{
			Sales: []pricecharting.Sale{},
			Stats: map[string]pricecharting.GradeStats{},
		}
	}
	if result.Sales == nil {
		result.Sales = []pricecharting.Sale{}
	}

	writeJson(w, result)
}

func (h handlers) getHistory(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("url")
	if link == "" {
		http.Error(w, "missing 'url' query parameter", http.StatusBadRequest)
		return
	}

	snapshots, err := h.service.History(r.Context(), link)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to get history", "url", link, "err", err)
	}
	if snapshots == nil {
		snapshots = []compstore.Snapshot{}
	}

	writeJson(w, snapshots)
}

func (h handlers) getSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.service.ListSets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list sets", "err", err)
	}
	if sets == nil {
		sets = []pricecharting.CatalogEntry{}
	}

	writeJson(w, sets)
}

func (h handlers) getCards(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	cards, err := h.service.ListCards(r.Context(), slug)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list cards", "set", slug, "err", err)
	}
	if cards == nil {
		cards = []pricecharting.CatalogEntry{}
	}

	writeJson(w, cards)
}

func (h handlers) getSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing 'q' query parameter", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to search listings", "query", query, "err", err)
	}
	if items == nil {
		items = []ebay.Item{}
	}

	writeJson(w, items)
}
