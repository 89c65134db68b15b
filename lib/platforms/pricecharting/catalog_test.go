package pricecharting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"cardcomps-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestListCards(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pricecharting")
	defer cleanup()

	pages := map[string][]consoleProduct{
		"0": {
			{Name: "Charizard", Uri: "charizard", Id: "1"},
			{Name: "Blastoise", Uri: "blastoise", Id: "2"},
			{Name: "Venusaur", Uri: "venusaur", Id: "3"},
		},
		"3": {
			{Name: "Pikachu", Uri: "pikachu", Id: "4"},
			{Name: "Alakazam", Uri: "alakazam", Id: "5"},
		},
		"5": {},
	}

	var cursors []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/console/pokemon-base-set", r.URL.Path)
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "model-number", r.URL.Query().Get("sort"))
		require.Equal(t, "none", r.URL.Query().Get("when"))

		cursor := r.URL.Query().Get("cursor")
		cursors = append(cursors, cursor)
		json.NewEncoder(w).Encode(consolePage{Products: pages[cursor]})
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	entries, err := client.ListCards(context.Background(), "pokemon-base-set")
	require.NoError(t, err)

	require.Equal(t, []string{"0", "3", "5"}, cursors)
	require.Len(t, entries, 5)
	require.Equal(t, CatalogEntry{
		Name: "Charizard",
		Url:  server.URL + "/pokemon-base-set/charizard",
		Id:   "1",
	}, entries[0])
	require.Equal(t, "Alakazam", entries[4].Name)
}

func TestListCardsSkipsIncompleteEntries(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pricecharting")
	defer cleanup()

	pages := map[string][]consoleProduct{
		"0": {
			{Name: "Charizard", Uri: "charizard", Id: "1"},
			{Name: "", Uri: "mystery", Id: "2"},
			{Name: "Missing uri", Uri: "", Id: "3"},
		},
		"3": {},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(consolePage{Products: pages[r.URL.Query().Get("cursor")]})
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	entries, err := client.ListCards(context.Background(), "pokemon-base-set")
	require.NoError(t, err)

	// the cursor still advanced by the full page size
	require.Len(t, entries, 1)
	require.Equal(t, "Charizard", entries[0].Name)
}

func TestListCardsPaginationLimit(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pricecharting")
	defer cleanup()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(consolePage{Products: []consoleProduct{
			{
				Name: fmt.Sprintf("Card %d", requests),
				Uri:  fmt.Sprintf("card-%d", requests),
				Id:   json.Number(strconv.Itoa(requests)),
			},
		}})
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, MaxPages: 3})
	require.NoError(t, err)

	entries, err := client.ListCards(context.Background(), "endless")
	require.ErrorIs(t, err, ErrPaginationLimit)
	require.Equal(t, 3, requests)
	require.Len(t, entries, 3)
}

const landingFixture = `<html><body>
<div class="console-listing all">
  <ul>
    <li><a href="/console/pokemon-base-set">Pokemon Base Set</a></li>
    <li><a href="/console/pokemon-jungle">Pokemon
      Jungle</a></li>
    <li><a href="https://elsewhere.example.com/absolute">Elsewhere</a></li>
  </ul>
</div>
<div class="console-listing">
  <ul><li><a href="/console/ignored">Ignored</a></li></ul>
</div>
</body></html>`

func TestListSets(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pricecharting")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/category/pokemon-cards", r.URL.Path)
		w.Write([]byte(landingFixture))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	sets, err := client.ListSets(context.Background())
	require.NoError(t, err)

	require.Len(t, sets, 3)
	require.Equal(t, CatalogEntry{
		Name: "Pokemon Base Set",
		Url:  server.URL + "/console/pokemon-base-set",
	}, sets[0])
	require.Equal(t, "Pokemon Jungle", sets[1].Name)
	require.Equal(t, "https://elsewhere.example.com/absolute", sets[2].Url)
}
