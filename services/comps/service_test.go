package comps

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardcomps-backend/lib/compstore"
	"cardcomps-backend/lib/platforms/pricecharting"
	"cardcomps-backend/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const productFixture = `<html><body>
<div class="completed-auctions-manual-only">
  <table><tbody>
    <tr id="ebay-2">
      <td class="title">Blastoise PSA 10</td>
      <td><span class="js-price">$900.00</span></td>
      <td class="date">2024-06-01</td>
    </tr>
    <tr id="ebay-1">
      <td class="title">Blastoise PSA 10</td>
      <td><span class="js-price">$800.00</span></td>
      <td class="date">2024-01-01</td>
    </tr>
  </tbody></table>
</div>
<div class="completed-auctions-used">
  <table><tbody>
    <tr id="ebay-3">
      <td class="title">Blastoise</td>
      <td><span class="js-price">$100.00</span></td>
      <td class="date">2024-03-01</td>
    </tr>
  </tbody></table>
</div>
</body></html>`

func newTestService(t *testing.T, status int, body string) (Service, compstore.Store, string) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	pc, err := pricecharting.NewClient(pricecharting.ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	sqlite, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	_, err = sqlite.Exec(compstore.Schema)
	require.NoError(t, err)
	store := compstore.NewStore(sqlite)

	service := NewService(Options{
		Pricecharting: pc,
		Store:         &store,
	})
	return service, store, server.URL + "/game/pokemon-base-set/blastoise"
}

func TestGetComps(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:comps")
	defer cleanup()

	service, store, link := newTestService(t, http.StatusOK, productFixture)

	result, err := service.GetComps(context.Background(), link)
	require.NoError(t, err)

	// sales come back ordered by date regardless of page order
	require.Len(t, result.Sales, 3)
	require.Equal(t, "1", result.Sales[0].ExternalId)
	require.Equal(t, "3", result.Sales[1].ExternalId)
	require.Equal(t, "2", result.Sales[2].ExternalId)

	require.Len(t, result.Stats, 2)
	require.Equal(t, pricecharting.GradeStats{
		Count:      2,
		Median:     850,
		Mean:       850,
		Min:        800,
		Max:        900,
		LatestSale: 900,
	}, result.Stats["PSA 10"])

	// the aggregate also landed in the snapshot store
	snapshots, err := store.Pull(context.Background(), link)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	history, err := service.History(context.Background(), link)
	require.NoError(t, err)
	require.Equal(t, snapshots, history)
}

func TestGetCompsTransportFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:comps")
	defer cleanup()

	service, store, link := newTestService(t, http.StatusBadGateway, "bad gateway")

	_, err := service.GetComps(context.Background(), link)
	var statusErr pricecharting.StatusError
	require.ErrorAs(t, err, &statusErr)

	// a failed scrape never writes a snapshot
	snapshots, err := store.Pull(context.Background(), link)
	require.NoError(t, err)
	require.Len(t, snapshots, 0)
}

func TestSearchUnconfigured(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:comps")
	defer cleanup()

	service, _, _ := newTestService(t, http.StatusOK, productFixture)

	_, err := service.Search(context.Background(), "blastoise", 5)
	require.Error(t, err)
}
