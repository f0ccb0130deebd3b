package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quicktime/optionchain/src/eventmodels"
)

func contractPayload(ticker, underlying, expiration, contractType string, strike float64) string {
	return fmt.Sprintf(`{"ticker":%q,"underlying_ticker":%q,"expiration_date":%q,"contract_type":%q,"strike_price":%v,"exercise_style":"american","shares_per_contract":100}`,
		ticker, underlying, expiration, contractType, strike)
}

func TestFetchExpirations(t *testing.T) {
	ctx := context.Background()

	t.Run("deduplicates and sorts ascending", func(t *testing.T) {
		contracts := strings.Join([]string{
			contractPayload("O:AAPL260320C00200000", "AAPL", "2026-03-20", "call", 200),
			contractPayload("O:AAPL260220C00200000", "AAPL", "2026-02-20", "call", 200),
			contractPayload("O:AAPL260320P00200000", "AAPL", "2026-03-20", "put", 200),
			contractPayload("O:AAPL260116C00200000", "AAPL", "2026-01-16", "call", 200),
			contractPayload("O:AAPL260220P00200000", "AAPL", "2026-02-20", "put", 200),
		}, ",")

		server := newTestServer(t, map[string]string{
			"/v3/reference/options/contracts": fmt.Sprintf(`{"status":"OK","results":[%s]}`, contracts),
		})

		client := NewClient(server.URL, "test-key")

		expirations, err := client.FetchExpirations(ctx, "AAPL")
		require.NoError(t, err)

		assert.Equal(t, []eventmodels.ExpirationDate{"2026-01-16", "2026-02-20", "2026-03-20"}, expirations)
	})

	t.Run("follows next_url across pages", func(t *testing.T) {
		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/v3/reference/options/contracts", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			if r.URL.Query().Get("cursor") == "page2" {
				fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, contractPayload("O:AAPL260220C00210000", "AAPL", "2026-02-20", "call", 210))
				return
			}

			fmt.Fprintf(w, `{"status":"OK","results":[%s],"next_url":%q}`,
				contractPayload("O:AAPL260116C00200000", "AAPL", "2026-01-16", "call", 200),
				server.URL+"/v3/reference/options/contracts?cursor=page2")
		})

		server = httptest.NewServer(mux)
		defer server.Close()

		client := NewClient(server.URL, "test-key")

		expirations, err := client.FetchExpirations(ctx, "AAPL")
		require.NoError(t, err)

		assert.Equal(t, []eventmodels.ExpirationDate{"2026-01-16", "2026-02-20"}, expirations)
	})

	t.Run("propagates a provider failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")

		_, err := client.FetchExpirations(ctx, "AAPL")
		assert.Error(t, err)
	})
}

func TestFetchContracts(t *testing.T) {
	ctx := context.Background()

	listing := strings.Join([]string{
		contractPayload("O:AAPL260116C00190000", "AAPL", "2026-01-16", "call", 190),
		contractPayload("O:AAPL260116C00200000", "AAPL", "2026-01-16", "call", 200),
		contractPayload("O:AAPL260116C00210000", "AAPL", "2026-01-16", "call", 210),
	}, ",")

	newChainServer := func(t *testing.T, failSnapshotFor string) *httptest.Server {
		t.Helper()

		mux := http.NewServeMux()
		mux.HandleFunc("/v3/reference/options/contracts", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, listing)
		})
		mux.HandleFunc("/v2/last/trade/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":"OK","results":{"T":"O:AAPL260116C00200000","p":2.35,"s":1}}`)
		})
		mux.HandleFunc("/v3/snapshot/options/", func(w http.ResponseWriter, r *http.Request) {
			if failSnapshotFor != "" && strings.HasSuffix(r.URL.Path, failSnapshotFor) {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":"OK","results":{"open_interest":5400,"implied_volatility":0.27,"day":{"volume":1200},"last_quote":{"bid":2.30,"ask":2.40},"greeks":{"delta":0.45,"gamma":0.08,"theta":-0.04,"vega":0.12}}}`)
		})

		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		return server
	}

	t.Run("enriches every contract", func(t *testing.T) {
		server := newChainServer(t, "")
		client := NewClient(server.URL, "test-key")

		contracts, err := client.FetchContracts(ctx, "AAPL", "2026-01-16")
		require.NoError(t, err)
		require.Len(t, contracts, 3)

		for _, contract := range contracts {
			assert.Equal(t, 2.35, contract.LastPrice)
			assert.Equal(t, 2.30, contract.Bid)
			assert.Equal(t, 2.40, contract.Ask)
			assert.Equal(t, int64(5400), contract.OpenInterest)
			assert.Equal(t, int64(1200), contract.Volume)
			assert.Equal(t, 0.27, contract.ImpliedVolatility)
			assert.Equal(t, 0.45, contract.Greeks.Delta)
		}
	})

	t.Run("a failed enrichment zeroes that contract without aborting the batch", func(t *testing.T) {
		server := newChainServer(t, "O:AAPL260116C00200000")
		client := NewClient(server.URL, "test-key")

		contracts, err := client.FetchContracts(ctx, "AAPL", "2026-01-16")
		require.NoError(t, err)
		require.Len(t, contracts, 3)

		failed := contracts[1]
		assert.Equal(t, eventmodels.OptionSymbol("O:AAPL260116C00200000"), failed.Symbol)
		assert.Zero(t, failed.LastPrice)
		assert.Zero(t, failed.Bid)
		assert.Zero(t, failed.Ask)
		assert.Zero(t, failed.OpenInterest)
		assert.Zero(t, failed.Volume)
		assert.Zero(t, failed.ImpliedVolatility)
		assert.Equal(t, eventmodels.Greeks{}, failed.Greeks)

		// neighbors keep their enrichment
		assert.Equal(t, 2.35, contracts[0].LastPrice)
		assert.Equal(t, 2.35, contracts[2].LastPrice)
	})

	t.Run("resolves the earliest expiration when none is given", func(t *testing.T) {
		var requestedExpirations []string

		mux := http.NewServeMux()
		mux.HandleFunc("/v3/reference/options/contracts", func(w http.ResponseWriter, r *http.Request) {
			requestedExpirations = append(requestedExpirations, r.URL.Query().Get("expiration_date"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status":"OK","results":[%s,%s]}`,
				contractPayload("O:AAPL260220C00200000", "AAPL", "2026-02-20", "call", 200),
				contractPayload("O:AAPL260116C00200000", "AAPL", "2026-01-16", "call", 200))
		})
		mux.HandleFunc("/v2/last/trade/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":"OK","results":{"p":1.0,"s":1}}`)
		})
		mux.HandleFunc("/v3/snapshot/options/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status":"OK","results":{"open_interest":1}}`)
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := NewClient(server.URL, "test-key")

		contracts, err := client.FetchContracts(ctx, "AAPL", "")
		require.NoError(t, err)
		require.NotEmpty(t, contracts)

		// first call lists all expirations, second is scoped to the earliest
		require.Len(t, requestedExpirations, 2)
		assert.Equal(t, "", requestedExpirations[0])
		assert.Equal(t, "2026-01-16", requestedExpirations[1])
	})

	t.Run("no expirations means an empty chain, not an error", func(t *testing.T) {
		server := newTestServer(t, map[string]string{
			"/v3/reference/options/contracts": `{"status":"OK","results":[]}`,
		})

		client := NewClient(server.URL, "test-key")

		contracts, err := client.FetchContracts(ctx, "AAPL", "")
		require.NoError(t, err)
		assert.Empty(t, contracts)
	})
}

func TestFetchMarketStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the provider payload", func(t *testing.T) {
		server := newTestServer(t, map[string]string{
			"/v1/marketstatus/now": `{"market":"open","exchanges":{"nasdaq":"open","nyse":"open"},"serverTime":"2026-01-05T14:30:00Z"}`,
		})

		client := NewClient(server.URL, "test-key")

		status := client.FetchMarketStatus(ctx)
		assert.Equal(t, "open", status.Market)
		assert.Equal(t, "open", status.Exchanges["nasdaq"])
	})

	t.Run("degrades to all-closed on failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")

		status := client.FetchMarketStatus(ctx)
		require.NotNil(t, status)
		assert.Equal(t, "closed", status.Market)
	})
}
