// Command fakeprovider serves deterministic provider JSON for local
// development, so the chain screen can run without a provider API key.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quicktime/optionchain/src/eventmodels"
)

var queryDecoder = schema.NewDecoder()

type contractsQuery struct {
	UnderlyingTicker string `schema:"underlying_ticker"`
	ExpirationDate   string `schema:"expiration_date"`
	Expired          bool   `schema:"expired"`
	Limit            int    `schema:"limit"`
	Order            string `schema:"order"`
	Sort             string `schema:"sort"`
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("writeJSON: %v", err)
	}
}

func expirations() []string {
	base := time.Now().UTC()

	var dates []string
	for _, days := range []int{7, 14, 30} {
		dates = append(dates, base.AddDate(0, 0, days).Format("2006-01-02"))
	}

	return dates
}

func contractTicker(underlying, expiration string, optionType string, strike float64) string {
	exp, _ := time.Parse("2006-01-02", expiration)
	letter := "C"
	if optionType == "put" {
		letter = "P"
	}

	return fmt.Sprintf("O:%s%s%s%08d", underlying, exp.Format("060102"), letter, int(strike*1000))
}

func handlePrevClose(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	writeJSON(w, eventmodels.PolygonListResponse[eventmodels.PolygonAggregateBarDTO]{
		Status:       "OK",
		QueryCount:   1,
		ResultsCount: 1,
		Results: []eventmodels.PolygonAggregateBarDTO{
			{Ticker: symbol, Open: 100, High: 103, Low: 99, Close: 102, Volume: 1_000_000, Time: time.Now().UTC().UnixMilli()},
		},
	})
}

func handleAggregates(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	var results []eventmodels.PolygonAggregateBarDTO
	price := 100.0
	for i := 0; i < 30; i++ {
		price *= 1 + 0.002*float64(i%5-2)
		results = append(results, eventmodels.PolygonAggregateBarDTO{
			Ticker: symbol,
			Open:   price * 0.995,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 500_000,
			Time:   time.Now().UTC().AddDate(0, 0, i-30).UnixMilli(),
		})
	}

	writeJSON(w, eventmodels.PolygonListResponse[eventmodels.PolygonAggregateBarDTO]{
		Status:       "OK",
		QueryCount:   1,
		ResultsCount: len(results),
		Results:      results,
	})
}

func handleTickerSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	writeJSON(w, eventmodels.PolygonListResponse[eventmodels.PolygonReferenceTickerDTO]{
		Status: "OK",
		Results: []eventmodels.PolygonReferenceTickerDTO{
			{Ticker: query, Name: fmt.Sprintf("%s Inc.", query), Market: "stocks", Locale: "us", Active: true, CurrencyName: "usd"},
		},
	})
}

func handleTickerDetails(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	writeJSON(w, eventmodels.PolygonObjectResponse[eventmodels.PolygonTickerDetailsDTO]{
		Status: "OK",
		Results: &eventmodels.PolygonTickerDetailsDTO{
			Ticker:          symbol,
			Name:            fmt.Sprintf("%s Inc.", symbol),
			Market:          "stocks",
			PrimaryExchange: "XNAS",
			Description:     "A synthetic company served by fakeprovider.",
			TotalEmployees:  1000,
		},
	})
}

func handleContracts(w http.ResponseWriter, r *http.Request) {
	var q contractsQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		log.Errorf("handleContracts: failed to decode query: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dates := expirations()
	if q.ExpirationDate != "" {
		dates = []string{q.ExpirationDate}
	}

	var results []eventmodels.PolygonOptionContractDTO
	for _, expiration := range dates {
		for _, optionType := range []string{"call", "put"} {
			for strike := 90.0; strike <= 110.0; strike += 5.0 {
				results = append(results, eventmodels.PolygonOptionContractDTO{
					ContractType:      optionType,
					ExerciseStyle:     "american",
					ExpirationDate:    expiration,
					SharesPerContract: 100,
					StrikePrice:       strike,
					Ticker:            contractTicker(q.UnderlyingTicker, expiration, optionType, strike),
					UnderlyingTicker:  q.UnderlyingTicker,
				})
			}
		}
	}

	writeJSON(w, eventmodels.PolygonListResponse[eventmodels.PolygonOptionContractDTO]{
		Status:       "OK",
		QueryCount:   1,
		ResultsCount: len(results),
		Results:      results,
	})
}

func handleLastTrade(w http.ResponseWriter, r *http.Request) {
	contract := mux.Vars(r)["contract"]

	writeJSON(w, eventmodels.PolygonObjectResponse[eventmodels.PolygonLastTradeDTO]{
		Status: "OK",
		Results: &eventmodels.PolygonLastTradeDTO{
			Ticker:    contract,
			Price:     2.35,
			Size:      3,
			Timestamp: time.Now().UTC().UnixNano(),
		},
	})
}

func handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, eventmodels.PolygonObjectResponse[eventmodels.PolygonOptionSnapshotDTO]{
		Status: "OK",
		Results: &eventmodels.PolygonOptionSnapshotDTO{
			Day:               &eventmodels.PolygonSnapshotDayDTO{Volume: 1200, Close: 2.30, PreviousClose: 2.10},
			Greeks:            &eventmodels.PolygonSnapshotGreeksDTO{Delta: 0.45, Gamma: 0.08, Theta: -0.04, Vega: 0.12},
			ImpliedVolatility: 0.27,
			OpenInterest:      5400,
			LastQuote:         &eventmodels.PolygonSnapshotQuoteDTO{Bid: 2.30, Ask: 2.40},
		},
	})
}

func handleMarketStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, eventmodels.PolygonMarketStatusDTO{
		Market:     "open",
		Exchanges:  map[string]string{"nasdaq": "open", "nyse": "open"},
		ServerTime: time.Now().UTC().Format(time.RFC3339),
	})
}

func newRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/v2/aggs/ticker/{symbol}/prev", handlePrevClose).Methods(http.MethodGet)
	router.HandleFunc("/v2/aggs/ticker/{symbol}/range/{multiplier}/{timespan}/{from}/{to}", handleAggregates).Methods(http.MethodGet)
	router.HandleFunc("/v3/reference/tickers", handleTickerSearch).Methods(http.MethodGet)
	router.HandleFunc("/v3/reference/tickers/{symbol}", handleTickerDetails).Methods(http.MethodGet)
	router.HandleFunc("/v3/reference/options/contracts", handleContracts).Methods(http.MethodGet)
	router.HandleFunc("/v2/last/trade/{contract}", handleLastTrade).Methods(http.MethodGet)
	router.HandleFunc("/v3/snapshot/options/{underlying}/{contract}", handleSnapshot).Methods(http.MethodGet)
	router.HandleFunc("/v1/marketstatus/now", handleMarketStatus).Methods(http.MethodGet)

	return router
}

var runCmd = &cobra.Command{
	Use:   "fakeprovider",
	Short: "Serve canned market data provider responses for local development",
	Run: func(cmd *cobra.Command, args []string) {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			log.Fatalf("error getting port: %v", err)
		}

		queryDecoder.IgnoreUnknownKeys(true)

		addr := fmt.Sprintf(":%d", port)
		log.Infof("fakeprovider listening on %s", addr)

		if err := http.ListenAndServe(addr, newRouter()); err != nil {
			log.Fatalf("fakeprovider: %v", err)
		}
	},
}

func main() {
	runCmd.Flags().Int("port", 8090, "The port to listen on.")
	runCmd.Execute()
}
