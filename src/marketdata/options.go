package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/quicktime/optionchain/src/eventmodels"
	"github.com/quicktime/optionchain/src/utils"
)

func (c *Client) fetchReferenceContracts(ctx context.Context, symbol eventmodels.StockSymbol, expiration eventmodels.ExpirationDate) eventmodels.FetchDataFunc[eventmodels.PolygonOptionContractDTO] {
	return func(requestURL, _ string) (*eventmodels.AggregateResult[eventmodels.PolygonOptionContractDTO], error) {
		q := url.Values{}
		q.Add("underlying_ticker", string(symbol))
		q.Add("expired", "false")
		q.Add("order", "asc")
		q.Add("limit", "1000")
		q.Add("sort", "strike_price")

		if expiration != "" {
			q.Add("expiration_date", string(expiration))
		}

		var dto eventmodels.PolygonListResponse[eventmodels.PolygonOptionContractDTO]
		if err := c.get(ctx, "fetchReferenceContracts", requestURL, q, &dto); err != nil {
			return nil, err
		}

		return &eventmodels.AggregateResult[eventmodels.PolygonOptionContractDTO]{
			QueryCount:   1,
			ResultsCount: len(dto.Results),
			Results:      dto.Results,
			GetNextURL:   func() *string { return dto.NextURL },
		}, nil
	}
}

// FetchExpirations lists the distinct expiration dates of a symbol's active
// contracts, deduplicated and sorted ascending. ISO dates sort
// lexicographically, which equals chronological order.
func (c *Client) FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]eventmodels.ExpirationDate, error) {
	requestURL, err := c.makeRequestURL("v3", "reference", "options", "contracts")
	if err != nil {
		return nil, fmt.Errorf("FetchExpirations: %w", err)
	}

	result, err := utils.FetchPaginated(requestURL, c.apiKey, c.fetchReferenceContracts(ctx, symbol, ""))
	if err != nil {
		return nil, fmt.Errorf("FetchExpirations: failed to fetch option contracts: %w", err)
	}

	seen := make(map[string]bool)
	var expirations []string
	for _, contract := range result.Results {
		if contract.ExpirationDate == "" {
			continue
		}

		if !seen[contract.ExpirationDate] {
			seen[contract.ExpirationDate] = true
			expirations = append(expirations, contract.ExpirationDate)
		}
	}

	sort.Strings(expirations)

	dates := make([]eventmodels.ExpirationDate, 0, len(expirations))
	for _, expiration := range expirations {
		dates = append(dates, eventmodels.ExpirationDate(expiration))
	}

	return dates, nil
}

// FetchContracts lists the contracts for one expiration and enriches each
// with last trade and snapshot pricing. When expiration is empty the
// earliest available expiration is used. A failed enrichment never aborts
// the batch: that contract keeps zero-valued pricing and Greeks.
func (c *Client) FetchContracts(ctx context.Context, symbol eventmodels.StockSymbol, expiration eventmodels.ExpirationDate) ([]*eventmodels.OptionContract, error) {
	tracer := otel.Tracer("FetchContracts")
	ctx, span := tracer.Start(ctx, "FetchContracts")
	defer span.End()

	if expiration == "" {
		expirations, err := c.FetchExpirations(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("FetchContracts: failed to resolve expiration: %w", err)
		}

		if len(expirations) == 0 {
			return []*eventmodels.OptionContract{}, nil
		}

		expiration = expirations[0]
	}

	requestURL, err := c.makeRequestURL("v3", "reference", "options", "contracts")
	if err != nil {
		return nil, fmt.Errorf("FetchContracts: %w", err)
	}

	result, err := utils.FetchPaginated(requestURL, c.apiKey, c.fetchReferenceContracts(ctx, symbol, expiration))
	if err != nil {
		return nil, fmt.Errorf("FetchContracts: failed to fetch option contracts: %w", err)
	}

	contracts := make([]*eventmodels.OptionContract, 0, len(result.Results))
	for _, dto := range result.Results {
		contract, err := dto.ToOptionContract()
		if err != nil {
			log.Errorf("FetchContracts: skipping contract %s: %v", dto.Ticker, err)
			continue
		}

		c.enrichContract(ctx, contract)
		contracts = append(contracts, contract)
	}

	return contracts, nil
}

// enrichContract fills pricing and Greeks from the last-trade and snapshot
// endpoints, issued in sequence. Enrichment is all-or-nothing per contract:
// a failure on either request resets the contract to zero-valued pricing so
// display code always sees a total record.
func (c *Client) enrichContract(ctx context.Context, contract *eventmodels.OptionContract) {
	if err := c.fetchLastTrade(ctx, contract); err != nil {
		log.Warnf("enrichContract: failed to fetch last trade for %s: %v", contract.Symbol, err)
		resetPricing(contract)
		return
	}

	if err := c.fetchOptionSnapshot(ctx, contract); err != nil {
		log.Warnf("enrichContract: failed to fetch snapshot for %s: %v", contract.Symbol, err)
		resetPricing(contract)
		return
	}
}

func resetPricing(contract *eventmodels.OptionContract) {
	contract.LastPrice = 0
	contract.Bid = 0
	contract.Ask = 0
	contract.OpenInterest = 0
	contract.Volume = 0
	contract.ImpliedVolatility = 0
	contract.Greeks = eventmodels.Greeks{}
}

func (c *Client) fetchLastTrade(ctx context.Context, contract *eventmodels.OptionContract) error {
	requestURL, err := c.makeRequestURL("v2", "last", "trade", string(contract.Symbol))
	if err != nil {
		return fmt.Errorf("fetchLastTrade: %w", err)
	}

	var dto eventmodels.PolygonObjectResponse[eventmodels.PolygonLastTradeDTO]
	if err := c.get(ctx, "fetchLastTrade", requestURL, nil, &dto); err != nil {
		return err
	}

	if dto.Results == nil {
		return newProviderError("fetchLastTrade", 0, fmt.Sprintf("no results for contract %s", contract.Symbol))
	}

	contract.LastPrice = dto.Results.Price

	return nil
}

func (c *Client) fetchOptionSnapshot(ctx context.Context, contract *eventmodels.OptionContract) error {
	requestURL, err := c.makeRequestURL("v3", "snapshot", "options", string(contract.UnderlyingSymbol), string(contract.Symbol))
	if err != nil {
		return fmt.Errorf("fetchOptionSnapshot: %w", err)
	}

	var dto eventmodels.PolygonObjectResponse[eventmodels.PolygonOptionSnapshotDTO]
	if err := c.get(ctx, "fetchOptionSnapshot", requestURL, nil, &dto); err != nil {
		return err
	}

	if dto.Results == nil {
		return newProviderError("fetchOptionSnapshot", 0, fmt.Sprintf("no results for contract %s", contract.Symbol))
	}

	snapshot := dto.Results

	contract.OpenInterest = snapshot.OpenInterest
	contract.ImpliedVolatility = snapshot.ImpliedVolatility

	if snapshot.Day != nil {
		contract.Volume = snapshot.Day.Volume
	}

	if snapshot.LastQuote != nil {
		contract.Bid = snapshot.LastQuote.Bid
		contract.Ask = snapshot.LastQuote.Ask
	}

	if snapshot.Greeks != nil {
		contract.Greeks = snapshot.Greeks.ToGreeks()
	}

	return nil
}
