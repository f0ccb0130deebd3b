package marketdata

import (
	"context"
	"fmt"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/quicktime/optionchain/src/eventmodels"
)

// FetchQuote returns the previous-close aggregate for a symbol with change
// and percent change derived client-side.
func (c *Client) FetchQuote(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.Quote, error) {
	requestURL, err := c.makeRequestURL("v2", "aggs", "ticker", string(symbol), "prev")
	if err != nil {
		return nil, fmt.Errorf("FetchQuote: %w", err)
	}

	var dto eventmodels.PolygonListResponse[eventmodels.PolygonAggregateBarDTO]
	if err := c.get(ctx, "FetchQuote", requestURL, nil, &dto); err != nil {
		return nil, err
	}

	if len(dto.Results) == 0 {
		return nil, newProviderError("FetchQuote", 0, fmt.Sprintf("no results for symbol %s", symbol))
	}

	bar := dto.Results[0]

	change := bar.Close - bar.Open
	changePercent := 0.0
	if bar.Open != 0 {
		changePercent = change / bar.Open * 100
	}

	return &eventmodels.Quote{
		Symbol:        symbol,
		Price:         bar.Close,
		PreviousClose: bar.Open,
		Change:        change,
		ChangePercent: changePercent,
	}, nil
}

// SearchSymbols is best-effort: any transport or provider failure yields an
// empty slice. Callers cannot distinguish "no matches" from "provider down".
func (c *Client) SearchSymbols(ctx context.Context, query string) []eventmodels.SymbolMatch {
	requestURL, err := c.makeRequestURL("v3", "reference", "tickers")
	if err != nil {
		log.Errorf("SearchSymbols: %v", err)
		return []eventmodels.SymbolMatch{}
	}

	q := url.Values{}
	q.Add("search", query)
	q.Add("active", "true")
	q.Add("limit", "25")

	var dto eventmodels.PolygonListResponse[eventmodels.PolygonReferenceTickerDTO]
	if err := c.get(ctx, "SearchSymbols", requestURL, q, &dto); err != nil {
		log.Errorf("SearchSymbols: %v", err)
		return []eventmodels.SymbolMatch{}
	}

	matches := make([]eventmodels.SymbolMatch, 0, len(dto.Results))
	for _, result := range dto.Results {
		matches = append(matches, result.ToSymbolMatch())
	}

	return matches
}

func (c *Client) FetchCompanyProfile(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.Profile, error) {
	requestURL, err := c.makeRequestURL("v3", "reference", "tickers", string(symbol))
	if err != nil {
		return nil, fmt.Errorf("FetchCompanyProfile: %w", err)
	}

	var dto eventmodels.PolygonObjectResponse[eventmodels.PolygonTickerDetailsDTO]
	if err := c.get(ctx, "FetchCompanyProfile", requestURL, nil, &dto); err != nil {
		return nil, err
	}

	if dto.Results == nil {
		return nil, newProviderError("FetchCompanyProfile", 0, fmt.Sprintf("no results for symbol %s", symbol))
	}

	profile := dto.Results.ToProfile()

	return &profile, nil
}
