package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/quicktime/optionchain/src/eventmodels"
)

// FetchHistoricalBars is best-effort: failures are absorbed and an empty
// slice returned so a chart never blocks the rest of a screen.
func (c *Client) FetchHistoricalBars(ctx context.Context, symbol eventmodels.StockSymbol, multiplier int, timespan string, from, to time.Time, limit int) []eventmodels.Bar {
	requestURL, err := c.makeRequestURL(
		"v2", "aggs", "ticker", string(symbol),
		"range", fmt.Sprintf("%d", multiplier), timespan,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		log.Errorf("FetchHistoricalBars: %v", err)
		return []eventmodels.Bar{}
	}

	q := url.Values{}
	q.Add("sort", "asc")
	q.Add("adjusted", "true")
	q.Add("limit", fmt.Sprintf("%d", limit))

	var dto eventmodels.PolygonListResponse[eventmodels.PolygonAggregateBarDTO]
	if err := c.get(ctx, "FetchHistoricalBars", requestURL, q, &dto); err != nil {
		log.Errorf("FetchHistoricalBars: %v", err)
		return []eventmodels.Bar{}
	}

	bars := make([]eventmodels.Bar, 0, len(dto.Results))
	for _, result := range dto.Results {
		bars = append(bars, result.ToBar())
	}

	return bars
}
