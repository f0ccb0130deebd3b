package marketdata

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/quicktime/optionchain/src/eventmodels"
)

// FetchMarketStatus degrades to a synthesized all-closed status on any
// failure rather than erroring.
func (c *Client) FetchMarketStatus(ctx context.Context) *eventmodels.MarketStatus {
	requestURL, err := c.makeRequestURL("v1", "marketstatus", "now")
	if err != nil {
		log.Errorf("FetchMarketStatus: %v", err)
		return eventmodels.NewClosedMarketStatus(time.Now().UTC())
	}

	var dto eventmodels.PolygonMarketStatusDTO
	if err := c.get(ctx, "FetchMarketStatus", requestURL, nil, &dto); err != nil {
		log.Errorf("FetchMarketStatus: %v", err)
		return eventmodels.NewClosedMarketStatus(time.Now().UTC())
	}

	return dto.ToMarketStatus()
}
