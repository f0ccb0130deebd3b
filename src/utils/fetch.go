package utils

import (
	"fmt"
	"time"

	"github.com/quicktime/optionchain/src/eventmodels"
)

// FetchPaginated follows the provider's next_url chain until exhausted. No
// retries: a failed page fails the whole fetch (callers decide whether to
// degrade).
func FetchPaginated[T any](url, apiKey string, fetchDataFn eventmodels.FetchDataFunc[T]) (*eventmodels.AggregateResult[T], error) {
	var aggregateResult eventmodels.AggregateResult[T]

	for {
		resp, err := fetchDataFn(url, apiKey)
		if err != nil {
			return nil, fmt.Errorf("FetchPaginated: failed to fetch page: %w", err)
		}

		aggregateResult.QueryCount += resp.QueryCount
		aggregateResult.ResultsCount += resp.ResultsCount
		aggregateResult.Results = append(aggregateResult.Results, resp.Results...)

		if resp.GetNextURL == nil || resp.GetNextURL() == nil {
			break
		}

		url = *resp.GetNextURL()
		time.Sleep(50 * time.Millisecond)
	}

	return &aggregateResult, nil
}
