package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/quicktime/optionchain/src/eventmodels"
)

const tradingDaysPerYear = 252

// RealizedVolatility returns the annualized standard deviation of daily log
// returns over the given bars. Best-effort like the history fetch that
// feeds it: fewer than three bars, or a stats failure, yields zero.
func RealizedVolatility(bars []eventmodels.Bar) float64 {
	if len(bars) < 3 {
		return 0
	}

	var returns []float64
	for i := 1; i < len(bars); i++ {
		if bars[i-1].Close <= 0 || bars[i].Close <= 0 {
			continue
		}

		returns = append(returns, math.Log(bars[i].Close/bars[i-1].Close))
	}

	if len(returns) < 2 {
		return 0
	}

	stdDev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		log.Errorf("RealizedVolatility: %v", err)
		return 0
	}

	return stdDev * math.Sqrt(tradingDaysPerYear)
}
