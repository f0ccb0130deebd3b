package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quicktime/optionchain/src/eventmodels"
)

func barsWithCloses(closes ...float64) []eventmodels.Bar {
	bars := make([]eventmodels.Bar, 0, len(closes))
	for _, close := range closes {
		bars = append(bars, eventmodels.Bar{Close: close})
	}

	return bars
}

func TestRealizedVolatility(t *testing.T) {
	t.Run("constant prices have zero volatility", func(t *testing.T) {
		vol := RealizedVolatility(barsWithCloses(100, 100, 100, 100))

		assert.Zero(t, vol)
	})

	t.Run("annualizes the stdev of log returns", func(t *testing.T) {
		// alternating +1%/-1% daily moves
		vol := RealizedVolatility(barsWithCloses(100, 101, 99.99, 100.99, 99.98))

		expectedDaily := 0.01155 // sample stdev of the four log returns
		assert.InDelta(t, expectedDaily*math.Sqrt(252), vol, 0.01)
	})

	t.Run("too few bars yields zero", func(t *testing.T) {
		assert.Zero(t, RealizedVolatility(nil))
		assert.Zero(t, RealizedVolatility(barsWithCloses(100, 101)))
	})

	t.Run("non-positive closes are skipped", func(t *testing.T) {
		vol := RealizedVolatility(barsWithCloses(100, 0, 100, 0))

		assert.Zero(t, vol)
	})
}
