package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quicktime/optionchain/src/eventmodels"
)

func TestDeriveVisibleContracts(t *testing.T) {
	contracts := []*eventmodels.OptionContract{
		newContract("O:AAPL260116C00210000", eventmodels.OptionTypeCall, 210),
		newContract("O:AAPL260116P00200000", eventmodels.OptionTypePut, 200),
		newContract("O:AAPL260116C00190000", eventmodels.OptionTypeCall, 190),
		newContract("O:AAPL260116C00200000", eventmodels.OptionTypeCall, 200),
	}
	contracts[0].OpenInterest = 5400
	contracts[2].OpenInterest = 1254

	t.Run("filters by option type and sorts ascending by strike", func(t *testing.T) {
		visible := DeriveVisibleContracts(contracts, eventmodels.OptionTypeCall, "")

		require.Len(t, visible, 3)
		assert.Equal(t, 190.0, visible[0].Strike)
		assert.Equal(t, 200.0, visible[1].Strike)
		assert.Equal(t, 210.0, visible[2].Strike)
	})

	t.Run("filter matches strike text", func(t *testing.T) {
		visible := DeriveVisibleContracts(contracts, eventmodels.OptionTypeCall, "19")

		require.Len(t, visible, 1)
		assert.Equal(t, 190.0, visible[0].Strike)
	})

	t.Run("filter matches open interest text", func(t *testing.T) {
		visible := DeriveVisibleContracts(contracts, eventmodels.OptionTypeCall, "540")

		require.Len(t, visible, 1)
		assert.Equal(t, int64(5400), visible[0].OpenInterest)
	})

	t.Run("no match yields an empty list", func(t *testing.T) {
		visible := DeriveVisibleContracts(contracts, eventmodels.OptionTypePut, "999")

		assert.Empty(t, visible)
	})

	t.Run("never mutates the input", func(t *testing.T) {
		DeriveVisibleContracts(contracts, eventmodels.OptionTypeCall, "")

		assert.Equal(t, 210.0, contracts[0].Strike)
		assert.Equal(t, 200.0, contracts[1].Strike)
		assert.Equal(t, 190.0, contracts[2].Strike)
		assert.Equal(t, 200.0, contracts[3].Strike)
	})
}
