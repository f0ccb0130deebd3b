package eventmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionContractApplyUpdate(t *testing.T) {
	newContract := func() *OptionContract {
		return &OptionContract{
			Symbol:            "O:AAPL260116C00200000",
			UnderlyingSymbol:  "AAPL",
			ExpirationDate:    "2026-01-16",
			Strike:            200,
			OptionType:        OptionTypeCall,
			LastPrice:         2.35,
			Bid:               2.30,
			Ask:               2.40,
			OpenInterest:      5400,
			Volume:            1200,
			ImpliedVolatility: 0.27,
			Greeks:            Greeks{Delta: 0.45, Gamma: 0.08, Theta: -0.04, Vega: 0.12},
		}
	}

	t.Run("merges only the non-nil fields", func(t *testing.T) {
		contract := newContract()

		price := 2.50
		volume := int64(1500)
		contract.ApplyUpdate(&ContractUpdate{
			Symbol:    contract.Symbol,
			LastPrice: &price,
			Volume:    &volume,
		})

		assert.Equal(t, 2.50, contract.LastPrice)
		assert.Equal(t, int64(1500), contract.Volume)

		// untouched fields keep their values
		assert.Equal(t, 2.30, contract.Bid)
		assert.Equal(t, 2.40, contract.Ask)
		assert.Equal(t, int64(5400), contract.OpenInterest)
		assert.Equal(t, 0.45, contract.Greeks.Delta)
	})

	t.Run("greeks replace as one value", func(t *testing.T) {
		contract := newContract()

		contract.ApplyUpdate(&ContractUpdate{
			Symbol: contract.Symbol,
			Greeks: &Greeks{Delta: 0.50},
		})

		assert.Equal(t, 0.50, contract.Greeks.Delta)
		assert.Zero(t, contract.Greeks.Gamma)
		assert.Zero(t, contract.Greeks.Vega)
	})

	t.Run("an all-nil update changes nothing", func(t *testing.T) {
		contract := newContract()
		before := *contract

		contract.ApplyUpdate(&ContractUpdate{Symbol: contract.Symbol})

		assert.Equal(t, before, *contract)
	})
}

func TestExpirationDateToTime(t *testing.T) {
	exp, err := ExpirationDate("2026-01-16").ToTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC), exp)

	_, err = ExpirationDate("01/16/2026").ToTime()
	assert.Error(t, err)
}

func TestNewOptionType(t *testing.T) {
	call, err := NewOptionType("call")
	require.NoError(t, err)
	assert.Equal(t, OptionTypeCall, call)

	put, err := NewOptionType("put")
	require.NoError(t, err)
	assert.Equal(t, OptionTypePut, put)

	_, err = NewOptionType("straddle")
	assert.Error(t, err)
}
