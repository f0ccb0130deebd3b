package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/quicktime/optionchain/src/analytics"
	"github.com/quicktime/optionchain/src/eventmodels"
	"github.com/quicktime/optionchain/src/marketdata"
	"github.com/quicktime/optionchain/src/screen"
)

func renderChain(client *marketdata.Client, vm *screen.ChainViewModel, optionType eventmodels.OptionType, filter string) {
	quote := vm.Quote()
	if quote != nil {
		now := time.Now().UTC()
		bars := client.FetchHistoricalBars(context.Background(), quote.Symbol, 1, "day", now.AddDate(0, -1, 0), now, 50)
		realizedVol := analytics.RealizedVolatility(bars)

		fmt.Printf("\n%s  %.2f  %+.2f (%+.2f%%)  30d vol: %.1f%%\n", quote.Symbol, quote.Price, quote.Change, quote.ChangePercent, realizedVol*100)
	}

	fmt.Printf("expiration: %s (%d available)\n\n", vm.SelectedExpiration(), len(vm.Expirations()))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Contract", "Strike", "Last", "Bid", "Ask", "OI", "Volume", "IV", "Delta", "Theta"})

	for _, contract := range vm.VisibleContracts(optionType, filter) {
		table.Append([]string{
			string(contract.Symbol),
			fmt.Sprintf("%.2f", contract.Strike),
			fmt.Sprintf("%.2f", contract.LastPrice),
			fmt.Sprintf("%.2f", contract.Bid),
			fmt.Sprintf("%.2f", contract.Ask),
			fmt.Sprintf("%d", contract.OpenInterest),
			fmt.Sprintf("%d", contract.Volume),
			fmt.Sprintf("%.2f", contract.ImpliedVolatility),
			fmt.Sprintf("%.3f", contract.Greeks.Delta),
			fmt.Sprintf("%.3f", contract.Greeks.Theta),
		})
	}

	table.Render()
}

func renderQuote(quote *eventmodels.Quote) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Price", "Prev Close", "Change", "Change %"})
	table.Append([]string{
		string(quote.Symbol),
		fmt.Sprintf("%.2f", quote.Price),
		fmt.Sprintf("%.2f", quote.PreviousClose),
		fmt.Sprintf("%+.2f", quote.Change),
		fmt.Sprintf("%+.2f%%", quote.ChangePercent),
	})
	table.Render()
}

func renderMatches(matches []eventmodels.SymbolMatch) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Symbol", "Name", "Market", "Currency"})

	for _, match := range matches {
		table.Append([]string{string(match.Symbol), match.Name, match.Market, match.Currency})
	}

	table.Render()
}
