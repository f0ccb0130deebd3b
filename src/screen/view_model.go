package screen

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/quicktime/optionchain/src/eventmodels"
	"github.com/quicktime/optionchain/src/marketdata"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateUnmounted
)

// MarketDataFetcher is the slice of the market data client the chain screen
// consumes.
type MarketDataFetcher interface {
	FetchQuote(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.Quote, error)
	FetchExpirations(ctx context.Context, symbol eventmodels.StockSymbol) ([]eventmodels.ExpirationDate, error)
	FetchContracts(ctx context.Context, symbol eventmodels.StockSymbol, expiration eventmodels.ExpirationDate) ([]*eventmodels.OptionContract, error)
}

// ChainViewModel drives one options-chain screen: it owns the canonical
// contract list, one live subscription per contract plus one for the
// underlying, and the registry mapping contract symbol to its stop
// capability. The registry is owned exclusively by this instance.
type ChainViewModel struct {
	client   MarketDataFetcher
	streamer marketdata.Streamer
	symbol   eventmodels.StockSymbol

	mu                 sync.Mutex
	state              State
	quote              *eventmodels.Quote
	expirations        []eventmodels.ExpirationDate
	selectedExpiration eventmodels.ExpirationDate
	contracts          []*eventmodels.OptionContract
	contractSubs       map[eventmodels.OptionSymbol]*marketdata.Subscription
	underlyingSub      *marketdata.Subscription
	onChange           func()
}

func NewChainViewModel(client MarketDataFetcher, streamer marketdata.Streamer, symbol eventmodels.StockSymbol) *ChainViewModel {
	return &ChainViewModel{
		client:       client,
		streamer:     streamer,
		symbol:       symbol,
		state:        StateLoading,
		contractSubs: make(map[eventmodels.OptionSymbol]*marketdata.Subscription),
	}
}

// OnChange registers a render hook invoked after every applied update or
// contract set replacement.
func (vm *ChainViewModel) OnChange(fn func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.onChange = fn
}

// notifyChange must be called without vm.mu held: the hook is free to read
// the view model back.
func (vm *ChainViewModel) notifyChange() {
	vm.mu.Lock()
	fn := vm.onChange
	vm.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Mount loads the screen: underlying quote subscription, quote, expirations,
// and the contract set for the earliest expiration. Quote and expiration
// failures propagate so the caller can surface them; the caller is expected
// to Unmount afterwards.
func (vm *ChainViewModel) Mount(ctx context.Context) error {
	underlyingSub, err := vm.streamer.SubscribeToQuote(vm.symbol, vm.applyQuoteUpdate)
	if err != nil {
		return fmt.Errorf("Mount: failed to subscribe to underlying quote: %w", err)
	}

	vm.mu.Lock()
	vm.underlyingSub = underlyingSub
	vm.mu.Unlock()

	quote, err := vm.client.FetchQuote(ctx, vm.symbol)
	if err != nil {
		return fmt.Errorf("Mount: failed to fetch quote: %w", err)
	}

	expirations, err := vm.client.FetchExpirations(ctx, vm.symbol)
	if err != nil {
		return fmt.Errorf("Mount: failed to fetch expirations: %w", err)
	}

	vm.mu.Lock()
	if vm.state == StateUnmounted {
		vm.mu.Unlock()
		return nil
	}

	vm.quote = quote
	vm.expirations = expirations

	if len(expirations) == 0 {
		vm.state = StateReady
		vm.mu.Unlock()
		vm.notifyChange()
		return nil
	}

	vm.selectedExpiration = expirations[0]
	vm.mu.Unlock()

	if err := vm.loadContracts(ctx, expirations[0]); err != nil {
		return fmt.Errorf("Mount: %w", err)
	}

	vm.mu.Lock()
	if vm.state != StateUnmounted {
		vm.state = StateReady
	}
	vm.mu.Unlock()

	return nil
}

// SelectExpiration replaces the contract set: every open contract
// subscription is stopped and the registry cleared before the new
// expiration's contracts are fetched and subscribed.
func (vm *ChainViewModel) SelectExpiration(ctx context.Context, expiration eventmodels.ExpirationDate) error {
	vm.mu.Lock()
	if vm.state == StateUnmounted {
		vm.mu.Unlock()
		return fmt.Errorf("SelectExpiration: view model is unmounted")
	}

	vm.selectedExpiration = expiration
	vm.mu.Unlock()

	return vm.loadContracts(ctx, expiration)
}

// loadContracts drains the previous registry, fetches the new contract set
// and opens one subscription per returned contract. The drain completes
// before repopulation begins, so no update for a replaced contract can land
// once the swap is underway.
func (vm *ChainViewModel) loadContracts(ctx context.Context, expiration eventmodels.ExpirationDate) error {
	vm.drainContractSubscriptions()

	contracts, err := vm.client.FetchContracts(ctx, vm.symbol, expiration)
	if err != nil {
		return fmt.Errorf("loadContracts: failed to fetch contracts: %w", err)
	}

	vm.mu.Lock()
	if vm.state == StateUnmounted {
		vm.mu.Unlock()
		return nil
	}

	vm.contracts = contracts
	vm.mu.Unlock()

	for _, contract := range contracts {
		sub, err := vm.streamer.SubscribeToContract(contract.Symbol, vm.applyContractUpdate)
		if err != nil {
			log.Errorf("loadContracts: failed to subscribe to %s: %v", contract.Symbol, err)
			continue
		}

		vm.mu.Lock()
		if vm.state == StateUnmounted {
			vm.mu.Unlock()
			sub.Stop()
			return nil
		}

		vm.contractSubs[contract.Symbol] = sub
		vm.mu.Unlock()
	}

	vm.notifyChange()

	return nil
}

// drainContractSubscriptions stops every open contract subscription and
// clears the registry. Stops run outside the lock so a concurrently
// delivered update can never deadlock against teardown.
func (vm *ChainViewModel) drainContractSubscriptions() {
	vm.mu.Lock()
	subs := make([]*marketdata.Subscription, 0, len(vm.contractSubs))
	for _, sub := range vm.contractSubs {
		subs = append(subs, sub)
	}
	vm.contractSubs = make(map[eventmodels.OptionSymbol]*marketdata.Subscription)
	vm.mu.Unlock()

	for _, sub := range subs {
		sub.Stop()
	}
}

// applyContractUpdate merges a push update into the matching contract.
// Updates for symbols no longer in the list (already replaced by a newer
// expiration selection) and updates arriving after unmount are no-ops.
func (vm *ChainViewModel) applyContractUpdate(update *eventmodels.ContractUpdate) {
	vm.mu.Lock()

	if vm.state == StateUnmounted {
		vm.mu.Unlock()
		return
	}

	var matched bool
	for _, contract := range vm.contracts {
		if contract.Symbol == update.Symbol {
			contract.ApplyUpdate(update)
			matched = true
			break
		}
	}
	vm.mu.Unlock()

	if matched {
		vm.notifyChange()
	}
}

func (vm *ChainViewModel) applyQuoteUpdate(update *eventmodels.QuoteUpdate) {
	vm.mu.Lock()

	if vm.state == StateUnmounted || vm.quote == nil || update.Price == nil {
		vm.mu.Unlock()
		return
	}

	vm.quote.Price = *update.Price
	vm.quote.Change = vm.quote.Price - vm.quote.PreviousClose
	if vm.quote.PreviousClose != 0 {
		vm.quote.ChangePercent = vm.quote.Change / vm.quote.PreviousClose * 100
	}
	vm.mu.Unlock()

	vm.notifyChange()
}

// Unmount stops the underlying subscription and every contract
// subscription, then transitions to the terminal state. No state mutation
// is permitted afterwards.
func (vm *ChainViewModel) Unmount() {
	vm.mu.Lock()
	if vm.state == StateUnmounted {
		vm.mu.Unlock()
		return
	}

	vm.state = StateUnmounted
	underlyingSub := vm.underlyingSub
	vm.underlyingSub = nil

	subs := make([]*marketdata.Subscription, 0, len(vm.contractSubs))
	for _, sub := range vm.contractSubs {
		subs = append(subs, sub)
	}
	vm.contractSubs = make(map[eventmodels.OptionSymbol]*marketdata.Subscription)
	vm.mu.Unlock()

	if underlyingSub != nil {
		underlyingSub.Stop()
	}

	for _, sub := range subs {
		sub.Stop()
	}
}

func (vm *ChainViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.state
}

func (vm *ChainViewModel) Quote() *eventmodels.Quote {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.quote == nil {
		return nil
	}

	quote := *vm.quote
	return &quote
}

func (vm *ChainViewModel) Expirations() []eventmodels.ExpirationDate {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	expirations := make([]eventmodels.ExpirationDate, len(vm.expirations))
	copy(expirations, vm.expirations)

	return expirations
}

func (vm *ChainViewModel) SelectedExpiration() eventmodels.ExpirationDate {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	return vm.selectedExpiration
}

func (vm *ChainViewModel) Contracts() []*eventmodels.OptionContract {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	contracts := make([]*eventmodels.OptionContract, len(vm.contracts))
	copy(contracts, vm.contracts)

	return contracts
}
