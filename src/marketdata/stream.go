package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/quicktime/optionchain/src/eventmodels"
	"github.com/quicktime/optionchain/src/eventpubsub"
)

// Streamer opens per-symbol push channels. Implementations deliver partial
// update records to the callback until the returned subscription is stopped.
type Streamer interface {
	SubscribeToQuote(symbol eventmodels.StockSymbol, onUpdate func(*eventmodels.QuoteUpdate)) (*Subscription, error)
	SubscribeToContract(contractSymbol eventmodels.OptionSymbol, onUpdate func(*eventmodels.ContractUpdate)) (*Subscription, error)
}

type wsControlMessage struct {
	Action string `json:"action"`
	Params string `json:"params"`
}

type wsUpdateDTO struct {
	EventType string   `json:"ev"`
	Symbol    string   `json:"sym"`
	Price     *float64 `json:"p,omitempty"`
	Bid       *float64 `json:"bp,omitempty"`
	Ask       *float64 `json:"ap,omitempty"`
	Volume    *int64   `json:"v,omitempty"`
}

// WsStreamer is a websocket client for the provider's push channel. Incoming
// updates fan out to subscribers through the in-process event bus, keyed by
// symbol topic.
type WsStreamer struct {
	wsURL  string
	apiKey string

	conn    *websocket.Conn
	writeMu sync.Mutex

	// params currently subscribed on the wire, replayed after a reconnect
	activeMu     sync.Mutex
	activeParams map[string]int

	cancel context.CancelFunc
}

func NewWsStreamer(wsURL, apiKey string) *WsStreamer {
	return &WsStreamer{
		wsURL:        wsURL,
		apiKey:       apiKey,
		activeParams: make(map[string]int),
	}
}

func (s *WsStreamer) connect() (*websocket.Conn, error) {
	log.Infof("connecting to %s", s.wsURL)

	c, _, err := websocket.DefaultDialer.Dial(s.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("WsStreamer.connect: failed to dial: %w", err)
	}

	if err := c.WriteJSON(wsControlMessage{Action: "auth", Params: s.apiKey}); err != nil {
		c.Close()
		return nil, fmt.Errorf("WsStreamer.connect: failed to authenticate: %w", err)
	}

	return c, nil
}

// Start dials the push channel and launches the read loop. It must be
// called before the first subscribe.
func (s *WsStreamer) Start(ctx context.Context) error {
	conn, err := s.connect()
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	s.conn = conn
	s.writeMu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	go s.readLoop(ctx)

	return nil
}

func (s *WsStreamer) Close() {
	if s.cancel != nil {
		s.cancel()
	}

	if conn := s.currentConn(); conn != nil {
		if err := conn.Close(); err != nil {
			log.Errorf("WsStreamer.Close: error closing connection: %v", err)
		}
	}
}

func (s *WsStreamer) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			conn := s.currentConn()

			if err := conn.SetReadDeadline(time.Now().UTC().Add(30 * time.Second)); err != nil {
				log.Errorf("WsStreamer.readLoop: SetReadDeadline(): %v", err)
			}

			_, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				log.Errorf("WsStreamer.readLoop: ReadMessage(): %v", err)
				s.reconnect(ctx)
				continue
			}

			var updates []wsUpdateDTO
			if err := json.Unmarshal(message, &updates); err != nil {
				log.Errorf("WsStreamer.readLoop: failed to unmarshal json: %v", err)
				continue
			}

			for _, update := range updates {
				s.dispatch(update)
			}
		}
	}
}

// reconnect dials until it succeeds or the context is cancelled, sleeping
// between failed attempts. The new connection is swapped in under writeMu so
// a concurrent subscribe never writes to a connection being replaced.
func (s *WsStreamer) reconnect(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		newConn, err := s.connect()
		if err != nil {
			log.Errorf("WsStreamer.reconnect: %v", err)
			log.Info("retrying in 5 seconds ...")

			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}

			continue
		}

		if ctx.Err() != nil {
			newConn.Close()
			return
		}

		s.writeMu.Lock()
		oldConn := s.conn
		s.conn = newConn
		s.writeMu.Unlock()

		if err := oldConn.Close(); err != nil {
			log.Errorf("WsStreamer.reconnect: error closing old connection: %v", err)
		}

		s.replaySubscriptions()

		return
	}
}

func (s *WsStreamer) currentConn() *websocket.Conn {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn
}

// dispatch routes one wire update onto the bus. Contract symbols carry the
// provider's O: prefix.
func (s *WsStreamer) dispatch(update wsUpdateDTO) {
	if strings.HasPrefix(update.Symbol, "O:") {
		eventpubsub.Publish(eventpubsub.ContractTopic(update.Symbol), &eventmodels.ContractUpdate{
			Symbol:    eventmodels.OptionSymbol(update.Symbol),
			LastPrice: update.Price,
			Bid:       update.Bid,
			Ask:       update.Ask,
			Volume:    update.Volume,
		})

		return
	}

	eventpubsub.Publish(eventpubsub.QuoteTopic(update.Symbol), &eventmodels.QuoteUpdate{
		Symbol: eventmodels.StockSymbol(update.Symbol),
		Price:  update.Price,
		Bid:    update.Bid,
		Ask:    update.Ask,
		Volume: update.Volume,
	})
}

func (s *WsStreamer) writeControl(action, params string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("WsStreamer.writeControl: not connected")
	}

	if err := s.conn.WriteJSON(wsControlMessage{Action: action, Params: params}); err != nil {
		return fmt.Errorf("WsStreamer.writeControl: failed to write %s %s: %w", action, params, err)
	}

	return nil
}

func (s *WsStreamer) addParams(params string) error {
	s.activeMu.Lock()
	s.activeParams[params]++
	first := s.activeParams[params] == 1
	s.activeMu.Unlock()

	if !first {
		return nil
	}

	return s.writeControl("subscribe", params)
}

func (s *WsStreamer) removeParams(params string) {
	s.activeMu.Lock()
	s.activeParams[params]--
	last := s.activeParams[params] <= 0
	if last {
		delete(s.activeParams, params)
	}
	s.activeMu.Unlock()

	if !last {
		return
	}

	if err := s.writeControl("unsubscribe", params); err != nil {
		log.Errorf("WsStreamer.removeParams: %v", err)
	}
}

func (s *WsStreamer) replaySubscriptions() {
	s.activeMu.Lock()
	params := make([]string, 0, len(s.activeParams))
	for p := range s.activeParams {
		params = append(params, p)
	}
	s.activeMu.Unlock()

	for _, p := range params {
		if err := s.writeControl("subscribe", p); err != nil {
			log.Errorf("WsStreamer.replaySubscriptions: %v", err)
		}
	}
}

func (s *WsStreamer) SubscribeToQuote(symbol eventmodels.StockSymbol, onUpdate func(*eventmodels.QuoteUpdate)) (*Subscription, error) {
	topic := eventpubsub.QuoteTopic(string(symbol))
	params := fmt.Sprintf("Q.%s", symbol)

	handler := func(update *eventmodels.QuoteUpdate) {
		onUpdate(update)
	}

	if err := eventpubsub.Subscribe(topic, handler); err != nil {
		return nil, fmt.Errorf("SubscribeToQuote: failed to subscribe to bus: %w", err)
	}

	if err := s.addParams(params); err != nil {
		if unsubErr := eventpubsub.Unsubscribe(topic, handler); unsubErr != nil {
			log.Errorf("SubscribeToQuote: failed to roll back bus subscription: %v", unsubErr)
		}

		return nil, err
	}

	return NewSubscription(topic, func() {
		if err := eventpubsub.Unsubscribe(topic, handler); err != nil {
			log.Errorf("SubscribeToQuote: failed to unsubscribe from bus: %v", err)
		}

		s.removeParams(params)
	}), nil
}

func (s *WsStreamer) SubscribeToContract(contractSymbol eventmodels.OptionSymbol, onUpdate func(*eventmodels.ContractUpdate)) (*Subscription, error) {
	topic := eventpubsub.ContractTopic(string(contractSymbol))
	params := fmt.Sprintf("Q.%s", contractSymbol)

	handler := func(update *eventmodels.ContractUpdate) {
		onUpdate(update)
	}

	if err := eventpubsub.Subscribe(topic, handler); err != nil {
		return nil, fmt.Errorf("SubscribeToContract: failed to subscribe to bus: %w", err)
	}

	if err := s.addParams(params); err != nil {
		if unsubErr := eventpubsub.Unsubscribe(topic, handler); unsubErr != nil {
			log.Errorf("SubscribeToContract: failed to roll back bus subscription: %v", unsubErr)
		}

		return nil, err
	}

	return NewSubscription(topic, func() {
		if err := eventpubsub.Unsubscribe(topic, handler); err != nil {
			log.Errorf("SubscribeToContract: failed to unsubscribe from bus: %v", err)
		}

		s.removeParams(params)
	}), nil
}
