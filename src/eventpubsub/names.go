package eventpubsub

import "fmt"

const (
	QuoteUpdateEvent    = "QuoteUpdateEvent"
	ContractUpdateEvent = "ContractUpdateEvent"
)

func QuoteTopic(symbol string) string {
	return fmt.Sprintf("%s.%s", QuoteUpdateEvent, symbol)
}

func ContractTopic(contractSymbol string) string {
	return fmt.Sprintf("%s.%s", ContractUpdateEvent, contractSymbol)
}
