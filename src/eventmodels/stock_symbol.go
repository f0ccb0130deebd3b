package eventmodels

type StockSymbol string

func (s StockSymbol) String() string {
	return string(s)
}
