// Package stock implements the stock price demo: symbol lookup, the
// disambiguation menu, and quote retrieval through a Provider.
package stock

import "context"

// Match is one candidate returned by a symbol search
type Match struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Score  float64 `json:"score"`
}

// Quote is the latest price information for a symbol. Change fields are
// empty when the provider omits them.
type Quote struct {
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`
	Change        string `json:"change,omitempty"`
	ChangePercent string `json:"change_percent,omitempty"`
}

// Provider is a source of stock data
type Provider interface {
	// SymbolSearch returns matches for keywords ordered by relevance
	SymbolSearch(ctx context.Context, keywords string) ([]Match, error)

	// GlobalQuote returns the latest quote for symbol
	GlobalQuote(ctx context.Context, symbol string) (Quote, error)
}
