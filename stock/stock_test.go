package stock

import (
	"context"
	"sync"
)

// fakeProvider serves canned matches and quotes and counts calls
type fakeProvider struct {
	mu       sync.Mutex
	matches  []Match
	quotes   map[string]Quote
	quoteErr error
	searches []string
	quoted   []string
}

func (p *fakeProvider) SymbolSearch(_ context.Context, keywords string) ([]Match, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searches = append(p.searches, keywords)
	if len(p.matches) == 0 {
		return nil, NewProviderError("SymbolSearch", "no results", ErrNoMatches)
	}
	return p.matches, nil
}

func (p *fakeProvider) GlobalQuote(_ context.Context, symbol string) (Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quoted = append(p.quoted, symbol)
	if p.quoteErr != nil {
		return Quote{}, p.quoteErr
	}
	quote, ok := p.quotes[symbol]
	if !ok {
		return Quote{}, NewProviderError("GlobalQuote", "no data for "+symbol, ErrNoPriceData)
	}
	return quote, nil
}
