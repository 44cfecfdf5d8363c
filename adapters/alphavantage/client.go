/*
alphavantage implements a client for the Alpha Vantage stock API
https://www.alphavantage.co/documentation/
*/
package alphavantage

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/stock"
	"github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	key string
}

var _ stock.Provider = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://www.alphavantage.co"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client. Options are applied after the default endpoint, so
// client.OptEndpoint overrides it.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("alphavantage: missing API key")
	}
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint)}, opts...)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client: c,
		key:    apiKey,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SymbolSearch returns matches for keywords sorted by match score, best first
func (c *Client) SymbolSearch(ctx context.Context, keywords string) ([]stock.Match, error) {
	var response searchResponse
	if err := c.query(ctx, "SymbolSearch", &response, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keywords},
	}); err != nil {
		return nil, err
	}
	if err := response.status.err("SymbolSearch"); err != nil {
		return nil, err
	}

	matches := make([]stock.Match, 0, len(response.BestMatches))
	for _, m := range response.BestMatches {
		if m.Symbol == "" {
			continue
		}
		score, _ := strconv.ParseFloat(m.MatchScore, 64)
		matches = append(matches, stock.Match{
			Symbol: m.Symbol,
			Name:   m.Name,
			Region: m.Region,
			Score:  score,
		})
	}
	if len(matches) == 0 {
		return nil, stock.NewProviderError("SymbolSearch", "no results for "+strconv.Quote(keywords), stock.ErrNoMatches)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// GlobalQuote returns the latest quote for symbol
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (stock.Quote, error) {
	var response quoteResponse
	if err := c.query(ctx, "GlobalQuote", &response, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	}); err != nil {
		return stock.Quote{}, err
	}
	if err := response.status.err("GlobalQuote"); err != nil {
		return stock.Quote{}, err
	}

	q := response.Quote
	if q == nil || strings.TrimSpace(q.Price) == "" {
		return stock.Quote{}, stock.NewProviderError("GlobalQuote", "no data for "+symbol, stock.ErrNoPriceData)
	}
	quote := stock.Quote{
		Symbol:        q.Symbol,
		Price:         q.Price,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}
	return quote, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) query(ctx context.Context, op string, out any, values url.Values) error {
	values.Set("apikey", c.key)
	if err := c.DoWithContext(ctx, nil, out, client.OptPath("query"), client.OptQuery(values)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return stock.NewProviderError(op, "request failed", redact(err, c.key))
	}
	return nil
}

// redact removes the API key from errors that echo the request URL
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "***"))
}
