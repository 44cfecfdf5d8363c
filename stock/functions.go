package stock

import (
	"context"
	"strings"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/function"
	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
)

const (
	SearchFunctionName = "search_stock_symbol"
	PriceFunctionName  = "get_stock_price"
)

// SystemPrompt instructs the model to search first, then quote the symbol
// the user picks.
const SystemPrompt = "You are a helpful stock market assistant. When searching for a stock, first find the correct " +
	"symbol using the search_stock_symbol tool, then get its current price using the get_stock_price tool. " +
	"If multiple symbols are found, ask the user which one they want to look up: return only a numbered list " +
	"of symbols along with the company name and region, with no additional text or questions. " +
	"Present the information in a clear, organized way."

// Session records what the stock functions observed during one run so the
// shell can build its menu from real search results.
type Session struct {
	Matches []Match
	Quotes  []Quote
}

// Reset clears recorded results
func (s *Session) Reset() {
	s.Matches = nil
	s.Quotes = nil
}

// Definitions returns the stock functions backed by provider. Results are
// recorded in session when it is not nil.
func Definitions(provider Provider, session *Session) []function.Definition {
	return []function.Definition{
		{
			Function: llm.Function{
				Name:        SearchFunctionName,
				Description: "Search for stock symbols by company name or keywords",
				Parameters: llm.ObjectSchema(llm.Parameter{
					Name:        "keywords",
					Type:        "string",
					Description: "Company name or keywords to search for",
					Required:    true,
				}),
			},
			Handler: func(ctx context.Context, args function.Arguments) (any, error) {
				keywords := strings.TrimSpace(args.String("keywords"))
				if keywords == "" {
					return nil, NewProviderError("SymbolSearch", "keywords are empty", nil)
				}
				matches, err := provider.SymbolSearch(ctx, keywords)
				if err != nil {
					return nil, err
				}
				if session != nil {
					session.Matches = matches
				}
				return matches, nil
			},
		},
		{
			Function: llm.Function{
				Name:        PriceFunctionName,
				Description: "Get the current stock price and related information for a given symbol",
				Parameters: llm.ObjectSchema(llm.Parameter{
					Name:        "symbol",
					Type:        "string",
					Description: "The stock symbol to look up",
					Required:    true,
				}),
			},
			Handler: func(ctx context.Context, args function.Arguments) (any, error) {
				symbol := strings.ToUpper(strings.TrimSpace(args.String("symbol")))
				if symbol == "" {
					return nil, NewProviderError("GlobalQuote", "symbol is empty", nil)
				}
				quote, err := provider.GlobalQuote(ctx, symbol)
				if err != nil {
					return nil, err
				}
				if session != nil {
					session.Quotes = append(session.Quotes, quote)
				}
				return quote, nil
			},
		},
	}
}
