package alphavantage

import (
	"github.com/XSnelliusX/LLM-Function-Calling-Demo/stock"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// status holds the fields Alpha Vantage uses to report failures inside a
// successful HTTP response
type status struct {
	Note         string `json:"Note,omitempty"`
	Information  string `json:"Information,omitempty"`
	ErrorMessage string `json:"Error Message,omitempty"`
}

type searchResponse struct {
	status
	BestMatches []searchMatch `json:"bestMatches"`
}

type searchMatch struct {
	Symbol      string `json:"1. symbol"`
	Name        string `json:"2. name"`
	Type        string `json:"3. type"`
	Region      string `json:"4. region"`
	MarketOpen  string `json:"5. marketOpen"`
	MarketClose string `json:"6. marketClose"`
	Timezone    string `json:"7. timezone"`
	Currency    string `json:"8. currency"`
	MatchScore  string `json:"9. matchScore"`
}

type quoteResponse struct {
	status
	Quote *globalQuote `json:"Global Quote"`
}

type globalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (s status) err(op string) error {
	switch {
	case s.ErrorMessage != "":
		return stock.NewProviderError(op, s.ErrorMessage, nil)
	case s.Note != "":
		return stock.NewProviderError(op, s.Note, nil)
	case s.Information != "":
		return stock.NewProviderError(op, s.Information, nil)
	}
	return nil
}
