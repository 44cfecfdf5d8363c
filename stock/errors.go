package stock

import (
	"errors"
	"fmt"
)

// ProviderError is returned when the stock data provider reports a failure
// or has no data.
type ProviderError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stock.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("stock.%s: %s", e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(op, message string, err error) *ProviderError {
	return &ProviderError{Op: op, Message: message, Err: err}
}

// UserInputError is returned for a menu selection that is not a number
// between 1 and the number of options.
type UserInputError struct {
	Input   string
	Options int
}

func (e *UserInputError) Error() string {
	return fmt.Sprintf("invalid selection %q: enter a number between 1 and %d", e.Input, e.Options)
}

var (
	// ErrNoMatches is returned when a search yields no symbols
	ErrNoMatches = errors.New("no matching symbols found")
	// ErrNoPriceData is returned when a quote has no price
	ErrNoPriceData = errors.New("no price data available")
	// ErrEmptyQuery is returned when the user enters no company name
	ErrEmptyQuery = errors.New("empty search query")
	// ErrTooManyAttempts is returned when the user keeps entering invalid selections
	ErrTooManyAttempts = errors.New("too many invalid selections")
)
