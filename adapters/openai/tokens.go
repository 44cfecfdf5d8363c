package openai

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates the number of tokens in text
type TokenCounter func(text string) int

// getEncodingForModel returns the encoding name used to estimate tokens for
// a model. Non-OpenAI models get cl100k_base, which is close enough for usage
// reporting.
func getEncodingForModel(model string) string {
	if strings.HasPrefix(model, "gpt-4o") || strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") {
		return "o200k_base"
	}
	return "cl100k_base"
}

// approximateTokens assumes roughly four characters per token
func approximateTokens(text string) int {
	if text == "" {
		return 0
	}
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}

// newTiktokenCounter loads the encoding on first use and falls back to the
// character approximation when it cannot be loaded.
func newTiktokenCounter(model string) TokenCounter {
	var (
		once     sync.Once
		encoding *tiktoken.Tiktoken
	)
	return func(text string) int {
		once.Do(func() {
			enc, err := tiktoken.GetEncoding(getEncodingForModel(model))
			if err == nil {
				encoding = enc
			}
		})
		if encoding == nil {
			return approximateTokens(text)
		}
		return len(encoding.Encode(text, nil, nil))
	}
}
