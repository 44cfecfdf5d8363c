package openai

import (
	"net/http"
	"time"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible endpoint
	GroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the Groq model the demos use
	DefaultModel = "llama-3.3-70b-versatile"
	// DefaultMaxTokens caps completion length
	DefaultMaxTokens = 4096
)

// Options configures the OpenAI-compatible client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxTokens  int
	HTTPClient *http.Client
	Tokens     TokenCounter
}

// Option is a function type to modify Options
type Option func(*Options)

// WithBaseURL points the client at another OpenAI-compatible endpoint
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithMaxTokens sets the default completion limit
func WithMaxTokens(tokens int) Option {
	return func(o *Options) {
		o.MaxTokens = tokens
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithTokenCounter replaces the token estimator used for streamed usage
func WithTokenCounter(counter TokenCounter) Option {
	return func(o *Options) {
		o.Tokens = counter
	}
}

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		BaseURL:   GroqBaseURL,
		Timeout:   60 * time.Second,
		MaxTokens: DefaultMaxTokens,
	}
}
