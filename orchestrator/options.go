package orchestrator

import (
	"io"
	"log/slog"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
)

const DefaultMaxRounds = 8

// Observer is notified after every state transition. msg is the assistant
// message that caused it, or nil when entering AwaitingLLM.
type Observer func(state State, msg *llm.Message)

// Options configures an Orchestrator
type Options struct {
	Logger      *slog.Logger
	MaxRounds   int
	Stream      io.Writer
	ChatOptions []llm.Option
	Observer    Observer
}

// Option is a function type to modify Options
type Option func(*Options)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxRounds bounds the number of LLM calls in one Run
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		o.MaxRounds = n
	}
}

// WithStream switches to streaming completions and echoes content to w
func WithStream(w io.Writer) Option {
	return func(o *Options) {
		o.Stream = w
	}
}

// WithChatOptions adds options passed on every LLM call
func WithChatOptions(opts ...llm.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithObserver sets a callback for state transitions
func WithObserver(observer Observer) Option {
	return func(o *Options) {
		o.Observer = observer
	}
}

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		Logger:    slog.New(slog.DiscardHandler),
		MaxRounds: DefaultMaxRounds,
	}
}
