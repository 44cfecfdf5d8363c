package llm

import (
	"context"
)

// LLM represents a large language model that supports function calling
type LLM interface {
	// Chat issues one completion request for the conversation history.
	// The returned assistant message either carries the final answer or
	// one or more tool calls.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Message, error)

	// ChatStream streams the response. Content deltas are delivered as they
	// arrive; the last response has Done set and carries the assembled message.
	ChatStream(ctx context.Context, messages []Message, opts ...Option) (<-chan StreamResponse, error)
}

// StreamResponse represents a streaming response
type StreamResponse struct {
	Message Message
	Error   error
	Done    bool
}
