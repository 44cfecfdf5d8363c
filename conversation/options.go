package conversation

import "github.com/google/uuid"

type IDGenerator func() string

// Options contains configuration for a conversation
type Options struct {
	SystemPrompt string         // System prompt placed at the start
	Metadata     map[string]any // Initial metadata
	GenerateID   IDGenerator    // Function to generate conversation IDs
}

// Option is a function type to modify Options
type Option func(*Options)

// WithSystemPrompt sets the system prompt that opens the conversation
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// WithMetadata sets initial conversation metadata
func WithMetadata(metadata map[string]any) Option {
	return func(o *Options) {
		o.Metadata = metadata
	}
}

// DefaultIDGenerator generates a UUID string
func DefaultIDGenerator() string {
	return uuid.New().String()
}

// WithGenerateID sets the ID generation function
func WithGenerateID(generator IDGenerator) Option {
	return func(o *Options) {
		o.GenerateID = generator
	}
}

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		GenerateID: DefaultIDGenerator,
	}
}
