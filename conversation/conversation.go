package conversation

import (
	"time"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
)

// Conversation is the ordered message history of one interaction. Messages
// are only ever appended.
type Conversation struct {
	ID        string         `json:"id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	messages []llm.Message
}

// New creates a conversation, opening with the system prompt if one is set
func New(opts ...Option) *Conversation {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	now := time.Now()
	conv := &Conversation{
		ID:        options.GenerateID(),
		Metadata:  make(map[string]any, len(options.Metadata)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for k, v := range options.Metadata {
		conv.Metadata[k] = v
	}
	if options.SystemPrompt != "" {
		conv.messages = append(conv.messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: options.SystemPrompt,
		})
	}
	return conv
}

// Append adds messages to the end of the conversation
func (c *Conversation) Append(messages ...llm.Message) {
	for _, msg := range messages {
		c.messages = append(c.messages, msg.Clone())
	}
	c.UpdatedAt = time.Now()
}

// AddUserMessage appends a user message
func (c *Conversation) AddUserMessage(content string) {
	c.Append(llm.Message{Role: llm.RoleUser, Content: content})
}

// Messages returns a copy of the messages in order
func (c *Conversation) Messages() []llm.Message {
	return llm.CloneMessages(c.messages)
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, or false if there is none
func (c *Conversation) Last() (llm.Message, bool) {
	if len(c.messages) == 0 {
		return llm.Message{}, false
	}
	return c.messages[len(c.messages)-1].Clone(), true
}

// ToolResults returns the tool messages in conversation order
func (c *Conversation) ToolResults() []llm.Message {
	var out []llm.Message
	for _, msg := range c.messages {
		if msg.Role == llm.RoleTool {
			out = append(out, msg.Clone())
		}
	}
	return out
}

// Transcript renders the user and assistant turns
func (c *Conversation) Transcript() string {
	return llm.MessagesToString(c.messages)
}
