package llm

import "strings"

const (
	// RoleSystem represents a system message
	RoleSystem = "system"
	// RoleUser represents a user message
	RoleUser = "user"
	// RoleAssistant represents an assistant message
	RoleAssistant = "assistant"
	// RoleTool represents the result of a tool call
	RoleTool = "tool"
)

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates other into u
func (u *Usage) Add(other *Usage) {
	if other == nil {
		return
	}
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Message represents a chat message
type Message struct {
	Role       string         `json:"role"`    // e.g., "system", "user", "assistant", "tool"
	Content    string         `json:"content"` // The message content
	Name       string         `json:"name,omitempty"`
	ToolCalls  []ToolCall     `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// IsFinal reports whether the message is a final answer rather than a
// request to call functions.
func (m *Message) IsFinal() bool {
	return len(m.ToolCalls) == 0
}

// Clone returns a deep copy of the message
func (m Message) Clone() Message {
	out := m
	if m.ToolCalls != nil {
		out.ToolCalls = make([]ToolCall, len(m.ToolCalls))
		copy(out.ToolCalls, m.ToolCalls)
	}
	if m.Metadata != nil {
		out.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// GetUsage returns the usage statistics from the message metadata
func (m *Message) GetUsage() *Usage {
	if m.Metadata == nil {
		return nil
	}

	if usageMap, ok := m.Metadata["usage"].(map[string]any); ok {
		usage := &Usage{}

		if promptTokens, ok := usageMap["prompt_tokens"].(int); ok {
			usage.PromptTokens = promptTokens
		}
		if completionTokens, ok := usageMap["completion_tokens"].(int); ok {
			usage.CompletionTokens = completionTokens
		}
		if totalTokens, ok := usageMap["total_tokens"].(int); ok {
			usage.TotalTokens = totalTokens
		}

		return usage
	}

	return nil
}

// SetUsage sets the usage statistics in the message metadata
func (m *Message) SetUsage(usage *Usage) {
	if usage == nil {
		return
	}

	if m.Metadata == nil {
		m.Metadata = make(map[string]any)
	}

	m.Metadata["usage"] = map[string]any{
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
	}
}

// CloneMessages returns a deep copy of messages
func CloneMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	for i := range messages {
		out[i] = messages[i].Clone()
	}
	return out
}

// MessagesToString renders the user-visible part of a conversation
func MessagesToString(messages []Message) string {
	var sb strings.Builder
	for _, message := range messages {
		if len(message.ToolCalls) > 0 || message.Role == RoleTool || message.Role == RoleSystem {
			continue
		}
		sb.WriteString(message.Role)
		sb.WriteString(": ")
		sb.WriteString(message.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
