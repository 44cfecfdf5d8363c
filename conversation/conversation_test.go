package conversation

import (
	"testing"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	conv := New(
		WithSystemPrompt("be brief"),
		WithGenerateID(func() string { return "conv-1" }),
		WithMetadata(map[string]any{"demo": "weather"}),
	)

	assert.Equal(t, "conv-1", conv.ID)
	assert.Equal(t, "weather", conv.Metadata["demo"])
	require.Equal(t, 1, conv.Len())
	first, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, llm.RoleSystem, first.Role)
}

func TestNewWithoutSystemPrompt(t *testing.T) {
	conv := New()
	assert.NotEmpty(t, conv.ID)
	assert.Zero(t, conv.Len())
	_, ok := conv.Last()
	assert.False(t, ok)
}

func TestAppendKeepsOrderAndCopies(t *testing.T) {
	conv := New()
	conv.AddUserMessage("hello")

	call := llm.Message{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{{ID: "a", Name: "f"}}}
	conv.Append(call,
		llm.Message{Role: llm.RoleTool, ToolCallID: "a", Content: "1"},
		llm.Message{Role: llm.RoleTool, ToolCallID: "b", Content: "2"},
	)
	call.ToolCalls[0].Name = "changed"

	messages := conv.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, "f", messages[1].ToolCalls[0].Name)

	messages[0].Content = "mutated"
	assert.Equal(t, "hello", conv.Messages()[0].Content)

	results := conv.ToolResults()
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ToolCallID)
	assert.Equal(t, "b", results[1].ToolCallID)

	assert.False(t, conv.UpdatedAt.Before(conv.CreatedAt))
	assert.Equal(t, "user: hello\n", conv.Transcript())
}
