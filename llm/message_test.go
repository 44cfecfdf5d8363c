package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageUsage(t *testing.T) {
	var msg Message
	assert.Nil(t, msg.GetUsage())

	msg.SetUsage(&Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	usage := msg.GetUsage()
	require.NotNil(t, usage)
	assert.Equal(t, Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, *usage)

	var total Usage
	total.Add(usage)
	total.Add(usage)
	total.Add(nil)
	assert.Equal(t, 30, total.TotalTokens)
}

func TestMessageIsFinal(t *testing.T) {
	final := Message{Role: RoleAssistant, Content: "done"}
	assert.True(t, final.IsFinal())

	call := Message{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "a", Name: "f", Arguments: "{}"}}}
	assert.False(t, call.IsFinal())
}

func TestCloneMessages(t *testing.T) {
	original := []Message{
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "a", Name: "f"}}},
	}
	original[0].SetUsage(&Usage{TotalTokens: 1})

	cloned := CloneMessages(original)
	cloned[0].ToolCalls[0].Name = "g"
	cloned[0].Metadata["extra"] = true

	assert.Equal(t, "f", original[0].ToolCalls[0].Name)
	assert.NotContains(t, original[0].Metadata, "extra")
}

func TestMessagesToString(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "weather?"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "a", Name: "get_weather"}}},
		{Role: RoleTool, Content: `{"city":"London"}`, ToolCallID: "a"},
		{Role: RoleAssistant, Content: "Rainy"},
	}
	assert.Equal(t, "user: weather?\nassistant: Rainy\n", MessagesToString(messages))
}

func TestObjectSchema(t *testing.T) {
	schema := ObjectSchema(
		Parameter{Name: "city", Type: "string", Description: "The city", Required: true},
		Parameter{Name: "days", Type: "integer", Description: "Days ahead"},
	)
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"city"}, schema.Required)
	require.Contains(t, schema.Properties, "days")
	assert.Equal(t, "integer", schema.Properties["days"].Type)
	assert.NotNil(t, schema.AdditionalProperties)
}

func TestLLMErrorCode(t *testing.T) {
	err := ErrUnavailable("Chat", "rate limit exceeded", assert.AnError)
	assert.True(t, IsCode(err, ErrCodeUnavailable))
	assert.False(t, IsCode(err, ErrCodeMalformedResponse))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "llm.Chat: rate limit exceeded: "+assert.AnError.Error(), err.Error())

	assert.True(t, IsCode(ErrMalformedResponse("Chat", "no choices"), ErrCodeMalformedResponse))
}
