package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc) *OpenAILLM {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAILLM("test-key", "",
		WithBaseURL(server.URL+"/v1"),
		WithTokenCounter(approximateTokens),
	)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestChat_ParsesToolCalls(t *testing.T) {
	var got openai.ChatCompletionRequest
	model := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "llama-3.3-70b-versatile",
			"choices": [{
				"index": 0,
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [
						{"id": "call_a", "type": "function", "function": {"name": "get_weather", "arguments": "{\"city\":\"London\"}"}},
						{"id": "call_b", "type": "function", "function": {"name": "get_weather", "arguments": "{\"city\":\"Tokyo\"}"}}
					]
				}
			}],
			"usage": {"prompt_tokens": 40, "completion_tokens": 12, "total_tokens": 52}
		}`)
	})

	city := llm.ObjectSchema(llm.Parameter{Name: "city", Type: "string", Description: "City", Required: true})
	msg, err := model.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a weather assistant."},
		{Role: llm.RoleUser, Content: "London and Tokyo?"},
	}, llm.WithFunctions([]llm.Function{{Name: "get_weather", Description: "Weather", Parameters: city}}))
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "get_weather", got.Tools[0].Function.Name)
	assert.Equal(t, "auto", got.ToolChoice)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)

	assert.False(t, msg.IsFinal())
	require.Len(t, msg.ToolCalls, 2)
	assert.Equal(t, llm.ToolCall{ID: "call_a", Name: "get_weather", Arguments: `{"city":"London"}`}, msg.ToolCalls[0])
	assert.Equal(t, "call_b", msg.ToolCalls[1].ID)
	assert.Equal(t, 52, msg.GetUsage().TotalTokens)
}

func TestChat_SendsToolResults(t *testing.T) {
	var got openai.ChatCompletionRequest
	model := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"18°C and Rainy."}}]}`)
	})

	msg, err := model.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "London?", Name: "alice"},
		{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{{ID: "call_a", Name: "get_weather", Arguments: `{"city":"London"}`}}},
		{Role: llm.RoleTool, Name: "get_weather", ToolCallID: "call_a", Content: `{"temperature":18}`},
	})
	require.NoError(t, err)
	assert.True(t, msg.IsFinal())
	assert.Equal(t, "18°C and Rainy.", msg.Content)

	require.Len(t, got.Messages, 3)
	assert.Equal(t, "alice", got.Messages[0].Name)
	require.Len(t, got.Messages[1].ToolCalls, 1)
	assert.Equal(t, "call_a", got.Messages[1].ToolCalls[0].ID)
	assert.Equal(t, "call_a", got.Messages[2].ToolCallID)
	assert.Empty(t, got.Messages[2].Name)
	assert.Empty(t, got.Tools)
}

func TestChat_ForcedFunction(t *testing.T) {
	var raw map[string]any
	model := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeJSON(w, http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`)
	})

	_, err := model.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}},
		llm.WithFunctions([]llm.Function{{Name: "get_weather", Parameters: llm.ObjectSchema()}}),
		llm.WithFunctionCall("get_weather"),
	)
	require.NoError(t, err)

	choice, ok := raw["tool_choice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "function", choice["type"])
	assert.Equal(t, map[string]any{"name": "get_weather"}, choice["function"])
}

func TestChat_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Invalid API Key","type":"invalid_request_error","code":"invalid_api_key"}}`,
			code:   llm.ErrCodeUnavailable,
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"message":"Rate limit reached","type":"tokens"}}`,
			code:   llm.ErrCodeUnavailable,
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   `{"error":{"message":"upstream","type":"server_error"}}`,
			code:   llm.ErrCodeUnavailable,
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"error":{"message":"tool_use_failed","type":"invalid_request_error"}}`,
			code:   llm.ErrCodeInvalidInput,
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id":"x","choices":[]}`,
			code:   llm.ErrCodeMalformedResponse,
		},
		{
			name:   "tool call without id",
			status: http.StatusOK,
			body:   `{"choices":[{"index":0,"message":{"role":"assistant","tool_calls":[{"type":"function","function":{"name":"get_weather","arguments":"{}"}}]}}]}`,
			code:   llm.ErrCodeMalformedResponse,
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>gateway</html>`,
			code:   llm.ErrCodeMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := model.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
			require.Error(t, err)
			assert.True(t, llm.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestChat_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	model := NewOpenAILLM("k", "", WithBaseURL(url), WithTokenCounter(approximateTokens))
	_, err := model.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, llm.IsCode(err, llm.ErrCodeUnavailable))
}

func streamHandler(t *testing.T, chunks ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}
}

func collect(t *testing.T, ch <-chan llm.StreamResponse) (string, llm.StreamResponse) {
	t.Helper()
	var (
		deltas strings.Builder
		last   llm.StreamResponse
	)
	for resp := range ch {
		if !resp.Done {
			deltas.WriteString(resp.Message.Content)
		}
		last = resp
	}
	return deltas.String(), last
}

func TestChatStream_Content(t *testing.T) {
	model := newTestLLM(t, streamHandler(t,
		`{"choices":[{"index":0,"delta":{"role":"assistant","content":"It is "}}]}`,
		`{"choices":[{"index":0,"delta":{"content":"Rainy"}}]}`,
		`{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
	))

	ch, err := model.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "London?"}})
	require.NoError(t, err)
	deltas, last := collect(t, ch)

	assert.Equal(t, "It is Rainy", deltas)
	require.True(t, last.Done)
	require.NoError(t, last.Error)
	assert.Equal(t, "It is Rainy", last.Message.Content)
	assert.True(t, last.Message.IsFinal())
	usage := last.Message.GetUsage()
	require.NotNil(t, usage)
	assert.Equal(t, approximateTokens("London?"), usage.PromptTokens)
	assert.Equal(t, usage.PromptTokens+usage.CompletionTokens, usage.TotalTokens)
}

func TestChatStream_AccumulatesToolCalls(t *testing.T) {
	model := newTestLLM(t, streamHandler(t,
		`{"choices":[{"index":0,"delta":{"role":"assistant","tool_calls":[{"index":0,"id":"call_a","type":"function","function":{"name":"get_weather","arguments":""}}]}}]}`,
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"city\":"}}]}}]}`,
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"\"London\"}"}}]}}]}`,
		`{"choices":[{"index":0,"delta":{"tool_calls":[{"index":1,"id":"call_b","type":"function","function":{"name":"get_weather","arguments":"{\"city\":\"Tokyo\"}"}}]}}]}`,
		`{"choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}],"usage":{"prompt_tokens":30,"completion_tokens":20,"total_tokens":50}}`,
	))

	ch, err := model.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "London and Tokyo?"}})
	require.NoError(t, err)
	deltas, last := collect(t, ch)

	assert.Empty(t, deltas)
	require.NoError(t, last.Error)
	require.Len(t, last.Message.ToolCalls, 2)
	assert.Equal(t, llm.ToolCall{ID: "call_a", Name: "get_weather", Arguments: `{"city":"London"}`}, last.Message.ToolCalls[0])
	assert.Equal(t, llm.ToolCall{ID: "call_b", Name: "get_weather", Arguments: `{"city":"Tokyo"}`}, last.Message.ToolCalls[1])
	assert.Equal(t, 50, last.Message.GetUsage().TotalTokens)
}

func TestChatStream_Unauthorized(t *testing.T) {
	model := newTestLLM(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`)
	})
	_, err := model.ChatStream(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.True(t, llm.IsCode(err, llm.ErrCodeUnavailable))
}

func TestApproximateTokens(t *testing.T) {
	assert.Equal(t, 0, approximateTokens(""))
	assert.Equal(t, 1, approximateTokens("hi"))
	assert.Equal(t, 3, approximateTokens("twelve chars"))
	assert.Equal(t, "o200k_base", getEncodingForModel("gpt-4o-mini"))
	assert.Equal(t, "cl100k_base", getEncodingForModel(DefaultModel))
}
