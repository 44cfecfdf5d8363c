package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
	"github.com/sashabaranov/go-openai"
)

// OpenAILLM talks to any OpenAI-compatible chat completion endpoint. The
// default endpoint is Groq's.
type OpenAILLM struct {
	client    *openai.Client
	model     string
	maxTokens int
	tokens    TokenCounter
}

var _ llm.LLM = (*OpenAILLM)(nil)

func NewOpenAILLM(apiKey string, model string, opts ...Option) *OpenAILLM {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if options.BaseURL != "" {
		cfg.BaseURL = options.BaseURL
	}
	if options.HTTPClient != nil {
		cfg.HTTPClient = options.HTTPClient
	} else {
		cfg.HTTPClient = &http.Client{Timeout: options.Timeout}
	}
	if options.Tokens == nil {
		options.Tokens = newTiktokenCounter(model)
	}

	return &OpenAILLM{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: options.MaxTokens,
		tokens:    options.Tokens,
	}
}

// Model returns the model name requests are sent to
func (o *OpenAILLM) Model() string {
	return o.model
}

func (o *OpenAILLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	req := o.buildRequest(messages, opts...)

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, handleOpenAIError(ctx, "Chat", err)
	}

	if len(resp.Choices) == 0 {
		return nil, llm.ErrMalformedResponse("Chat", "no response choices returned")
	}

	choice := resp.Choices[0].Message
	message := &llm.Message{
		Role:    choice.Role,
		Content: choice.Content,
		Name:    choice.Name,
	}
	if message.Role == "" {
		message.Role = llm.RoleAssistant
	}

	message.SetUsage(&llm.Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	})

	calls, err := convertToolCalls("Chat", choice.ToolCalls)
	if err != nil {
		return nil, err
	}
	message.ToolCalls = calls

	return message, nil
}

func (o *OpenAILLM) ChatStream(ctx context.Context, messages []llm.Message, opts ...llm.Option) (<-chan llm.StreamResponse, error) {
	req := o.buildRequest(messages, opts...)
	req.Stream = true

	stream, err := o.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, handleOpenAIError(ctx, "ChatStream", err)
	}

	responseChan := make(chan llm.StreamResponse)

	go func() {
		defer close(responseChan)
		defer stream.Close()

		send := func(resp llm.StreamResponse) bool {
			select {
			case responseChan <- resp:
				return true
			case <-ctx.Done():
				return false
			}
		}

		usage := &llm.Usage{}
		for _, msg := range messages {
			usage.PromptTokens += o.tokens(msg.Content)
		}

		final := llm.Message{Role: llm.RoleAssistant}
		acc := newToolCallAccumulator()
		received := false
		reportedUsage := false

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				send(llm.StreamResponse{
					Error: handleOpenAIError(ctx, "ChatStream", err),
					Done:  true,
				})
				return
			}
			received = true

			if response.Usage != nil {
				usage.PromptTokens = response.Usage.PromptTokens
				usage.CompletionTokens = response.Usage.CompletionTokens
				reportedUsage = true
			}
			if len(response.Choices) == 0 {
				continue
			}

			choice := response.Choices[0]
			if choice.Delta.Role != "" {
				final.Role = choice.Delta.Role
			}
			if choice.Delta.Content != "" {
				final.Content += choice.Delta.Content
				if !reportedUsage {
					usage.CompletionTokens += o.tokens(choice.Delta.Content)
				}
				if !send(llm.StreamResponse{
					Message: llm.Message{Role: final.Role, Content: choice.Delta.Content},
				}) {
					return
				}
			}
			for _, tc := range choice.Delta.ToolCalls {
				acc.add(tc)
			}
		}

		if !received {
			send(llm.StreamResponse{
				Error: llm.ErrMalformedResponse("ChatStream", "stream ended without data"),
				Done:  true,
			})
			return
		}

		calls, err := convertToolCalls("ChatStream", acc.calls())
		if err != nil {
			send(llm.StreamResponse{Error: err, Done: true})
			return
		}
		final.ToolCalls = calls
		if !reportedUsage {
			for _, call := range calls {
				usage.CompletionTokens += o.tokens(call.Name) + o.tokens(call.Arguments)
			}
		}
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
		final.SetUsage(usage)

		send(llm.StreamResponse{Message: final, Done: true})
	}()

	return responseChan, nil
}

func (o *OpenAILLM) buildRequest(messages []llm.Message, opts ...llm.Option) openai.ChatCompletionRequest {
	options := llm.ApplyOptions(llm.ChatOptions{
		Temperature: 0.1,
		MaxTokens:   o.maxTokens,
	}, opts...)

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    convertMessages(messages),
		Temperature: options.Temperature,
		TopP:        options.TopP,
		MaxTokens:   options.MaxTokens,
		Stop:        options.Stop,
	}

	// Add tools if functions are provided
	if len(options.Functions) > 0 {
		tools := make([]openai.Tool, len(options.Functions))
		for i, f := range options.Functions {
			tools[i] = openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        f.Name,
					Description: f.Description,
					Parameters:  f.Parameters,
				},
			}
		}
		req.Tools = tools

		if options.FunctionCall != "" {
			req.ToolChoice = openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: options.FunctionCall,
				},
			}
		} else {
			req.ToolChoice = "auto"
		}
	}

	return req
}

func convertMessages(messages []llm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		m := openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		// The name field is only meaningful on user and system messages
		if msg.Role == llm.RoleUser || msg.Role == llm.RoleSystem {
			m.Name = msg.Name
		}
		for _, call := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		out[i] = m
	}
	return out
}

func convertToolCalls(op string, calls []openai.ToolCall) ([]llm.ToolCall, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	out := make([]llm.ToolCall, 0, len(calls))
	for _, tc := range calls {
		if tc.ID == "" {
			return nil, llm.ErrMalformedResponse(op, "tool call without id")
		}
		if tc.Function.Name == "" {
			return nil, llm.ErrMalformedResponse(op, "tool call "+tc.ID+" without function name")
		}
		out = append(out, llm.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

// toolCallAccumulator merges streamed tool call fragments by index
type toolCallAccumulator struct {
	byIndex map[int]*openai.ToolCall
	next    int
}

func newToolCallAccumulator() *toolCallAccumulator {
	return &toolCallAccumulator{byIndex: make(map[int]*openai.ToolCall)}
}

func (a *toolCallAccumulator) add(fragment openai.ToolCall) {
	index := a.next
	if fragment.Index != nil {
		index = *fragment.Index
	} else if fragment.ID == "" && a.next > 0 {
		// Fragments without index or id continue the previous call
		index = a.next - 1
	}
	if index >= a.next {
		a.next = index + 1
	}

	current, ok := a.byIndex[index]
	if !ok {
		current = &openai.ToolCall{Type: openai.ToolTypeFunction}
		a.byIndex[index] = current
	}
	if fragment.ID != "" {
		current.ID = fragment.ID
	}
	if fragment.Function.Name != "" {
		current.Function.Name += fragment.Function.Name
	}
	current.Function.Arguments += fragment.Function.Arguments
}

func (a *toolCallAccumulator) calls() []openai.ToolCall {
	indexes := make([]int, 0, len(a.byIndex))
	for i := range a.byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	out := make([]openai.ToolCall, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, *a.byIndex[i])
	}
	return out
}

func handleOpenAIError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return llm.NewLLMError(op, llm.ErrCodeContextCanceled, "context canceled", ctx.Err())
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 400:
			return llm.NewLLMError(op, llm.ErrCodeInvalidInput, "invalid request", err)
		case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
			return llm.ErrUnavailable(op, "invalid API key", err)
		case apiErr.HTTPStatusCode == 429:
			return llm.ErrUnavailable(op, "rate limit exceeded", err)
		case apiErr.HTTPStatusCode >= 500:
			return llm.ErrUnavailable(op, "provider server error", err)
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return llm.NewLLMError(op, llm.ErrCodeMalformedResponse, "cannot decode response", err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode >= 200 && reqErr.HTTPStatusCode < 300 {
			return llm.NewLLMError(op, llm.ErrCodeMalformedResponse, "unexpected response body", err)
		}
		return llm.ErrUnavailable(op, "request failed", err)
	}

	return llm.ErrUnavailable(op, "unexpected error", err)
}
