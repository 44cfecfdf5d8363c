// Package llmtest provides a deterministic llm.LLM for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
	"github.com/google/uuid"
)

// Response configures one model turn in a scripted sequence.
type Response struct {
	Message llm.Message
	Err     error
}

// Request is a recorded call to the scripted model.
type Request struct {
	Messages  []llm.Message
	Functions []llm.Function
}

// ScriptedLLM replays a fixed sequence of responses and records every request.
type ScriptedLLM struct {
	mu        sync.Mutex
	index     int
	responses []Response
	requests  []Request
}

func NewScriptedLLM(responses ...Response) *ScriptedLLM {
	cloned := make([]Response, len(responses))
	copy(cloned, responses)
	return &ScriptedLLM{
		responses: cloned,
	}
}

var _ llm.LLM = (*ScriptedLLM)(nil)

func (m *ScriptedLLM) Chat(_ context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	options := llm.ApplyOptions(llm.ChatOptions{}, opts...)
	m.requests = append(m.requests, Request{
		Messages:  llm.CloneMessages(messages),
		Functions: append([]llm.Function(nil), options.Functions...),
	})

	if m.index >= len(m.responses) {
		return nil, fmt.Errorf("script exhausted at step %d", m.index+1)
	}
	current := m.responses[m.index]
	m.index++
	if current.Err != nil {
		return nil, current.Err
	}
	msg := current.Message.Clone()
	if msg.Role == "" {
		msg.Role = llm.RoleAssistant
	}
	return &msg, nil
}

// ChatStream delivers the scripted content as a single delta followed by the
// assembled message.
func (m *ScriptedLLM) ChatStream(ctx context.Context, messages []llm.Message, opts ...llm.Option) (<-chan llm.StreamResponse, error) {
	msg, err := m.Chat(ctx, messages, opts...)
	if err != nil {
		return nil, err
	}
	out := make(chan llm.StreamResponse, 2)
	if msg.Content != "" {
		out <- llm.StreamResponse{Message: llm.Message{Role: msg.Role, Content: msg.Content}}
	}
	out <- llm.StreamResponse{Message: *msg, Done: true}
	close(out)
	return out, nil
}

// Requests returns the requests received so far
func (m *ScriptedLLM) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Remaining returns the number of unused scripted responses
func (m *ScriptedLLM) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses) - m.index
}

// Answer builds a final-answer response
func Answer(content string) Response {
	return Response{Message: llm.Message{Role: llm.RoleAssistant, Content: content}}
}

// Calls builds a response requesting the given tool calls
func Calls(calls ...llm.ToolCall) Response {
	return Response{Message: llm.Message{Role: llm.RoleAssistant, ToolCalls: calls}}
}

// Call builds a tool call with a fresh id when id is empty
func Call(id, name, arguments string) llm.ToolCall {
	if id == "" {
		id = "call_" + uuid.NewString()[:8]
	}
	return llm.ToolCall{ID: id, Name: name, Arguments: arguments}
}

// Fail builds a response that fails with err
func Fail(err error) Response {
	return Response{Err: err}
}
