package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/conversation"
	"github.com/XSnelliusX/LLM-Function-Calling-Demo/function"
	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
)

var (
	// ErrMaxRounds is returned when the model keeps requesting calls past the round budget
	ErrMaxRounds = errors.New("orchestrator: exceeded max rounds")
	// ErrInvalidTransition indicates a bug in the round trip loop
	ErrInvalidTransition = errors.New("orchestrator: invalid state transition")
)

// Answer is the final result of one Run
type Answer struct {
	Content string
	Rounds  int
	Usage   llm.Usage
}

// Orchestrator drives the round trip between the model and local functions:
// model -> tool calls -> tool results -> model -> ... -> final answer.
type Orchestrator struct {
	model    llm.LLM
	registry *function.Registry
	opts     *Options
}

func New(model llm.LLM, registry *function.Registry, opts ...Option) (*Orchestrator, error) {
	if model == nil {
		return nil, errors.New("orchestrator: model is required")
	}
	if registry == nil {
		return nil, errors.New("orchestrator: function registry is required")
	}
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.MaxRounds <= 0 {
		options.MaxRounds = DefaultMaxRounds
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		model:    model,
		registry: registry,
		opts:     options,
	}, nil
}

// Streaming reports whether answers are echoed to the stream writer as
// they are generated
func (o *Orchestrator) Streaming() bool {
	return o.opts.Stream != nil
}

// Run appends userInput to conv (unless empty) and loops until the model
// returns a final answer. Function failures are handed back to the model as
// error results; model failures are returned.
func (o *Orchestrator) Run(ctx context.Context, conv *conversation.Conversation, userInput string) (*Answer, error) {
	if conv == nil {
		return nil, errors.New("orchestrator: conversation is required")
	}
	if userInput != "" {
		conv.AddUserMessage(userInput)
	}

	logger := o.opts.Logger.With("conversation", conv.ID)
	functions := o.registry.Describe()
	chatOpts := append([]llm.Option{llm.WithFunctions(functions)}, o.opts.ChatOptions...)

	answer := &Answer{}
	state := AwaitingLLM
	o.notify(state, nil)

	for answer.Rounds < o.opts.MaxRounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		answer.Rounds++

		reply, err := o.complete(ctx, conv.Messages(), chatOpts)
		if err != nil {
			logger.Error("completion failed", "round", answer.Rounds, "error", err)
			return nil, err
		}
		if reply.Role == "" {
			reply.Role = llm.RoleAssistant
		}
		answer.Usage.Add(reply.GetUsage())
		conv.Append(*reply)

		if reply.IsFinal() {
			if err := o.transition(logger, &state, Done, reply); err != nil {
				return nil, err
			}
			answer.Content = reply.Content
			return answer, nil
		}

		if err := o.transition(logger, &state, AwaitingToolResults, reply); err != nil {
			return nil, err
		}
		for _, call := range reply.ToolCalls {
			result, err := o.invoke(ctx, logger, call)
			if err != nil {
				return nil, err
			}
			conv.Append(result.Message())
		}
		if err := o.transition(logger, &state, AwaitingLLM, nil); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxRounds, o.opts.MaxRounds)
}

// invoke resolves one call. Only context cancellation aborts the run; every
// other failure becomes an error result.
func (o *Orchestrator) invoke(ctx context.Context, logger *slog.Logger, call llm.ToolCall) (function.Result, error) {
	logger.Info("calling function", "name", call.Name, "call_id", call.ID, "arguments", call.Arguments)
	result, err := o.registry.Invoke(ctx, call)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return function.Result{}, ctxErr
		}
		logger.Warn("function failed", "name", call.Name, "call_id", call.ID, "error", err)
		return function.ErrorResult(call, err), nil
	}
	logger.Debug("function returned", "name", call.Name, "call_id", call.ID, "content", result.Content)
	return result, nil
}

func (o *Orchestrator) complete(ctx context.Context, messages []llm.Message, opts []llm.Option) (*llm.Message, error) {
	if o.opts.Stream == nil {
		return o.model.Chat(ctx, messages, opts...)
	}

	stream, err := o.model.ChatStream(ctx, messages, opts...)
	if err != nil {
		return nil, err
	}
	var final *llm.Message
	for resp := range stream {
		if resp.Error != nil {
			return nil, resp.Error
		}
		if resp.Done {
			msg := resp.Message
			final = &msg
			continue
		}
		if resp.Message.Content != "" {
			if _, err := io.WriteString(o.opts.Stream, resp.Message.Content); err != nil {
				return nil, err
			}
		}
	}
	if final == nil {
		return nil, llm.ErrMalformedResponse("ChatStream", "stream closed without a final message")
	}
	if final.Content != "" {
		_, _ = io.WriteString(o.opts.Stream, "\n")
	}
	return final, nil
}

func (o *Orchestrator) transition(logger *slog.Logger, state *State, next State, msg *llm.Message) error {
	if !validTransition(*state, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, *state, next)
	}
	logger.Debug("state transition", "from", state.String(), "to", next.String())
	*state = next
	o.notify(next, msg)
	return nil
}

func (o *Orchestrator) notify(state State, msg *llm.Message) {
	if o.opts.Observer != nil {
		o.opts.Observer(state, msg)
	}
}
