package function

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/XSnelliusX/LLM-Function-Calling-Demo/llm"
	"github.com/google/jsonschema-go/jsonschema"
)

// Handler executes one function call with validated arguments. A string
// result is passed to the model unchanged, anything else is JSON encoded.
type Handler func(ctx context.Context, args Arguments) (any, error)

// Definition binds a function schema to its implementation
type Definition struct {
	Function llm.Function
	Handler  Handler
}

// Result is the outcome of one function call, correlated by call id
type Result struct {
	CallID  string
	Name    string
	Content string
	IsError bool
}

// Message returns the tool message carrying the result
func (r Result) Message() llm.Message {
	return llm.Message{
		Role:       llm.RoleTool,
		Name:       r.Name,
		Content:    r.Content,
		ToolCallID: r.CallID,
	}
}

type entry struct {
	def      Definition
	resolved *jsonschema.Resolved
}

// Registry is an immutable set of functions the model may call
type Registry struct {
	order   []string
	entries map[string]entry
}

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// NewRegistry registers definitions in order. It fails when a definition is
// incomplete, duplicated, or carries a schema that does not resolve.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]entry, len(defs)),
	}
	for _, def := range defs {
		name := def.Function.Name
		if !namePattern.MatchString(name) {
			return nil, ErrInvalidDefinition(name, "invalid function name")
		}
		if _, exists := r.entries[name]; exists {
			return nil, ErrInvalidDefinition(name, "duplicate function name")
		}
		if def.Handler == nil {
			return nil, ErrInvalidDefinition(name, "handler is nil")
		}
		schema := def.Function.Parameters
		if schema == nil {
			return nil, ErrInvalidDefinition(name, "parameters schema is nil")
		}
		if schema.Type != "object" {
			return nil, ErrInvalidDefinition(name, "parameters schema must be an object")
		}
		for _, req := range schema.Required {
			prop, ok := schema.Properties[req]
			if !ok {
				return nil, ErrInvalidDefinition(name, "required parameter "+req+" is not declared")
			}
			if prop.Type == "" {
				return nil, ErrInvalidDefinition(name, "parameter "+req+" has no type")
			}
		}
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return nil, NewFunctionError("Register", name, err, ErrCodeInvalidDefinition, "schema resolution failed")
		}
		r.order = append(r.order, name)
		r.entries[name] = entry{def: def, resolved: resolved}
	}
	return r, nil
}

// Describe returns the function specs in registration order
func (r *Registry) Describe() []llm.Function {
	out := make([]llm.Function, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].def.Function)
	}
	return out
}

// Names returns the registered names in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Invoke validates the call's arguments against the function schema and
// runs the handler.
func (r *Registry) Invoke(ctx context.Context, call llm.ToolCall) (Result, error) {
	e, ok := r.entries[call.Name]
	if !ok {
		return Result{}, ErrUnknownFunction("Invoke", call.Name)
	}

	args, err := decodeArguments(call.Arguments)
	if err != nil {
		return Result{}, ErrInvalidArguments("Invoke", call.Name, err)
	}
	if err := e.resolved.Validate(map[string]any(args)); err != nil {
		return Result{}, ErrInvalidArguments("Invoke", call.Name, err)
	}

	value, err := e.def.Handler(ctx, args)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		var fnErr *FunctionError
		if errors.As(err, &fnErr) {
			return Result{}, err
		}
		return Result{}, ErrProvider("Invoke", call.Name, err)
	}

	content, err := encodeResult(value)
	if err != nil {
		return Result{}, NewFunctionError("Invoke", call.Name, err, ErrCodeProviderError, "failed to encode result")
	}
	return Result{
		CallID:  call.ID,
		Name:    call.Name,
		Content: content,
	}, nil
}

// ErrorResult serializes err as the result of call so the model can explain
// the failure.
func ErrorResult(call llm.ToolCall, err error) Result {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	return Result{
		CallID:  call.ID,
		Name:    call.Name,
		Content: string(payload),
		IsError: true,
	}
}

func decodeArguments(raw string) (Arguments, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return Arguments{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after arguments object")
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func encodeResult(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
