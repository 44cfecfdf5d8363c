package function

import (
	"errors"
	"fmt"
)

// FunctionError represents errors raised while registering or invoking functions
type FunctionError struct {
	Op      string
	Name    string
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *FunctionError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Name == "" {
		return "function." + e.Op + ": " + msg
	}
	return "function." + e.Op + " " + e.Name + ": " + msg
}

// Unwrap returns the underlying error
func (e *FunctionError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeUnknownFunction   = "UnknownFunction"
	ErrCodeInvalidArguments  = "InvalidArguments"
	ErrCodeProviderError     = "ProviderError"
	ErrCodeInvalidDefinition = "InvalidDefinition"
)

// NewFunctionError creates a new FunctionError
func NewFunctionError(op, name string, err error, code, message string) *FunctionError {
	return &FunctionError{
		Op:      op,
		Name:    name,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func ErrUnknownFunction(op, name string) error {
	return NewFunctionError(op, name, nil, ErrCodeUnknownFunction, "function is not registered")
}

func ErrInvalidArguments(op, name string, err error) error {
	return NewFunctionError(op, name, err, ErrCodeInvalidArguments, "invalid arguments")
}

func ErrInvalidDefinition(name, details string) error {
	return NewFunctionError("Register", name, nil, ErrCodeInvalidDefinition, details)
}

// ErrProvider wraps a failure of the system a function talks to
func ErrProvider(op, name string, err error) error {
	return NewFunctionError(op, name, err, ErrCodeProviderError, "provider error")
}

// IsCode reports whether err is a FunctionError with the given code
func IsCode(err error, code string) bool {
	var fnErr *FunctionError
	if errors.As(err, &fnErr) {
		return fnErr.Code == code
	}
	return false
}
