package llm

import (
	"errors"
	"fmt"
)

// LLMError represents errors that can occur during LLM operations
type LLMError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("llm.%s: %s", e.Op, e.Message)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	// ErrCodeUnavailable covers network, auth, rate limit and server failures
	ErrCodeUnavailable = "LLMUnavailable"
	// ErrCodeMalformedResponse is used when the response cannot be parsed
	ErrCodeMalformedResponse = "MalformedResponse"
	ErrCodeInvalidInput      = "InvalidInput"
	ErrCodeContextCanceled   = "ContextCanceled"
)

// NewLLMError creates a new LLMError
func NewLLMError(op, code, message string, err error) *LLMError {
	return &LLMError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func ErrUnavailable(op, message string, err error) error {
	return NewLLMError(op, ErrCodeUnavailable, message, err)
}

func ErrMalformedResponse(op, message string) error {
	return NewLLMError(op, ErrCodeMalformedResponse, message, nil)
}

// IsCode reports whether err is an LLMError with the given code
func IsCode(err error, code string) bool {
	var llmErr *LLMError
	if errors.As(err, &llmErr) {
		return llmErr.Code == code
	}
	return false
}
