// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-ring.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidCapacity    = errors.New("invalid capacity")
	ErrEmptyBuffer        = errors.New("buffer is empty")
	ErrIterationExhausted = errors.New("iteration exhausted")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeInvalidCapacity
	ErrCodeEmptyBuffer
	ErrCodeIterationExhausted
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeInvalidCapacity:
		return "invalid_capacity"
	case ErrCodeEmptyBuffer:
		return "empty_buffer"
	case ErrCodeIterationExhausted:
		return "iteration_exhausted"
	default:
		return "internal"
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap maps the code back to its sentinel so errors.Is works.
func (e *Error) Unwrap() error {
	switch e.Code {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeInvalidCapacity:
		return ErrInvalidCapacity
	case ErrCodeEmptyBuffer:
		return ErrEmptyBuffer
	case ErrCodeIterationExhausted:
		return ErrIterationExhausted
	}
	return nil
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode carried by err, falling back to sentinel
// matching for plain errors.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return ErrCodeInvalidArgument
	case errors.Is(err, ErrInvalidCapacity):
		return ErrCodeInvalidCapacity
	case errors.Is(err, ErrEmptyBuffer):
		return ErrCodeEmptyBuffer
	case errors.Is(err, ErrIterationExhausted):
		return ErrCodeIterationExhausted
	}
	return ErrCodeInternal
}
