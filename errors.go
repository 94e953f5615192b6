package niokit

import (
	"errors"
	"fmt"
)

// Error represents a structured niokit error with operation context
type Error struct {
	Op    string    // Operation that failed (e.g., "copy_bytes", "read_bytes")
	Code  ErrorCode // High-level error category
	Index int       // Buffer index involved (-1 if not applicable)
	Msg   string    // Human-readable message
	Inner error     // Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}

	if e.Op != "" {
		return fmt.Sprintf("niokit: %s (op=%s)", msg, e.Op)
	}

	return fmt.Sprintf("niokit: %s", msg)
}

// Unwrap returns the wrapped error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is provides errors.Is support for code comparison
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}

	return false
}

// ErrorCode represents high-level error categories
type ErrorCode string

const (
	ErrCodeOutOfRange       ErrorCode = "index out of range"
	ErrCodeInvalidLength    ErrorCode = "invalid length"
	ErrCodeTruncated        ErrorCode = "not enough readable bytes"
	ErrCodeCapacityOverflow ErrorCode = "capacity overflow"
)

// Error constructors

// NewError creates a new structured error
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{
		Op:    op,
		Code:  code,
		Index: -1,
		Msg:   msg,
	}
}

// NewIndexError creates a new structured error naming the offending index
func NewIndexError(op string, code ErrorCode, index int) *Error {
	return &Error{
		Op:    op,
		Code:  code,
		Index: index,
		Msg:   fmt.Sprintf("%s: index %d", code, index),
	}
}

// WrapError wraps an existing error with niokit context
func WrapError(op string, inner error) *Error {
	if inner == nil {
		return nil
	}

	// If it's already a structured error, just update the operation
	if ne, ok := inner.(*Error); ok {
		return &Error{
			Op:    op,
			Code:  ne.Code,
			Index: ne.Index,
			Msg:   ne.Msg,
			Inner: ne.Inner,
		}
	}

	return &Error{
		Op:    op,
		Code:  ErrCodeInvalidLength,
		Index: -1,
		Msg:   inner.Error(),
		Inner: inner,
	}
}

// IsCode checks if an error matches a specific error code
func IsCode(err error, code ErrorCode) bool {
	var nioErr *Error
	if errors.As(err, &nioErr) {
		return nioErr.Code == code
	}
	return false
}
