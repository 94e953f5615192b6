package niokit

import (
	"errors"
	"fmt"
	"testing"
)

func TestStructuredError(t *testing.T) {
	// Test basic error creation
	err := NewError("copy_bytes", ErrCodeInvalidLength, "negative length")

	if err.Op != "copy_bytes" {
		t.Errorf("Expected Op=copy_bytes, got %s", err.Op)
	}

	if err.Code != ErrCodeInvalidLength {
		t.Errorf("Expected Code=ErrCodeInvalidLength, got %s", err.Code)
	}

	expected := "niokit: negative length (op=copy_bytes)"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestIndexError(t *testing.T) {
	err := NewIndexError("copy_bytes", ErrCodeOutOfRange, 42)

	if err.Index != 42 {
		t.Errorf("Expected Index=42, got %d", err.Index)
	}
	if !IsCode(err, ErrCodeOutOfRange) {
		t.Error("Expected IsCode to match ErrCodeOutOfRange")
	}
}

func TestWrapError(t *testing.T) {
	inner := fmt.Errorf("element construction failed")
	err := WrapError("collect", inner)

	if err.Op != "collect" {
		t.Errorf("Expected Op=collect, got %s", err.Op)
	}

	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to satisfy errors.Is for the inner error")
	}

	// Wrapping nil yields nil
	if WrapError("collect", nil) != nil {
		t.Error("Expected WrapError(nil) to return nil")
	}

	// Re-wrapping keeps the code and index, updates the op
	rewrapped := WrapError("outer", NewIndexError("inner_op", ErrCodeTruncated, 7))
	if rewrapped.Op != "outer" {
		t.Errorf("Expected Op=outer, got %s", rewrapped.Op)
	}
	if rewrapped.Code != ErrCodeTruncated {
		t.Errorf("Expected Code preserved, got %s", rewrapped.Code)
	}
	if rewrapped.Index != 7 {
		t.Errorf("Expected Index preserved, got %d", rewrapped.Index)
	}
}

func TestErrorCodeMatching(t *testing.T) {
	err := NewError("read_bytes", ErrCodeTruncated, "need 8 bytes, 3 readable")

	// Structured errors match each other by code via errors.Is
	if !errors.Is(err, &Error{Code: ErrCodeTruncated}) {
		t.Error("Expected errors.Is to match by code")
	}
	if errors.Is(err, &Error{Code: ErrCodeOutOfRange}) {
		t.Error("Expected errors.Is not to match a different code")
	}
}

func TestIsCode(t *testing.T) {
	err := NewError("test", ErrCodeCapacityOverflow, "too big")

	if !IsCode(err, ErrCodeCapacityOverflow) {
		t.Error("Expected IsCode to match")
	}
	if IsCode(err, ErrCodeOutOfRange) {
		t.Error("Expected IsCode not to match a different code")
	}
	if IsCode(fmt.Errorf("plain error"), ErrCodeOutOfRange) {
		t.Error("Expected IsCode to reject non-structured errors")
	}

	// IsCode sees through wrapping
	wrapped := fmt.Errorf("outer: %w", err)
	if !IsCode(wrapped, ErrCodeCapacityOverflow) {
		t.Error("Expected IsCode to unwrap")
	}
}
