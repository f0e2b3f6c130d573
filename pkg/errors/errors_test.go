package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStoreUnavailable, cause, "list people")

	if err.Code != ErrCodeStoreUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStoreUnavailable)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "STORE_UNAVAILABLE: list people: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeNotFound, "x"), ErrCodeNotFound, true},
		{"different code", New(ErrCodeNotFound, "x"), ErrCodeInternal, false},
		{"wrapped with fmt", fmt.Errorf("outer: %w", New(ErrCodeNotFound, "x")), ErrCodeNotFound, true},
		{"plain error", errors.New("plain"), ErrCodeNotFound, false},
		{"nil", nil, ErrCodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "person %d not found", 7)); got != "person 7 not found" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{New(ErrCodeInvalidFormat, "x"), http.StatusBadRequest},
		{New(ErrCodeNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeConstraintViolation, "x"), http.StatusConflict},
		{New(ErrCodeStoreUnavailable, "x"), http.StatusServiceUnavailable},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
