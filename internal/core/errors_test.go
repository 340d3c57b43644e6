package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestRetryable(t *testing.T) {
	retryable := []ErrorCategory{ErrTimeout, ErrRateLimit, ErrNetwork, ErrInvalidResponse}
	terminal := []ErrorCategory{ErrAuthentication, ErrInputTooLarge, ErrUnknown}

	for _, c := range retryable {
		if !c.Retryable() {
			t.Errorf("%q should be retryable", c)
		}
	}
	for _, c := range terminal {
		if c.Retryable() {
			t.Errorf("%q should not be retryable", c)
		}
	}
}

func TestCategorizeAndUnwrap(t *testing.T) {
	base := errors.New("connection refused")
	err := Categorize(ErrNetwork, base)

	if got := CategoryOf(err); got != ErrNetwork {
		t.Errorf("CategoryOf = %q, want %q", got, ErrNetwork)
	}
	if !errors.Is(err, base) {
		t.Error("categorized error should unwrap to the base error")
	}

	wrapped := fmt.Errorf("calling backend: %w", err)
	if got := CategoryOf(wrapped); got != ErrNetwork {
		t.Errorf("CategoryOf through wrapping = %q, want %q", got, ErrNetwork)
	}
}

func TestCategorizeNil(t *testing.T) {
	if err := Categorize(ErrTimeout, nil); err != nil {
		t.Errorf("Categorize(nil) = %v, want nil", err)
	}
}

func TestCategoryOfPlainError(t *testing.T) {
	if got := CategoryOf(errors.New("who knows")); got != ErrUnknown {
		t.Errorf("CategoryOf(plain) = %q, want %q", got, ErrUnknown)
	}
}
