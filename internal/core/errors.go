package core

import "errors"

// ErrorCategory classifies a backend failure. The category decides whether
// the retry executor will re-attempt the operation and is surfaced on the
// terminal ModelReviewResult when the retry budget runs out.
type ErrorCategory string

const (
	ErrTimeout         ErrorCategory = "timeout"
	ErrRateLimit       ErrorCategory = "rate_limit"
	ErrNetwork         ErrorCategory = "network"
	ErrInvalidResponse ErrorCategory = "invalid_response"
	ErrAuthentication  ErrorCategory = "authentication"
	ErrInputTooLarge   ErrorCategory = "input_too_large"
	ErrUnknown         ErrorCategory = "unknown"
)

// Retryable reports whether an error of this category is worth another
// attempt. Transient parse glitches count as retryable.
func (c ErrorCategory) Retryable() bool {
	switch c {
	case ErrTimeout, ErrRateLimit, ErrNetwork, ErrInvalidResponse:
		return true
	}
	return false
}

// CategorizedError attaches an ErrorCategory to an underlying error.
type CategorizedError struct {
	Category ErrorCategory
	Err      error
}

func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return string(e.Category)
	}
	return string(e.Category) + ": " + e.Err.Error()
}

func (e *CategorizedError) Unwrap() error { return e.Err }

// Categorize wraps err with the given category. A nil err stays nil.
func Categorize(category ErrorCategory, err error) error {
	if err == nil {
		return nil
	}
	return &CategorizedError{Category: category, Err: err}
}

// CategoryOf extracts the category from an error chain, or ErrUnknown when
// the chain carries no CategorizedError.
func CategoryOf(err error) ErrorCategory {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ErrUnknown
}
