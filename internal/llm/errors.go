package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/genai"

	"github.com/quorumci/quorum/internal/core"
)

// apiStatusError carries a non-success HTTP status from an adapter that
// talks to its backend directly, so classification can happen in one place.
type apiStatusError struct {
	status int
	body   string
}

func (e *apiStatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.status, e.body)
}

// Classify translates backend-specific failures into the shared taxonomy by
// wrapping err with an ErrorCategory. Errors already categorized pass
// through unchanged. This is the single point where SDK and transport error
// shapes are interpreted.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var ce *core.CategorizedError
	if errors.As(err, &ce) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return core.Categorize(core.ErrTimeout, err)
	}

	var anthErr *anthropic.Error
	if errors.As(err, &anthErr) {
		return core.Categorize(categoryForStatus(anthErr.StatusCode), err)
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return core.Categorize(categoryForStatus(genaiErr.Code), err)
	}

	var statusErr *apiStatusError
	if errors.As(err, &statusErr) {
		return core.Categorize(categoryForStatus(statusErr.status), err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return core.Categorize(core.ErrTimeout, err)
		}
		return core.Categorize(core.ErrNetwork, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return core.Categorize(core.ErrNetwork, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return core.Categorize(core.ErrInvalidResponse, err)
	}

	return core.Categorize(core.ErrUnknown, err)
}

func categoryForStatus(status int) core.ErrorCategory {
	switch {
	case status == 401 || status == 403:
		return core.ErrAuthentication
	case status == 408:
		return core.ErrTimeout
	case status == 413:
		return core.ErrInputTooLarge
	case status == 429:
		return core.ErrRateLimit
	case status >= 500:
		return core.ErrNetwork
	default:
		return core.ErrUnknown
	}
}
