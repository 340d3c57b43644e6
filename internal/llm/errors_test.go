package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/quorumci/quorum/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want core.ErrorCategory
	}{
		{"deadline exceeded", context.DeadlineExceeded, core.ErrTimeout},
		{"cancelled context", context.Canceled, core.ErrTimeout},
		{"wrapped deadline", fmt.Errorf("calling backend: %w", context.DeadlineExceeded), core.ErrTimeout},
		{"status 401", &apiStatusError{status: 401, body: "bad key"}, core.ErrAuthentication},
		{"status 403", &apiStatusError{status: 403, body: "forbidden"}, core.ErrAuthentication},
		{"status 408", &apiStatusError{status: 408, body: "timeout"}, core.ErrTimeout},
		{"status 413", &apiStatusError{status: 413, body: "too large"}, core.ErrInputTooLarge},
		{"status 429", &apiStatusError{status: 429, body: "slow down"}, core.ErrRateLimit},
		{"status 500", &apiStatusError{status: 500, body: "oops"}, core.ErrNetwork},
		{"status 503", &apiStatusError{status: 503, body: "overloaded"}, core.ErrNetwork},
		{"status 400", &apiStatusError{status: 400, body: "bad request"}, core.ErrUnknown},
		{"url error", &url.Error{Op: "Post", URL: "https://api.example.com", Err: errors.New("refused")}, core.ErrNetwork},
		{"malformed json", jsonSyntaxError(), core.ErrInvalidResponse},
		{"plain error", errors.New("something odd"), core.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.CategoryOf(Classify(tt.err))
			if got != tt.want {
				t.Errorf("Classify(%v) category = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyPassesThroughCategorized(t *testing.T) {
	orig := core.Categorize(core.ErrInputTooLarge, errors.New("prompt too big"))
	got := Classify(orig)
	if got != orig {
		t.Fatalf("Classify rewrapped an already categorized error: %v", got)
	}
}

func TestClassifyNil(t *testing.T) {
	if err := Classify(nil); err != nil {
		t.Fatalf("Classify(nil) = %v, want nil", err)
	}
}

func jsonSyntaxError() error {
	var v map[string]any
	return json.Unmarshal([]byte("{not json"), &v)
}
