package core

import (
	"testing"
)

func TestParseModelSpec(t *testing.T) {
	tests := []struct {
		input   string
		want    ModelSpec
		wantErr bool
	}{
		{"anthropic:claude-sonnet-4-5", ModelSpec{Provider: "anthropic", Model: "claude-sonnet-4-5"}, false},
		{"openai:gpt-4o", ModelSpec{Provider: "openai", Model: "gpt-4o"}, false},
		{"gemini:models:gemini-2.5-pro", ModelSpec{Provider: "gemini", Model: "models:gemini-2.5-pro"}, false},
		{"no-colon", ModelSpec{}, true},
		{":model", ModelSpec{}, true},
		{"provider:", ModelSpec{}, true},
		{"", ModelSpec{}, true},
	}

	for _, tt := range tests {
		got, err := ParseModelSpec(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseModelSpec(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseModelSpec(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseModelSpec(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got.String() != tt.input {
			t.Errorf("round trip of %q produced %q", tt.input, got.String())
		}
	}
}

func TestParsePassThreshold(t *testing.T) {
	tests := []struct {
		input   string
		want    PassThreshold
		wantErr bool
	}{
		{"strict", ThresholdStrict, false},
		{"Lenient", ThresholdLenient, false},
		{" none ", ThresholdNone, false},
		{"", ThresholdNone, false},
		{"medium", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePassThreshold(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePassThreshold(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePassThreshold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuccessfulResults(t *testing.T) {
	results := []ModelReviewResult{
		{Spec: ModelSpec{Provider: "anthropic", Model: "a"}, Status: StatusSuccess},
		{Spec: ModelSpec{Provider: "openai", Model: "b"}, Status: StatusError, ErrorCategory: ErrRateLimit},
		{Spec: ModelSpec{Provider: "gemini", Model: "c"}, Status: StatusSuccess},
	}

	ok := SuccessfulResults(results)
	if len(ok) != 2 {
		t.Fatalf("expected 2 successful results, got %d", len(ok))
	}
	if ok[0].Spec.Provider != "anthropic" || ok[1].Spec.Provider != "gemini" {
		t.Errorf("successful results out of order: %v", ok)
	}
}
