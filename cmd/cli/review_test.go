package main

import (
	"testing"

	"github.com/quorumci/quorum/internal/core"
)

func TestFormatSpecs(t *testing.T) {
	tests := []struct {
		name  string
		specs []core.ModelSpec
		want  string
	}{
		{"empty", nil, ""},
		{"single", []core.ModelSpec{{Provider: "anthropic", Model: "a"}}, "anthropic:a"},
		{
			"several",
			[]core.ModelSpec{
				{Provider: "anthropic", Model: "a"},
				{Provider: "openai", Model: "b"},
				{Provider: "gemini", Model: "c"},
			},
			"anthropic:a, openai:b, gemini:c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSpecs(tt.specs); got != tt.want {
				t.Errorf("formatSpecs = %q, want %q", got, tt.want)
			}
		})
	}
}
