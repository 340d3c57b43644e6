package report

import (
	"strings"

	"github.com/quorumci/quorum/internal/core"
)

// Rate holds a provider's USD price per million input and output tokens.
type Rate struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost computes the estimated USD cost for a normalized usage record.
func (r Rate) Cost(usage core.BaseUsage) float64 {
	return float64(usage.InputTokens)*r.InputPerMTok/1e6 +
		float64(usage.OutputTokens)*r.OutputPerMTok/1e6
}

// defaultRate is applied when a model is not in the table. Deliberately on
// the high side so unlisted models do not look free.
var defaultRate = Rate{InputPerMTok: 5.00, OutputPerMTok: 15.00}

// modelRates maps model-name prefixes per provider to published list prices.
// Prefix matching keeps dated model revisions covered without listing each.
var modelRates = map[string]map[string]Rate{
	"anthropic": {
		"claude-opus":   {InputPerMTok: 15.00, OutputPerMTok: 75.00},
		"claude-sonnet": {InputPerMTok: 3.00, OutputPerMTok: 15.00},
		"claude-haiku":  {InputPerMTok: 0.80, OutputPerMTok: 4.00},
	},
	"openai": {
		"gpt-4o-mini": {InputPerMTok: 0.15, OutputPerMTok: 0.60},
		"gpt-4o":      {InputPerMTok: 2.50, OutputPerMTok: 10.00},
		"gpt-4.1":     {InputPerMTok: 2.00, OutputPerMTok: 8.00},
		"o3":          {InputPerMTok: 2.00, OutputPerMTok: 8.00},
	},
	"gemini": {
		"gemini-2.5-pro":   {InputPerMTok: 1.25, OutputPerMTok: 10.00},
		"gemini-2.5-flash": {InputPerMTok: 0.30, OutputPerMTok: 2.50},
		"gemini-2.0-flash": {InputPerMTok: 0.10, OutputPerMTok: 0.40},
	},
}

// RateFor looks up the price for a ModelSpec, falling back to defaultRate
// for unlisted providers or models.
func RateFor(spec core.ModelSpec) Rate {
	provider := spec.Provider
	if provider == "google" {
		provider = "gemini"
	}
	rates, ok := modelRates[provider]
	if !ok {
		return defaultRate
	}
	// Longest prefix wins so "gpt-4o-mini" is not priced as "gpt-4o".
	best := defaultRate
	bestLen := -1
	for prefix, rate := range rates {
		if strings.HasPrefix(spec.Model, prefix) && len(prefix) > bestLen {
			best = rate
			bestLen = len(prefix)
		}
	}
	return best
}
