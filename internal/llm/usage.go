package llm

import (
	"encoding/json"

	"github.com/quorumci/quorum/internal/core"
)

// Known usage shapes, detected by field presence. Provider schemas disagree
// on names: Anthropic reports input_tokens/output_tokens, OpenAI-compatible
// APIs report prompt_tokens/completion_tokens, and Gemini reports
// promptTokenCount/candidatesTokenCount/totalTokenCount.
var (
	inputAliases  = []string{"input_tokens", "prompt_tokens", "promptTokenCount"}
	outputAliases = []string{"output_tokens", "completion_tokens", "candidatesTokenCount"}
	totalAliases  = []string{"total_tokens", "totalTokenCount"}
)

// NormalizeUsage maps any backend's token-accounting shape to BaseUsage.
// Shape detection is an explicit decode over the known alias sets; unknown
// shapes degrade to zeroes for the fields they lack. It never fails.
func NormalizeUsage(raw RawUsage) core.BaseUsage {
	usage := core.BaseUsage{
		InputTokens:  probeInt(raw, inputAliases),
		OutputTokens: probeInt(raw, outputAliases),
		TotalTokens:  probeInt(raw, totalAliases),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return usage
}

// probeInt returns the first alias present in raw, coerced to int. JSON
// decoding yields float64 for numbers; SDK structs may round-trip as other
// numeric types.
func probeInt(raw RawUsage, aliases []string) int {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int32:
			return int(n)
		case int64:
			return int(n)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i)
			}
		}
	}
	return 0
}

// RawUsageOf converts a typed SDK usage struct into RawUsage by serializing
// it through its JSON shape, so normalization sees the same field names the
// wire format carries. A value that cannot round-trip yields an empty map.
func RawUsageOf(v any) RawUsage {
	data, err := json.Marshal(v)
	if err != nil {
		return RawUsage{}
	}
	raw := RawUsage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawUsage{}
	}
	return raw
}
