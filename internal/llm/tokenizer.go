package llm

// EstimateTokens provides a fast, character-based estimation of token count.
// Backend tokenizers differ; one token per three characters is a workable
// cross-family approximation for budget checks.
func EstimateTokens(text string) int {
	return len(text) / 3
}
