package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quorumci/quorum/internal/core"
)

// WriteJSON persists the report as indented JSON. The artifact format is
// the CodeReviewReport shape itself; producer and consumer are co-deployed
// so no versioned envelope is needed.
func WriteJSON(path string, rep *core.CodeReviewReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
