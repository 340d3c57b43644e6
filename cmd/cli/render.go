package main

import (
	"fmt"

	"github.com/quorumci/quorum/internal/core"
)

// renderReport prints the human-readable summary to stdout. The JSON
// artifact carries the full detail; this view leads with what the models
// agree on.
func renderReport(rep *core.CodeReviewReport, badge core.BadgeStatus, passed bool) {
	fmt.Println()
	boldColor.Println("=== Review Summary ===")

	badgeColor := successColor
	switch badge {
	case core.BadgeWarnings:
		badgeColor = warnColor
	case core.BadgeFailed, core.BadgeError:
		badgeColor = errorColor
	}
	badgeColor.Printf("Badge: %s (%s)\n", badge, badge.Summary())
	if passed {
		successColor.Println("Result: PASSED")
	} else {
		errorColor.Println("Result: FAILED")
	}

	s := rep.Summary
	fmt.Printf("\nModels: %d succeeded, %d failed   Findings: %d (%d strengths, %d improvements)\n",
		s.SuccessfulModels, s.FailedModels, s.TotalFindings, s.TotalStrengths, s.TotalImprovements)
	fmt.Printf("Agreement: %d high, %d partial, %d single-model   Estimated cost: $%.4f\n",
		s.HighAgreement, s.PartialAgreement, s.Disagreements, s.TotalCost)

	if len(rep.KeyAreasForImprovement) > 0 {
		fmt.Println()
		boldColor.Println("Areas for improvement:")
		for _, f := range rep.KeyAreasForImprovement {
			renderFinding(f, s.SuccessfulModels)
		}
	}

	if len(rep.KeyStrengths) > 0 {
		fmt.Println()
		boldColor.Println("Strengths:")
		for _, f := range rep.KeyStrengths {
			renderFinding(f, s.SuccessfulModels)
		}
	}

	if len(rep.ModelMetrics) > 0 {
		fmt.Println()
		boldColor.Println("Per-model metrics:")
		for _, m := range rep.ModelMetrics {
			line := fmt.Sprintf("  %-40s %-8s %6dms  %6d tokens  $%.4f",
				m.Spec.String(), m.Status, m.LatencyMs, m.Usage.TotalTokens, m.EstimatedCost)
			if m.Status == core.StatusError {
				errorColor.Println(line)
			} else {
				fmt.Println(line)
			}
		}
	}
}

func renderFinding(f core.Finding, nSuccess int) {
	marker := dimColor
	switch f.Tier(nSuccess) {
	case core.TierHigh:
		marker = errorColor
		if f.IsStrength {
			marker = successColor
		}
	case core.TierPartial:
		marker = warnColor
	}
	location := ""
	if f.FilePath != "" {
		location = fmt.Sprintf(" (%s:%d)", f.FilePath, f.StartLine)
	}
	marker.Printf("  [%d/%d] %s%s\n", f.AgreedCount(), nSuccess, f.Title, location)
	if f.Recommendation != "" {
		dimColor.Printf("        %s\n", f.Recommendation)
	}
}
