// Package report assembles the terminal artifact of a review job: the
// category breakdown, per-backend metrics, agreement statistics, and the
// pass/fail and badge decisions derived from them.
package report

import (
	"sort"

	"github.com/quorumci/quorum/internal/consensus"
	"github.com/quorumci/quorum/internal/core"
)

// Synthesize builds the CodeReviewReport from the clustered findings plus
// the per-backend results. It never fails on partial input; missing usage
// and empty finding lists degrade to zero values.
func Synthesize(agg *consensus.Aggregate, results []core.ModelReviewResult) *core.CodeReviewReport {
	rep := &core.CodeReviewReport{
		Categories:             agg.Categories,
		FindingsByCategory:     agg.FindingsByCategory,
		KeyStrengths:           agg.KeyStrengths,
		KeyAreasForImprovement: agg.KeyAreasForImprovement,
		ModelMetrics:           make([]core.ModelMetrics, 0, len(results)),
		AgreementStatistics:    make([]core.CategoryAgreement, 0, len(agg.Categories)),
		AgreementAnalysis:      make([]core.FindingAgreement, 0, len(agg.KeyAreasForImprovement)+len(agg.KeyStrengths)),
	}

	for _, f := range agg.KeyAreasForImprovement {
		rep.AgreementAnalysis = append(rep.AgreementAnalysis, agreementOf(f, agg.NSuccess))
	}
	for _, f := range agg.KeyStrengths {
		rep.AgreementAnalysis = append(rep.AgreementAnalysis, agreementOf(f, agg.NSuccess))
	}

	failed := 0
	for _, r := range results {
		cost := RateFor(r.Spec).Cost(r.Usage)
		rep.ModelMetrics = append(rep.ModelMetrics, core.ModelMetrics{
			Spec:          r.Spec,
			Status:        r.Status,
			Usage:         r.Usage,
			LatencyMs:     r.LatencyMs,
			EstimatedCost: cost,
		})
		rep.Summary.TotalCost += cost
		if r.Status == core.StatusError {
			failed++
		}
	}

	for _, cat := range agg.Categories {
		stat := core.CategoryAgreement{Category: cat.Name}
		for _, f := range agg.FindingsByCategory[cat.Name] {
			switch f.Tier(agg.NSuccess) {
			case core.TierHigh:
				stat.High++
			case core.TierPartial:
				stat.Partial++
			case core.TierDisagreement:
				stat.Disagreement++
			}
		}
		rep.AgreementStatistics = append(rep.AgreementStatistics, stat)
		rep.Summary.HighAgreement += stat.High
		rep.Summary.PartialAgreement += stat.Partial
		rep.Summary.Disagreements += stat.Disagreement
	}

	rep.Summary.TotalStrengths = len(agg.KeyStrengths)
	rep.Summary.TotalImprovements = len(agg.KeyAreasForImprovement)
	rep.Summary.TotalFindings = rep.Summary.TotalStrengths + rep.Summary.TotalImprovements
	rep.Summary.SuccessfulModels = agg.NSuccess
	rep.Summary.FailedModels = failed

	return rep
}

// agreementOf reduces a canonical finding to its agreement analysis row.
// The model list is sorted so the artifact is deterministic.
func agreementOf(f core.Finding, nSuccess int) core.FindingAgreement {
	models := make([]string, 0, len(f.ModelAgreements))
	for model, agreed := range f.ModelAgreements {
		if agreed {
			models = append(models, model)
		}
	}
	sort.Strings(models)
	return core.FindingAgreement{
		Title:          f.Title,
		Category:       f.Category,
		IsStrength:     f.IsStrength,
		Tier:           f.Tier(nSuccess),
		AgreeingModels: models,
	}
}
