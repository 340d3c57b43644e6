// Package consensus turns per-backend extracted findings into canonical
// findings with cross-model agreement bookkeeping. Deciding which statements
// describe the same issue is the extraction step's job; this package trusts
// the supplied cluster keys and only merges, counts, and orders.
package consensus

import (
	"sort"

	"github.com/quorumci/quorum/internal/core"
)

// RawFinding is one extracted statement as reported by the extraction step:
// a cluster key naming the underlying issue plus the models that raised it.
type RawFinding struct {
	ClusterKey     string
	Title          string
	Description    string
	Category       string
	IsStrength     bool
	Models         []string
	Recommendation string
	FilePath       string
	StartLine      int
	EndLine        int
	CodeExample    string
}

// Aggregate is the clustered view of a job's findings, ready for report
// synthesis.
type Aggregate struct {
	Categories             []core.Category
	FindingsByCategory     map[string][]core.Finding
	KeyStrengths           []core.Finding
	KeyAreasForImprovement []core.Finding
	NSuccess               int
}

// Build clusters raw findings into canonical findings and computes agreement.
// The ModelAgreements keys of every canonical finding are exactly the models
// that completed successfully; agreement counts can therefore never exceed
// N_success. With zero successful results the aggregate is empty, and with
// one every finding is a disagreement by construction.
func Build(raw []RawFinding, categories []core.Category, results []core.ModelReviewResult) *Aggregate {
	successful := core.SuccessfulResults(results)
	agg := &Aggregate{
		Categories:             categories,
		FindingsByCategory:     map[string][]core.Finding{},
		KeyStrengths:           []core.Finding{},
		KeyAreasForImprovement: []core.Finding{},
		NSuccess:               len(successful),
	}
	if agg.NSuccess == 0 {
		agg.Categories = []core.Category{}
		return agg
	}

	successModels := make(map[string]bool, len(successful))
	for _, r := range successful {
		successModels[r.Spec.String()] = true
	}

	categoryOrder := make(map[string]int, len(categories))
	for i, c := range categories {
		categoryOrder[c.Name] = i
	}

	// Merge same-keyed entries within a category; order of first appearance
	// is kept as the stable tie-break.
	type clusterID struct {
		category string
		key      string
	}
	merged := map[clusterID]*core.Finding{}
	var order []clusterID

	for _, rf := range raw {
		if _, known := categoryOrder[rf.Category]; !known {
			// The extraction step emitted a category outside its own list;
			// keep the finding rather than dropping it.
			categoryOrder[rf.Category] = len(agg.Categories)
			agg.Categories = append(agg.Categories, core.Category{Name: rf.Category})
		}

		id := clusterID{category: rf.Category, key: rf.ClusterKey}
		finding, seen := merged[id]
		if !seen {
			agreements := make(map[string]bool, len(successModels))
			for model := range successModels {
				agreements[model] = false
			}
			finding = &core.Finding{
				Title:           rf.Title,
				Description:     rf.Description,
				Category:        rf.Category,
				IsStrength:      rf.IsStrength,
				ModelAgreements: agreements,
				Recommendation:  rf.Recommendation,
				FilePath:        rf.FilePath,
				StartLine:       rf.StartLine,
				EndLine:         rf.EndLine,
				CodeExample:     rf.CodeExample,
			}
			merged[id] = finding
			order = append(order, id)
		} else {
			fillMissing(finding, rf)
		}

		for _, model := range rf.Models {
			// Claims from models that did not complete successfully are
			// ignored so a failed backend never contributes agreement.
			if successModels[model] {
				finding.ModelAgreements[model] = true
			}
		}
	}

	findings := make([]core.Finding, 0, len(order))
	for _, id := range order {
		f := *merged[id]
		findings = append(findings, f)
		agg.FindingsByCategory[f.Category] = append(agg.FindingsByCategory[f.Category], f)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		ai, aj := findings[i].AgreedCount(), findings[j].AgreedCount()
		if ai != aj {
			return ai > aj
		}
		return categoryOrder[findings[i].Category] < categoryOrder[findings[j].Category]
	})

	for _, f := range findings {
		if f.IsStrength {
			agg.KeyStrengths = append(agg.KeyStrengths, f)
		} else {
			agg.KeyAreasForImprovement = append(agg.KeyAreasForImprovement, f)
		}
	}

	return agg
}

// fillMissing completes a canonical finding with details a later same-keyed
// entry carries that the first one lacked.
func fillMissing(f *core.Finding, rf RawFinding) {
	if f.Description == "" {
		f.Description = rf.Description
	}
	if f.Recommendation == "" {
		f.Recommendation = rf.Recommendation
	}
	if f.FilePath == "" {
		f.FilePath = rf.FilePath
		f.StartLine = rf.StartLine
		f.EndLine = rf.EndLine
	}
	if f.CodeExample == "" {
		f.CodeExample = rf.CodeExample
	}
	f.IsStrength = f.IsStrength && rf.IsStrength
}
