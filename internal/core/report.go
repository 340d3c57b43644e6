package core

// Category is a stable identifier for a review topic, such as security or
// performance. The category list is agreed with the extraction step up front
// and owned here as a value object.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Finding is a canonical cluster representative: multiple backends' raw
// statements about the same underlying issue are merged into one Finding
// whose ModelAgreements map records which backends independently raised it.
// Findings are immutable once the report is built.
type Finding struct {
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	IsStrength      bool            `json:"is_strength"`
	ModelAgreements map[string]bool `json:"model_agreements"`
	Recommendation  string          `json:"recommendation,omitempty"`
	FilePath        string          `json:"file_path,omitempty"`
	StartLine       int             `json:"start_line,omitempty"`
	EndLine         int             `json:"end_line,omitempty"`
	CodeExample     string          `json:"code_example,omitempty"`
}

// AgreedCount returns how many models independently raised this finding.
func (f Finding) AgreedCount() int {
	n := 0
	for _, agreed := range f.ModelAgreements {
		if agreed {
			n++
		}
	}
	return n
}

// AgreementTier classifies a finding by how many of the successfully
// completed models raised it. The denominator is the count of successful
// runs, not the configured count, so a backend failure never inflates the
// tier of another backend's finding.
type AgreementTier string

const (
	TierHigh         AgreementTier = "high"
	TierPartial      AgreementTier = "partial"
	TierDisagreement AgreementTier = "disagreement"
)

// TierFor derives the agreement tier for a finding raised by agreedCount of
// nSuccess successful models. With a single successful model every finding
// is a disagreement by construction.
func TierFor(agreedCount, nSuccess int) AgreementTier {
	switch {
	case nSuccess > 1 && agreedCount >= nSuccess:
		return TierHigh
	case agreedCount > 1:
		return TierPartial
	default:
		return TierDisagreement
	}
}

// Tier returns the finding's agreement tier given the number of successful
// model runs.
func (f Finding) Tier(nSuccess int) AgreementTier {
	return TierFor(f.AgreedCount(), nSuccess)
}

// ModelMetrics carries per-backend cost and latency accounting for the report.
type ModelMetrics struct {
	Spec          ModelSpec `json:"spec"`
	Status        Status    `json:"status"`
	Usage         BaseUsage `json:"usage"`
	LatencyMs     int64     `json:"latency_ms"`
	EstimatedCost float64   `json:"estimated_cost_usd"`
}

// CategoryAgreement counts the agreement tiers of one category's findings.
type CategoryAgreement struct {
	Category     string `json:"category"`
	High         int    `json:"high"`
	Partial      int    `json:"partial"`
	Disagreement int    `json:"disagreement"`
}

// FindingAgreement is one row of the report's agreement analysis: a
// canonical finding reduced to its tier and the models that raised it.
type FindingAgreement struct {
	Title          string        `json:"title"`
	Category       string        `json:"category"`
	IsStrength     bool          `json:"is_strength"`
	Tier           AgreementTier `json:"tier"`
	AgreeingModels []string      `json:"agreeing_models"`
}

// ExecutiveSummary is the aggregate statistics record consumed by report
// rendering.
type ExecutiveSummary struct {
	TotalFindings     int     `json:"total_findings"`
	TotalStrengths    int     `json:"total_strengths"`
	TotalImprovements int     `json:"total_improvements"`
	HighAgreement     int     `json:"high_agreement"`
	PartialAgreement  int     `json:"partial_agreement"`
	Disagreements     int     `json:"disagreements"`
	SuccessfulModels  int     `json:"successful_models"`
	FailedModels      int     `json:"failed_models"`
	TotalCost         float64 `json:"total_cost_usd"`
}

// CodeReviewReport is the job's terminal artifact. It is JSON-serializable;
// the persisted artifact format is plain JSON of this shape.
type CodeReviewReport struct {
	Categories             []Category           `json:"categories"`
	FindingsByCategory     map[string][]Finding `json:"findings_by_category"`
	KeyStrengths           []Finding            `json:"key_strengths"`
	KeyAreasForImprovement []Finding            `json:"key_areas_for_improvement"`
	ModelMetrics           []ModelMetrics       `json:"model_metrics"`
	AgreementStatistics    []CategoryAgreement  `json:"agreement_statistics"`
	AgreementAnalysis      []FindingAgreement   `json:"agreement_analysis"`
	Summary                ExecutiveSummary     `json:"summary"`
}

// BadgeStatus is the four-state display summary derived from the report.
type BadgeStatus string

const (
	BadgePassed   BadgeStatus = "passed"
	BadgeWarnings BadgeStatus = "warnings"
	BadgeFailed   BadgeStatus = "failed"
	BadgeError    BadgeStatus = "error"
)

// Summary returns a short human-readable description for the badge state.
func (b BadgeStatus) Summary() string {
	switch b {
	case BadgePassed:
		return "Review passed: no multi-model concerns"
	case BadgeWarnings:
		return "Review passed with warnings: some models agree on improvements"
	case BadgeFailed:
		return "Review failed: all models agree on at least one improvement"
	case BadgeError:
		return "Review errored: no model completed successfully"
	}
	return "Unknown review status"
}
