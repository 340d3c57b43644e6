package report

import "github.com/quorumci/quorum/internal/core"

// Passed is the pass-threshold decision over the improvement findings.
// Strength findings never fail a review.
func Passed(threshold core.PassThreshold, rep *core.CodeReviewReport) bool {
	nSuccess := rep.Summary.SuccessfulModels
	switch threshold {
	case core.ThresholdStrict:
		for _, f := range rep.KeyAreasForImprovement {
			if f.AgreedCount() >= 2 {
				return false
			}
		}
	case core.ThresholdLenient:
		for _, f := range rep.KeyAreasForImprovement {
			if nSuccess > 0 && f.AgreedCount() == nSuccess {
				return false
			}
		}
	}
	// ThresholdNone never fails on agreement.
	return true
}

// Badge resolves the four-state display status, independently of the
// fail-on-error setting: error when nothing completed, failed on any
// high-tier improvement, warnings on any partial-tier improvement,
// otherwise passed.
func Badge(rep *core.CodeReviewReport) core.BadgeStatus {
	nSuccess := rep.Summary.SuccessfulModels
	if nSuccess == 0 {
		return core.BadgeError
	}

	hasPartial := false
	for _, f := range rep.KeyAreasForImprovement {
		switch f.Tier(nSuccess) {
		case core.TierHigh:
			return core.BadgeFailed
		case core.TierPartial:
			hasPartial = true
		}
	}
	if hasPartial {
		return core.BadgeWarnings
	}
	return core.BadgePassed
}
