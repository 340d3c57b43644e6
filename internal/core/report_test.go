package core

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		name        string
		agreed      int
		nSuccess    int
		want        AgreementTier
	}{
		{"all of three", 3, 3, TierHigh},
		{"two of three", 2, 3, TierPartial},
		{"one of three", 1, 3, TierDisagreement},
		{"both of two", 2, 2, TierHigh},
		{"one of two", 1, 2, TierDisagreement},
		{"single model never high", 1, 1, TierDisagreement},
		{"zero agreement", 0, 3, TierDisagreement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.agreed, tt.nSuccess); got != tt.want {
				t.Errorf("TierFor(%d, %d) = %q, want %q", tt.agreed, tt.nSuccess, got, tt.want)
			}
		})
	}
}

func TestFindingAgreedCount(t *testing.T) {
	f := Finding{ModelAgreements: map[string]bool{
		"anthropic:a": true,
		"openai:b":    false,
		"gemini:c":    true,
	}}
	if got := f.AgreedCount(); got != 2 {
		t.Errorf("AgreedCount = %d, want 2", got)
	}

	var empty Finding
	if got := empty.AgreedCount(); got != 0 {
		t.Errorf("AgreedCount of zero-value finding = %d, want 0", got)
	}
}

func TestBadgeStatusSummary(t *testing.T) {
	for _, b := range []BadgeStatus{BadgePassed, BadgeWarnings, BadgeFailed, BadgeError} {
		if b.Summary() == "Unknown review status" {
			t.Errorf("badge %q has no summary", b)
		}
	}
	if BadgeStatus("bogus").Summary() != "Unknown review status" {
		t.Error("unexpected summary for unknown badge")
	}
}
