package paste

// Signals carries the structural observations the confidence scorer combines.
// Each bonus rewards evidence that the paste really is a structured table,
// independent of how many rows came out.
type Signals struct {
	RowsParsed     int
	Skipped        int
	HeaderDetected bool
	TabDelimited   bool
	SequenceColumn bool
	BannersSkipped bool
	MixedFormat    bool
}

// Weights of the confidence model. A heuristic, not a statistical model.
const (
	weightSuccessRate = 0.42
	weightRowCount    = 0.20
	bonusHeader       = 0.12
	bonusTab          = 0.12
	bonusSequenceCol  = 0.10
	bonusBannerSkip   = 0.10
	penaltyMixed      = 0.10
)

// Score combines the success rate and structural signals into a single
// confidence value in [0,1]. Callers gate auto-apply on it.
func Score(sig Signals) float64 {
	attempted := sig.RowsParsed + sig.Skipped
	successRate := 0.0
	if attempted > 0 {
		successRate = float64(sig.RowsParsed) / float64(attempted)
	}

	rowEvidence := float64(sig.RowsParsed) / 10
	if rowEvidence > 1 {
		rowEvidence = 1
	}

	score := weightSuccessRate*successRate + weightRowCount*rowEvidence
	if sig.HeaderDetected {
		score += bonusHeader
	}
	if sig.TabDelimited {
		score += bonusTab
	}
	if sig.SequenceColumn {
		score += bonusSequenceCol
	}
	if sig.BannersSkipped {
		score += bonusBannerSkip
	}
	if sig.MixedFormat {
		score -= penaltyMixed
	}
	return clamp01(score)
}
