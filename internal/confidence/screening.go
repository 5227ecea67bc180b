package confidence

// Status instructs the reporting layer whether to surface a screening
// score at all.
type Status string

const (
	StatusReport  Status = "report"
	StatusCaveat  Status = "report_with_caveat"
	StatusMention Status = "mention_insufficient"
	StatusHide    Status = "hide"
)

// ScreeningConfidence is the stricter composite used for clinically
// framed domains. The three component confidences are kept visible so a
// reviewer can see which one dragged the overall down.
type ScreeningConfidence struct {
	Interval
	Question float64 // sample-size component
	Score    float64 // decisiveness component
	Variance float64 // response-consistency component
	Overall  float64
	Status   Status
}

// screeningBaseMargin is the margin at full confidence. It is wider
// than the trait model's typical margin on purpose: a screening number
// carries clinical weight, so its band errs wide.
const screeningBaseMargin = 12.0

// Screening computes the weighted-composite confidence for a screening
// domain score on the 0..100 scale.
func Screening(score float64, itemScores []int) ScreeningConfidence {
	q := questionConfidence(len(itemScores))
	s := scoreConfidence(score)
	v := varianceConfidence(itemScores)

	overall := 0.5*q + 0.3*s + 0.2*v
	margin := screeningBaseMargin / overall

	sc := ScreeningConfidence{
		Interval: Interval{
			Lower:          clamp(score-margin, 0, 100),
			Upper:          clamp(score+margin, 0, 100),
			Margin:         margin,
			SampleFactor:   q,
			VarianceFactor: v,
		},
		Question: q,
		Score:    s,
		Variance: v,
		Overall:  overall,
	}
	sc.Level, sc.Status = screeningLevel(overall)
	if len(itemScores) == 0 {
		// No genuine answers at all: never surface the number.
		sc.Level, sc.Status = LevelInsufficient, StatusHide
	}
	return sc
}

// questionConfidence steps from 0.2 at two or fewer items to 1.0 at ten
// or more. Zero genuine items contributes nothing; that is the only way
// the overall composite can fall below the hide threshold.
func questionConfidence(n int) float64 {
	switch {
	case n == 0:
		return 0.0
	case n >= 10:
		return 1.0
	case n >= 7:
		return 0.8
	case n >= 5:
		return 0.6
	case n >= 3:
		return 0.4
	default:
		return 0.2
	}
}

// scoreConfidence penalizes scores in the ambiguous middle band;
// extreme scores are inherently more decisive.
func scoreConfidence(score float64) float64 {
	if score >= 40 && score <= 60 {
		return 0.7
	}
	return 1.0
}

// varianceConfidence drops when item-level spread is high on the
// ordinal scale.
func varianceConfidence(itemScores []int) float64 {
	if stddev(itemScores) > 1.5 {
		return 0.6
	}
	return 1.0
}

func screeningLevel(overall float64) (Level, Status) {
	switch {
	case overall >= 0.8:
		return LevelHigh, StatusReport
	case overall >= 0.6:
		return LevelModerate, StatusCaveat
	case overall >= 0.4:
		return LevelLow, StatusMention
	default:
		return LevelInsufficient, StatusHide
	}
}
