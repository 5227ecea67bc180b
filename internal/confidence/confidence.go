// Package confidence turns a domain score and its item evidence into a
// bounded interval and a categorical confidence level. Two policies
// exist: a standard-error-of-measurement model for continuous trait
// domains, and a stricter weighted composite for clinically framed
// screening domains where a false positive is costlier than a false
// negative.
package confidence

import "math"

// Level is the categorical trust label attached to a score.
type Level string

const (
	LevelHigh         Level = "high"
	LevelModerate     Level = "moderate"
	LevelLow          Level = "low"
	LevelInsufficient Level = "insufficient"
)

// Percent returns the nominal confidence percentage for the level.
func (l Level) Percent() int {
	switch l {
	case LevelHigh:
		return 95
	case LevelModerate:
		return 85
	case LevelLow:
		return 70
	default:
		return 50
	}
}

// Rank orders levels from insufficient (0) to high (3), for
// monotonicity checks.
func (l Level) Rank() int {
	switch l {
	case LevelHigh:
		return 3
	case LevelModerate:
		return 2
	case LevelLow:
		return 1
	default:
		return 0
	}
}

// Interval is a confidence band around a normalized 0..100 score.
// SampleFactor and VarianceFactor record the adjustments that produced
// the margin so reports can explain why a band is wide.
type Interval struct {
	Lower          float64
	Upper          float64
	Margin         float64
	Level          Level
	SampleFactor   float64
	VarianceFactor float64
}

const (
	// populationSD is the assumed population standard deviation on the
	// normalized 0..100 scale.
	populationSD = 15.0
	// zCritical is the two-sided 95% critical value.
	zCritical = 1.96
)

// Trait computes a trait-domain interval from the SEM model:
// SEM = populationSD × sqrt(1 − reliability), inflated for thin samples
// and inconsistent responding, with the band clamped to [0,100].
func Trait(score float64, itemScores []int, reliability float64) Interval {
	if reliability <= 0 || reliability >= 1 {
		reliability = 0.85
	}
	n := len(itemScores)

	sem := populationSD * math.Sqrt(1-reliability)
	sf := sampleFactor(n)
	vf := traitVarianceFactor(itemScores)

	margin := zCritical * sem * sf * vf

	iv := Interval{
		Lower:          clamp(score-margin, 0, 100),
		Upper:          clamp(score+margin, 0, 100),
		Margin:         margin,
		SampleFactor:   sf,
		VarianceFactor: vf,
	}
	iv.Level = traitLevel(n, margin)
	return iv
}

// sampleFactor inflates the SEM for thin samples: 1.0 at fifteen or
// more items, rising to 1.8 below six.
func sampleFactor(n int) float64 {
	switch {
	case n >= 15:
		return 1.0
	case n >= 10:
		return 1.15
	case n >= 8:
		return 1.3
	case n >= 6:
		return 1.5
	default:
		return 1.8
	}
}

// traitVarianceFactor widens the margin when item-level responses are
// inconsistent, judged by their coefficient of variation. A factor above
// 1 corresponds to deflated confidence.
func traitVarianceFactor(itemScores []int) float64 {
	if len(itemScores) < 2 {
		return 1.0
	}
	m := mean(itemScores)
	if m == 0 {
		return 1.0
	}
	cv := stddev(itemScores) / m
	switch {
	case cv > 0.3:
		return 1 / 0.7
	case cv > 0.2:
		return 1 / 0.85
	default:
		return 1.0
	}
}

func traitLevel(n int, margin float64) Level {
	switch {
	case n >= 12 && margin <= 8:
		return LevelHigh
	case n >= 8 && margin <= 12:
		return LevelModerate
	case n >= 5:
		return LevelLow
	default:
		return LevelInsufficient
	}
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += float64(x)
	}
	return sum / float64(len(xs))
}

func stddev(xs []int) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := float64(x) - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
